// Package datastore elige el backend de persistencia según STORE_DRIVER.
package datastore

import (
	"context"
	"fmt"

	"github.com/jhoicas/staffdir/internal/domain/repository"
	"github.com/jhoicas/staffdir/internal/infrastructure/memory"
	"github.com/jhoicas/staffdir/internal/infrastructure/mongodb"
	"github.com/jhoicas/staffdir/internal/infrastructure/neo4j"
	"github.com/jhoicas/staffdir/internal/infrastructure/postgres"
	"github.com/jhoicas/staffdir/pkg/config"
)

// Open conecta el backend configurado. El resto de la aplicación solo ve repository.Store.
func Open(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	var (
		store repository.Store
		err   error
	)
	// store queda nil si err != nil: nunca un puntero nil tipado.
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		var s *postgres.Store
		if s, err = postgres.Open(ctx, cfg.DB); err == nil {
			store = s
		}
	case config.DriverMongoDB:
		var s *mongodb.Store
		if s, err = mongodb.Connect(ctx, cfg.Mongo); err == nil {
			store = s
		}
	case config.DriverNeo4j:
		var s *neo4j.Store
		if s, err = neo4j.Connect(ctx, cfg.Neo4j); err == nil {
			store = s
		}
	case config.DriverMemory:
		store = memory.NewStore()
	default:
		err = fmt.Errorf("store driver desconocido %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	return store, nil
}
