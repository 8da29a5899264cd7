// Package neo4j implementa los puertos de repositorio sobre un grafo Neo4j: nodos :User y
// :Company identificados por la propiedad id, y el empleo como relación (:User)-[:WORK_AT]->(:Company).
package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/jhoicas/staffdir/internal/domain/repository"
	"github.com/jhoicas/staffdir/pkg/config"
)

var constraints = []string{
	"CREATE CONSTRAINT user_id IF NOT EXISTS FOR (n:User) REQUIRE n.id IS UNIQUE",
	"CREATE CONSTRAINT company_id IF NOT EXISTS FOR (n:Company) REQUIRE n.id IS UNIQUE",
}

// client ejecuta consultas autocommit contra la base configurada.
type client struct {
	driver   neo4j.DriverWithContext
	database string
}

func (c *client) run(ctx context.Context, cypher string, params map[string]any) (*neo4j.EagerResult, error) {
	var opts []neo4j.ExecuteQueryConfigurationOption
	if c.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(c.database))
	}
	return neo4j.ExecuteQuery(ctx, c.driver, cypher, params, neo4j.EagerResultTransformer, opts...)
}

var _ repository.Store = (*Store)(nil)

// Store backend de grafo.
type Store struct {
	c           *client
	users       *UserRepo
	companies   *CompanyRepo
	employments *EmploymentRepo
}

// Connect abre el driver, verifica la conectividad y crea las restricciones de unicidad de id.
func Connect(ctx context.Context, cfg config.Neo4jConfig) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	s := NewStore(driver, cfg.Database)
	for _, stmt := range constraints {
		if _, err := s.c.run(ctx, stmt, nil); err != nil {
			_ = driver.Close(ctx)
			return nil, fmt.Errorf("create constraint: %w", err)
		}
	}
	return s, nil
}

// NewStore construye los repositorios sobre un driver existente.
func NewStore(driver neo4j.DriverWithContext, database string) *Store {
	c := &client{driver: driver, database: database}
	return &Store{
		c:           c,
		users:       &UserRepo{c: c},
		companies:   &CompanyRepo{c: c},
		employments: &EmploymentRepo{c: c},
	}
}

func (s *Store) Users() repository.UserRepository             { return s.users }
func (s *Store) Companies() repository.CompanyRepository       { return s.companies }
func (s *Store) Employments() repository.EmploymentRepository { return s.employments }

func (s *Store) Ping(ctx context.Context) error { return s.c.driver.VerifyConnectivity(ctx) }

// Reset elimina todos los nodos :User y :Company junto con sus relaciones.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.c.run(ctx, "MATCH (n) WHERE n:User OR n:Company DETACH DELETE n", nil); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.c.driver.Close(ctx)
}
