// Package mongodb implementa los puertos de repositorio sobre MongoDB: usuarios y empresas como
// documentos, y el empleo como colección de aristas work_at (_id = user_id).
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/staffdir/internal/domain/repository"
	"github.com/jhoicas/staffdir/pkg/config"
)

const (
	usersCollection     = "users"
	companiesCollection = "companies"
	workAtCollection    = "work_at"
)

var _ repository.Store = (*Store)(nil)

// Store backend documental.
type Store struct {
	client      *mongo.Client
	db          *mongo.Database
	users       *UserRepo
	companies   *CompanyRepo
	employments *EmploymentRepo
}

// Connect abre el cliente, verifica la conexión y crea los índices.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	s := NewStore(client, cfg.Database)
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// NewStore construye los repositorios sobre un cliente ya conectado.
func NewStore(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:      client,
		db:          db,
		users:       &UserRepo{users: db.Collection(usersCollection), workAt: db.Collection(workAtCollection)},
		companies:   &CompanyRepo{companies: db.Collection(companiesCollection), workAt: db.Collection(workAtCollection)},
		employments: &EmploymentRepo{db: db},
	}
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[string]mongo.IndexModel{
		usersCollection:     {Keys: bson.D{{Key: "email", Value: 1}}},
		workAtCollection:    {Keys: bson.D{{Key: "company_id", Value: 1}}},
		companiesCollection: {Keys: bson.D{{Key: "name", Value: 1}}},
	}
	for coll, model := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}
	return nil
}

func (s *Store) Users() repository.UserRepository             { return s.users }
func (s *Store) Companies() repository.CompanyRepository       { return s.companies }
func (s *Store) Employments() repository.EmploymentRepository { return s.employments }

func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx, nil) }

// Reset elimina las tres colecciones; los índices se recrean en el próximo Connect.
func (s *Store) Reset(ctx context.Context) error {
	for _, coll := range []string{workAtCollection, usersCollection, companiesCollection} {
		if err := s.db.Collection(coll).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", coll, err)
		}
	}
	return s.ensureIndexes(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
