package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/staffdir/internal/domain/repository"
	"github.com/jhoicas/staffdir/pkg/config"
)

var _ repository.Store = (*Store)(nil)

// Store backend relacional: usuarios, empresas y la tabla work_at.
type Store struct {
	pool        *pgxpool.Pool
	tx          *TxRunner
	users       *UserRepo
	companies   *CompanyRepo
	employments *EmploymentRepo
}

// Open crea el pool y, si cfg.AutoSchema, aplica el DDL embebido.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := NewStore(pool)
	if cfg.AutoSchema {
		if err := EnsureSchema(ctx, s.tx); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return s, nil
}

// NewStore construye los repositorios sobre un pool existente.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:        pool,
		tx:          NewTxRunner(pool),
		users:       NewUserRepository(pool),
		companies:   NewCompanyRepository(pool),
		employments: NewEmploymentRepository(pool),
	}
}

func (s *Store) Users() repository.UserRepository             { return s.users }
func (s *Store) Companies() repository.CompanyRepository       { return s.companies }
func (s *Store) Employments() repository.EmploymentRepository { return s.employments }

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Reset vacía las tablas en una transacción.
func (s *Store) Reset(ctx context.Context) error {
	return s.tx.Run(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, "TRUNCATE work_at, users, companies"); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		return nil
	})
}

func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}
