package repository

import "context"

// Store agrupa los puertos de un mismo backend. Cada adaptador (postgres, mongodb, neo4j,
// memory) lo implementa completo; el backend se elige por configuración al arrancar.
type Store interface {
	Users() UserRepository
	Companies() CompanyRepository
	Employments() EmploymentRepository
	Ping(ctx context.Context) error
	// Reset borra todos los datos; lo usa el seeder.
	Reset(ctx context.Context) error
	Close(ctx context.Context) error
}
