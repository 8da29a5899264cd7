// Package memory implementa los puertos de repositorio en memoria del proceso.
// Sirve para desarrollo local (STORE_DRIVER=memory) y como backend de los tests.
package memory

import (
	"cmp"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/repository"
)

type db struct {
	mu        sync.RWMutex
	users     map[string]entity.User
	companies map[string]entity.Company
	workAt    map[string]entity.Employment // clave: user_id
}

func newDB() *db {
	return &db{
		users:     make(map[string]entity.User),
		companies: make(map[string]entity.Company),
		workAt:    make(map[string]entity.Employment),
	}
}

// Store backend en memoria. Seguro para uso concurrente.
type Store struct {
	db          *db
	users       *UserRepo
	companies   *CompanyRepo
	employments *EmploymentRepo
}

var _ repository.Store = (*Store)(nil)

// NewStore construye un backend vacío.
func NewStore() *Store {
	d := newDB()
	return &Store{
		db:          d,
		users:       &UserRepo{db: d},
		companies:   &CompanyRepo{db: d},
		employments: &EmploymentRepo{db: d},
	}
}

func (s *Store) Users() repository.UserRepository             { return s.users }
func (s *Store) Companies() repository.CompanyRepository       { return s.companies }
func (s *Store) Employments() repository.EmploymentRepository { return s.employments }

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }

func (s *Store) Reset(context.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.users = make(map[string]entity.User)
	s.db.companies = make(map[string]entity.Company)
	s.db.workAt = make(map[string]entity.Employment)
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// byKeyThenID orden ascendente por clave con desempate por id.
func byKeyThenID[K cmp.Ordered](ka, kb K, ida, idb string) int {
	if c := cmp.Compare(ka, kb); c != 0 {
		return c
	}
	return cmp.Compare(ida, idb)
}
