package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/repository"
)

// EmploymentRepo implementa repository.EmploymentRepository en memoria.
type EmploymentRepo struct {
	db *db
}

var _ repository.EmploymentRepository = (*EmploymentRepo)(nil)

func (r *EmploymentRepo) Employ(_ context.Context, e *entity.Employment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[e.UserID]; !ok {
		return fmt.Errorf("employ: %w", domain.ErrUserNotFound)
	}
	if _, ok := r.db.companies[e.CompanyID]; !ok {
		return fmt.Errorf("employ: %w", domain.ErrCompanyNotFound)
	}
	edge := *e
	edge.Since = cloneTime(e.Since)
	r.db.workAt[e.UserID] = edge
	return nil
}

func (r *EmploymentRepo) Dismiss(_ context.Context, userID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.workAt[userID]; !ok {
		return false, nil
	}
	delete(r.db.workAt, userID)
	return true, nil
}

func (r *EmploymentRepo) CompanyOf(_ context.Context, userID string) (*entity.Company, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	e, ok := r.db.workAt[userID]
	if !ok {
		return nil, nil
	}
	c, ok := r.db.companies[e.CompanyID]
	if !ok {
		return nil, nil
	}
	return cloneCompany(c), nil
}

func (r *EmploymentRepo) UsersOf(_ context.Context, companyID string) ([]*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.employeesLocked(companyID, ""), nil
}

func (r *EmploymentRepo) ColleaguesOf(_ context.Context, userID string) ([]*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	e, ok := r.db.workAt[userID]
	if !ok {
		return []*entity.User{}, nil
	}
	return r.employeesLocked(e.CompanyID, userID), nil
}

// employeesLocked usuarios de companyID excepto exclude, ordenados por nombre. Requiere el lock tomado.
func (r *EmploymentRepo) employeesLocked(companyID, exclude string) []*entity.User {
	out := make([]*entity.User, 0)
	for userID, e := range r.db.workAt {
		if e.CompanyID != companyID || userID == exclude {
			continue
		}
		if u, ok := r.db.users[userID]; ok {
			out = append(out, cloneUser(u))
		}
	}
	slices.SortFunc(out, func(a, b *entity.User) int {
		return byKeyThenID(a.Name, b.Name, a.ID, b.ID)
	})
	return out
}
