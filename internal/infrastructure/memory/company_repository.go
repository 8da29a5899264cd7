package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/query"
	"github.com/jhoicas/staffdir/internal/domain/repository"
)

// CompanyRepo implementa repository.CompanyRepository en memoria.
type CompanyRepo struct {
	db *db
}

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

func cloneCompany(c entity.Company) *entity.Company {
	c.DeletedAt = cloneTime(c.DeletedAt)
	return &c
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.companies[c.ID]; ok {
		return fmt.Errorf("create company: id %s ya existe", c.ID)
	}
	r.db.companies[c.ID] = *cloneCompany(*c)
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.companies[id]
	if !ok {
		return nil, nil
	}
	return cloneCompany(c), nil
}

func (r *CompanyRepo) List(_ context.Context, f query.Filter) ([]*entity.Company, error) {
	r.db.mu.RLock()
	out := make([]*entity.Company, 0, len(r.db.companies))
	for _, c := range r.db.companies {
		if f.HasSearch() && !containsFold(c.Name, f.Search) {
			continue
		}
		out = append(out, cloneCompany(c))
	}
	r.db.mu.RUnlock()

	slices.SortFunc(out, func(a, b *entity.Company) int {
		switch f.SortBy {
		case query.SortByName:
			return byKeyThenID(a.Name, b.Name, a.ID, b.ID)
		case query.SortBySince:
			return byKeyThenID(a.Since.UnixNano(), b.Since.UnixNano(), a.ID, b.ID)
		default:
			return byKeyThenID(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano(), a.ID, b.ID)
		}
	})
	if f.HasLimit() && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cur, ok := r.db.companies[c.ID]
	if !ok {
		return domain.ErrCompanyNotFound
	}
	cur.Name = c.Name
	cur.Since = c.Since
	cur.UpdatedAt = c.UpdatedAt
	r.db.companies[c.ID] = cur
	return nil
}

func (r *CompanyRepo) DeletedAt(_ context.Context, id string) (*time.Time, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.companies[id]
	if !ok {
		return nil, false, nil
	}
	return cloneTime(c.DeletedAt), true, nil
}

func (r *CompanyRepo) SetDeletedAt(_ context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.companies[id]
	if !ok {
		return domain.ErrCompanyNotFound
	}
	c.DeletedAt = cloneTime(deletedAt)
	c.UpdatedAt = updatedAt
	r.db.companies[id] = c
	return nil
}

// Delete elimina la empresa y todas las aristas que apuntan a ella.
func (r *CompanyRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.companies[id]; !ok {
		return domain.ErrCompanyNotFound
	}
	delete(r.db.companies, id)
	for userID, e := range r.db.workAt {
		if e.CompanyID == id {
			delete(r.db.workAt, userID)
		}
	}
	return nil
}
