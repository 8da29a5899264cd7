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

// UserRepo implementa repository.UserRepository en memoria.
type UserRepo struct {
	db *db
}

var _ repository.UserRepository = (*UserRepo)(nil)

func cloneUser(u entity.User) *entity.User {
	u.DeletedAt = cloneTime(u.DeletedAt)
	return &u
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[u.ID]; ok {
		return fmt.Errorf("create user: id %s ya existe", u.ID)
	}
	r.db.users[u.ID] = *cloneUser(*u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepo) List(_ context.Context, f query.Filter) ([]*entity.User, error) {
	r.db.mu.RLock()
	out := make([]*entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		if f.HasSearch() && !containsFold(u.Name, f.Search) && !containsFold(u.Email, f.Search) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	r.db.mu.RUnlock()

	slices.SortFunc(out, func(a, b *entity.User) int {
		switch f.SortBy {
		case query.SortByName:
			return byKeyThenID(a.Name, b.Name, a.ID, b.ID)
		case query.SortByEmail:
			return byKeyThenID(a.Email, b.Email, a.ID, b.ID)
		default:
			return byKeyThenID(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano(), a.ID, b.ID)
		}
	})
	if f.HasLimit() && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cur, ok := r.db.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	cur.Name = u.Name
	cur.Email = u.Email
	cur.PasswordHash = u.PasswordHash
	cur.Avatar = u.Avatar
	cur.UpdatedAt = u.UpdatedAt
	r.db.users[u.ID] = cur
	return nil
}

func (r *UserRepo) DeletedAt(_ context.Context, id string) (*time.Time, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, false, nil
	}
	return cloneTime(u.DeletedAt), true, nil
}

func (r *UserRepo) SetDeletedAt(_ context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.DeletedAt = cloneTime(deletedAt)
	u.UpdatedAt = updatedAt
	r.db.users[id] = u
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.db.users, id)
	delete(r.db.workAt, id)
	return nil
}

func (r *UserRepo) CountByField(_ context.Context, field, value, excludingID string) (int64, error) {
	if field != entity.FieldEmail {
		return 0, fmt.Errorf("count users: campo no permitido %q", field)
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var n int64
	for id, u := range r.db.users {
		if id != excludingID && u.Email == value {
			n++
		}
	}
	return n, nil
}
