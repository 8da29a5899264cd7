package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/query"
	"github.com/jhoicas/staffdir/internal/domain/repository"
)

const userColumns = "id, name, email, password, avatar, created_at, updated_at, deleted_at"

// Columnas admitidas por CountByField.
var userUniqueColumns = map[string]string{
	entity.FieldEmail: "email",
}

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	defer rows.Close()
	out := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	q := `
		INSERT INTO users (id, name, email, password, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, q,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Avatar, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID, incluido si está en papelera.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List lista usuarios según el filtro validado.
func (r *UserRepo) List(ctx context.Context, f query.Filter) ([]*entity.User, error) {
	sql, args := userListTemplate.build(f)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	list, err := collectUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return list, nil
}

// Update actualiza datos del usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	q := `
		UPDATE users SET name = $2, email = $3, password = $4, avatar = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, user.ID, user.Name, user.Email, user.PasswordHash, user.Avatar, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) DeletedAt(ctx context.Context, id string) (*time.Time, bool, error) {
	var deletedAt *time.Time
	err := r.db.QueryRow(ctx, "SELECT deleted_at FROM users WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get user state: %w", err)
	}
	return deletedAt, true, nil
}

func (r *UserRepo) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, "UPDATE users SET deleted_at = $2, updated_at = $3 WHERE id = $1", id, deletedAt, updatedAt)
	if err != nil {
		return fmt.Errorf("set user deleted_at: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina el usuario; work_at se borra por ON DELETE CASCADE.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) CountByField(ctx context.Context, field, value, excludingID string) (int64, error) {
	col, ok := userUniqueColumns[field]
	if !ok {
		return 0, fmt.Errorf("count users: campo no permitido %q", field)
	}
	var n int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE "+col+" = $1 AND id <> $2", value, excludingID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
