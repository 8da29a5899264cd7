package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/repository"
)

var _ repository.EmploymentRepository = (*EmploymentRepo)(nil)

// EmploymentRepo arista WORK_AT como tabla work_at (clave primaria user_id: una empresa por usuario).
type EmploymentRepo struct {
	db Querier
}

// NewEmploymentRepository construye el adaptador de empleo.
func NewEmploymentRepository(db Querier) *EmploymentRepo {
	return &EmploymentRepo{db: db}
}

var (
	sqlEmploy = `
		INSERT INTO work_at (user_id, company_id, since, position)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET company_id = EXCLUDED.company_id, since = EXCLUDED.since, position = EXCLUDED.position`

	sqlCompanyOf = `
		SELECT ` + prefixed("c", companyColumns) + `
		FROM work_at w JOIN companies c ON c.id = w.company_id
		WHERE w.user_id = $1`

	sqlUsersOf = `
		SELECT ` + prefixed("u", userColumns) + `
		FROM work_at w JOIN users u ON u.id = w.user_id
		WHERE w.company_id = $1
		ORDER BY u.name ASC, u.id ASC`

	sqlColleaguesOf = `
		SELECT ` + prefixed("n", userColumns) + `
		FROM work_at w
		JOIN work_at wn ON wn.company_id = w.company_id AND wn.user_id <> w.user_id
		JOIN users n ON n.id = wn.user_id
		WHERE w.user_id = $1
		ORDER BY n.name ASC, n.id ASC`
)

func (r *EmploymentRepo) Employ(ctx context.Context, e *entity.Employment) error {
	if _, err := r.db.Exec(ctx, sqlEmploy, e.UserID, e.CompanyID, e.Since, e.Position); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("employ: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("employ: %w", err)
	}
	return nil
}

func (r *EmploymentRepo) Dismiss(ctx context.Context, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM work_at WHERE user_id = $1", userID)
	if err != nil {
		return false, fmt.Errorf("dismiss: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EmploymentRepo) CompanyOf(ctx context.Context, userID string) (*entity.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, sqlCompanyOf, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("company of user: %w", err)
	}
	return c, nil
}

func (r *EmploymentRepo) UsersOf(ctx context.Context, companyID string) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, sqlUsersOf, companyID)
	if err != nil {
		return nil, fmt.Errorf("users of company: %w", err)
	}
	return collectUsers(rows)
}

func (r *EmploymentRepo) ColleaguesOf(ctx context.Context, userID string) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, sqlColleaguesOf, userID)
	if err != nil {
		return nil, fmt.Errorf("colleagues of user: %w", err)
	}
	return collectUsers(rows)
}
