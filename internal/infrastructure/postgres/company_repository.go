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

const companyColumns = "id, name, since, created_at, updated_at, deleted_at"

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(db Querier) *CompanyRepo {
	return &CompanyRepo{db: db}
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Since, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	q := `
		INSERT INTO companies (id, name, since, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.Exec(ctx, q, c.ID, c.Name, c.Since, c.CreatedAt, c.UpdatedAt); err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, "SELECT "+companyColumns+" FROM companies WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// List lista empresas según el filtro validado.
func (r *CompanyRepo) List(ctx context.Context, f query.Filter) ([]*entity.Company, error) {
	sql, args := companyListTemplate.build(f)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza nombre y fecha de fundación.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE companies SET name = $2, since = $3, updated_at = $4 WHERE id = $1",
		c.ID, c.Name, c.Since, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepo) DeletedAt(ctx context.Context, id string) (*time.Time, bool, error) {
	var deletedAt *time.Time
	err := r.db.QueryRow(ctx, "SELECT deleted_at FROM companies WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get company state: %w", err)
	}
	return deletedAt, true, nil
}

func (r *CompanyRepo) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, "UPDATE companies SET deleted_at = $2, updated_at = $3 WHERE id = $1", id, deletedAt, updatedAt)
	if err != nil {
		return fmt.Errorf("set company deleted_at: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// Delete elimina la empresa; work_at se borra por ON DELETE CASCADE.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM companies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}
