package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/query"
	"github.com/jhoicas/staffdir/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre nodos :Company.
type CompanyRepo struct {
	c *client
}

func (r *CompanyRepo) Create(ctx context.Context, co *entity.Company) error {
	if _, err := r.c.run(ctx, "CREATE (n:Company $props)", map[string]any{"props": companyProps(co)}); err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	res, err := r.c.run(ctx, "MATCH (n:Company {id: $id}) RETURN n", map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	companies, err := collectNodes(res, "n", nodeToCompany)
	if err != nil || len(companies) == 0 {
		return nil, err
	}
	return companies[0], nil
}

func (r *CompanyRepo) List(ctx context.Context, f query.Filter) ([]*entity.Company, error) {
	cypher, params := companyListTemplate.build(f)
	res, err := r.c.run(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return collectNodes(res, "n", nodeToCompany)
}

func (r *CompanyRepo) Update(ctx context.Context, co *entity.Company) error {
	res, err := r.c.run(ctx,
		"MATCH (n:Company {id: $id}) SET n.name = $name, n.since = $since, n.updated_at = $updated_at RETURN n.id AS id",
		map[string]any{
			"id":         co.ID,
			"name":       co.Name,
			"since":      neo4j.DateOf(co.Since),
			"updated_at": co.UpdatedAt,
		})
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if len(res.Records) == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepo) DeletedAt(ctx context.Context, id string) (*time.Time, bool, error) {
	return deletedAtOf(ctx, r.c, "Company", id)
}

func (r *CompanyRepo) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	return setDeletedAt(ctx, r.c, "Company", id, deletedAt, updatedAt, domain.ErrCompanyNotFound)
}

// Delete elimina el nodo y todas las relaciones WORK_AT entrantes.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	return detachDelete(ctx, r.c, "Company", id, domain.ErrCompanyNotFound)
}
