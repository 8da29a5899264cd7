package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/repository"
)

const (
	employCypher = `
		MATCH (u:User {id: $user_id}), (c:Company {id: $company_id})
		OPTIONAL MATCH (u)-[old:WORK_AT]->(:Company)
		DELETE old
		WITH DISTINCT u, c
		CREATE (u)-[:WORK_AT {since: $since, position: $position}]->(c)
		RETURN c.id AS id`
	dismissCypher      = "MATCH (:User {id: $id})-[w:WORK_AT]->(:Company) DELETE w"
	companyOfCypher    = "MATCH (:User {id: $id})-[:WORK_AT]->(c:Company) RETURN c LIMIT 1"
	usersOfCypher      = "MATCH (n:User)-[:WORK_AT]->(:Company {id: $id}) RETURN n ORDER BY n.name, n.id"
	colleaguesOfCypher = `
		MATCH (u:User {id: $id})-[:WORK_AT]->(:Company)<-[:WORK_AT]-(n:User)
		WHERE n.id <> u.id
		RETURN DISTINCT n ORDER BY n.name, n.id`
)

var _ repository.EmploymentRepository = (*EmploymentRepo)(nil)

// EmploymentRepo consultas sobre la relación WORK_AT.
type EmploymentRepo struct {
	c *client
}

// Employ reemplaza la relación del usuario en una sola sentencia; sin filas significa que falta un extremo.
func (r *EmploymentRepo) Employ(ctx context.Context, e *entity.Employment) error {
	var since any
	if e.Since != nil {
		since = neo4j.DateOf(*e.Since)
	}
	res, err := r.c.run(ctx, employCypher, map[string]any{
		"user_id":    e.UserID,
		"company_id": e.CompanyID,
		"since":      since,
		"position":   e.Position,
	})
	if err != nil {
		return fmt.Errorf("employ: %w", err)
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("employ: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *EmploymentRepo) Dismiss(ctx context.Context, userID string) (bool, error) {
	res, err := r.c.run(ctx, dismissCypher, map[string]any{"id": userID})
	if err != nil {
		return false, fmt.Errorf("dismiss: %w", err)
	}
	return res.Summary.Counters().RelationshipsDeleted() > 0, nil
}

func (r *EmploymentRepo) CompanyOf(ctx context.Context, userID string) (*entity.Company, error) {
	res, err := r.c.run(ctx, companyOfCypher, map[string]any{"id": userID})
	if err != nil {
		return nil, fmt.Errorf("company of user: %w", err)
	}
	companies, err := collectNodes(res, "c", nodeToCompany)
	if err != nil || len(companies) == 0 {
		return nil, err
	}
	return companies[0], nil
}

func (r *EmploymentRepo) UsersOf(ctx context.Context, companyID string) ([]*entity.User, error) {
	res, err := r.c.run(ctx, usersOfCypher, map[string]any{"id": companyID})
	if err != nil {
		return nil, fmt.Errorf("users of company: %w", err)
	}
	return collectNodes(res, "n", nodeToUser)
}

func (r *EmploymentRepo) ColleaguesOf(ctx context.Context, userID string) ([]*entity.User, error) {
	res, err := r.c.run(ctx, colleaguesOfCypher, map[string]any{"id": userID})
	if err != nil {
		return nil, fmt.Errorf("colleagues of user: %w", err)
	}
	return collectNodes(res, "n", nodeToUser)
}
