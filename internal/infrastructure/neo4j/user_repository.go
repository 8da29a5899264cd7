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

var userUniqueFields = map[string]string{
	entity.FieldEmail: "email",
}

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre nodos :User.
type UserRepo struct {
	c *client
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	if _, err := r.c.run(ctx, "CREATE (n:User $props)", map[string]any{"props": userProps(u)}); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	res, err := r.c.run(ctx, "MATCH (n:User {id: $id}) RETURN n", map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	users, err := collectNodes(res, "n", nodeToUser)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return users[0], nil
}

func (r *UserRepo) List(ctx context.Context, f query.Filter) ([]*entity.User, error) {
	cypher, params := userListTemplate.build(f)
	res, err := r.c.run(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collectNodes(res, "n", nodeToUser)
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	res, err := r.c.run(ctx, `
		MATCH (n:User {id: $id})
		SET n.name = $name, n.email = $email, n.password = $password, n.avatar = $avatar, n.updated_at = $updated_at
		RETURN n.id AS id`,
		map[string]any{
			"id":         u.ID,
			"name":       u.Name,
			"email":      u.Email,
			"password":   u.PasswordHash,
			"avatar":     u.Avatar,
			"updated_at": u.UpdatedAt,
		})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if len(res.Records) == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) DeletedAt(ctx context.Context, id string) (*time.Time, bool, error) {
	return deletedAtOf(ctx, r.c, "User", id)
}

func (r *UserRepo) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	return setDeletedAt(ctx, r.c, "User", id, deletedAt, updatedAt, domain.ErrUserNotFound)
}

// Delete elimina el nodo y su relación WORK_AT.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return detachDelete(ctx, r.c, "User", id, domain.ErrUserNotFound)
}

func (r *UserRepo) CountByField(ctx context.Context, field, value, excludingID string) (int64, error) {
	prop, ok := userUniqueFields[field]
	if !ok {
		return 0, fmt.Errorf("count users: campo no permitido %q", field)
	}
	res, err := r.c.run(ctx,
		"MATCH (n:User) WHERE n."+prop+" = $value AND n.id <> $exclude RETURN count(n) AS total",
		map[string]any{"value": value, "exclude": excludingID})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	if len(res.Records) == 0 {
		return 0, nil
	}
	total, _, err := neo4j.GetRecordValue[int64](res.Records[0], "total")
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

// ── Helpers de ciclo de vida compartidos con CompanyRepo ─────────────────────

// label proviene siempre de una constante del paquete, nunca del cliente.
func deletedAtOf(ctx context.Context, c *client, label, id string) (*time.Time, bool, error) {
	res, err := c.run(ctx, "MATCH (n:"+label+" {id: $id}) RETURN n", map[string]any{"id": id})
	if err != nil {
		return nil, false, fmt.Errorf("get %s state: %w", label, err)
	}
	if len(res.Records) == 0 {
		return nil, false, nil
	}
	n, _, err := neo4j.GetRecordValue[neo4j.Node](res.Records[0], "n")
	if err != nil {
		return nil, false, fmt.Errorf("get %s state: %w", label, err)
	}
	return propTime(n.Props, "deleted_at"), true, nil
}

// setDeletedAt con deletedAt nil elimina la propiedad (SET a null).
func setDeletedAt(ctx context.Context, c *client, label, id string, deletedAt *time.Time, updatedAt time.Time, notFound error) error {
	res, err := c.run(ctx,
		"MATCH (n:"+label+" {id: $id}) SET n.deleted_at = $deleted_at, n.updated_at = $updated_at RETURN n.id AS id",
		map[string]any{"id": id, "deleted_at": nullable(deletedAt), "updated_at": updatedAt})
	if err != nil {
		return fmt.Errorf("set %s deleted_at: %w", label, err)
	}
	if len(res.Records) == 0 {
		return notFound
	}
	return nil
}

func detachDelete(ctx context.Context, c *client, label, id string, notFound error) error {
	res, err := c.run(ctx, "MATCH (n:"+label+" {id: $id}) DETACH DELETE n", map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", label, err)
	}
	if res.Summary.Counters().NodesDeleted() == 0 {
		return notFound
	}
	return nil
}
