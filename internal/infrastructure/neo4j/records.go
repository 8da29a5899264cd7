package neo4j

import (
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/jhoicas/staffdir/internal/domain/entity"
)

func propString(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

// propTime acepta DateTime (time.Time) y Date; ausente devuelve nil.
func propTime(props map[string]any, key string) *time.Time {
	var t time.Time
	switch v := props[key].(type) {
	case time.Time:
		t = v.UTC()
	case dbtype.Date:
		t = v.Time().UTC()
	case dbtype.LocalDateTime:
		t = v.Time().UTC()
	default:
		return nil
	}
	return &t
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// nullable traduce un puntero nil a null de Cypher.
func nullable(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nodeToUser(n neo4j.Node) *entity.User {
	return &entity.User{
		ID:           propString(n.Props, "id"),
		Name:         propString(n.Props, "name"),
		Email:        propString(n.Props, "email"),
		PasswordHash: propString(n.Props, "password"),
		Avatar:       propString(n.Props, "avatar"),
		CreatedAt:    timeOrZero(propTime(n.Props, "created_at")),
		UpdatedAt:    timeOrZero(propTime(n.Props, "updated_at")),
		DeletedAt:    propTime(n.Props, "deleted_at"),
	}
}

func nodeToCompany(n neo4j.Node) *entity.Company {
	return &entity.Company{
		ID:        propString(n.Props, "id"),
		Name:      propString(n.Props, "name"),
		Since:     timeOrZero(propTime(n.Props, "since")),
		CreatedAt: timeOrZero(propTime(n.Props, "created_at")),
		UpdatedAt: timeOrZero(propTime(n.Props, "updated_at")),
		DeletedAt: propTime(n.Props, "deleted_at"),
	}
}

func userProps(u *entity.User) map[string]any {
	props := map[string]any{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"password":   u.PasswordHash,
		"avatar":     u.Avatar,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
	if u.DeletedAt != nil {
		props["deleted_at"] = *u.DeletedAt
	}
	return props
}

func companyProps(c *entity.Company) map[string]any {
	props := map[string]any{
		"id":         c.ID,
		"name":       c.Name,
		"since":      neo4j.DateOf(c.Since),
		"created_at": c.CreatedAt,
		"updated_at": c.UpdatedAt,
	}
	if c.DeletedAt != nil {
		props["deleted_at"] = *c.DeletedAt
	}
	return props
}

// collectNodes extrae la columna key de cada registro como nodo y lo convierte con conv.
func collectNodes[T any](res *neo4j.EagerResult, key string, conv func(neo4j.Node) *T) ([]*T, error) {
	out := make([]*T, 0, len(res.Records))
	for _, rec := range res.Records {
		n, _, err := neo4j.GetRecordValue[neo4j.Node](rec, key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		out = append(out, conv(n))
	}
	return out, nil
}
