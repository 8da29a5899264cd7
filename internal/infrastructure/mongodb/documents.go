package mongodb

import (
	"time"

	"github.com/jhoicas/staffdir/internal/domain/entity"
)

type userDocument struct {
	ID        string     `bson:"_id"`
	Name      string     `bson:"name"`
	Email     string     `bson:"email"`
	Password  string     `bson:"password"`
	Avatar    string     `bson:"avatar"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty"`
}

type companyDocument struct {
	ID        string     `bson:"_id"`
	Name      string     `bson:"name"`
	Since     time.Time  `bson:"since"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty"`
}

// workAtDocument arista de empleo; _id es el user_id (una empresa por usuario).
type workAtDocument struct {
	UserID    string     `bson:"_id"`
	CompanyID string     `bson:"company_id"`
	Since     *time.Time `bson:"since,omitempty"`
	Position  string     `bson:"position"`
}

// Mongo guarda fechas con precisión de milisegundos y las devuelve en UTC.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func userToDocument(u *entity.User) userDocument {
	return userDocument{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}

func (d userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Avatar:       d.Avatar,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
		DeletedAt:    utcPtr(d.DeletedAt),
	}
}

func companyToDocument(c *entity.Company) companyDocument {
	return companyDocument{
		ID:        c.ID,
		Name:      c.Name,
		Since:     c.Since,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		DeletedAt: c.DeletedAt,
	}
}

func (d companyDocument) toEntity() *entity.Company {
	return &entity.Company{
		ID:        d.ID,
		Name:      d.Name,
		Since:     d.Since.UTC(),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
		DeletedAt: utcPtr(d.DeletedAt),
	}
}

func usersFromDocuments(docs []userDocument) []*entity.User {
	out := make([]*entity.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out
}
