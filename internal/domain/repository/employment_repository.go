package repository

import (
	"context"

	"github.com/jhoicas/staffdir/internal/domain/entity"
)

// EmploymentRepository consultas y mutaciones sobre la arista WORK_AT (User → Company).
type EmploymentRepository interface {
	// Employ crea o reemplaza la arista del usuario. domain.ErrNotFound si falta un extremo.
	Employ(ctx context.Context, e *entity.Employment) error
	// Dismiss elimina la arista; false si el usuario no tenía empresa.
	Dismiss(ctx context.Context, userID string) (bool, error)
	// CompanyOf devuelve (nil, nil) si el usuario no trabaja en ninguna empresa.
	CompanyOf(ctx context.Context, userID string) (*entity.Company, error)
	UsersOf(ctx context.Context, companyID string) ([]*entity.User, error)
	// ColleaguesOf usuarios distintos de userID que comparten su empresa, sin duplicados.
	ColleaguesOf(ctx context.Context, userID string) ([]*entity.User, error)
}
