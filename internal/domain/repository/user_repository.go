package repository

import (
	"context"

	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/query"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID devuelve (nil, nil) si el usuario no existe. Las lecturas no filtran registros en papelera.
type UserRepository interface {
	LifecycleRepository
	UniquenessCounter
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context, filter query.Filter) ([]*entity.User, error)
	// Update persiste name, email, password y avatar; devuelve domain.ErrUserNotFound si no existe.
	Update(ctx context.Context, user *entity.User) error
}
