package repository

import (
	"context"

	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/query"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. Delete elimina también las aristas de empleo.
type CompanyRepository interface {
	LifecycleRepository
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context, filter query.Filter) ([]*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
}
