package repository

import (
	"context"
	"time"
)

// LifecycleRepository operaciones de borrado lógico y físico comunes a todas las entidades.
type LifecycleRepository interface {
	// DeletedAt devuelve la marca de borrado y si el registro existe.
	DeletedAt(ctx context.Context, id string) (deletedAt *time.Time, found bool, err error)
	// SetDeletedAt fija (trash) o limpia (restore, deletedAt nil) la marca y refresca updated_at.
	SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error
	// Delete elimina el registro y sus aristas de empleo.
	Delete(ctx context.Context, id string) error
}

// UniquenessCounter cuenta registros con field = value, excluyendo excludingID si no es vacío.
// field debe ser uno de los campos declarados por la entidad (p. ej. entity.FieldEmail).
type UniquenessCounter interface {
	CountByField(ctx context.Context, field, value, excludingID string) (int64, error)
}
