package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/staffdir/internal/domain/repository"
)

// UniquenessChecker responde si un valor está libre para un campo.
// No reserva nada: entre la comprobación y la escritura otra petición puede ocupar el valor.
type UniquenessChecker struct {
	counter repository.UniquenessCounter
}

// NewUniquenessChecker construye el verificador sobre el contador del repositorio.
func NewUniquenessChecker(counter repository.UniquenessCounter) *UniquenessChecker {
	return &UniquenessChecker{counter: counter}
}

// IsUnique es verdadero si ningún registro, salvo excludingID, tiene field = value.
func (c *UniquenessChecker) IsUnique(ctx context.Context, field, value, excludingID string) (bool, error) {
	n, err := c.counter.CountByField(ctx, field, value, excludingID)
	if err != nil {
		return false, fmt.Errorf("check unique %s: %w", field, err)
	}
	return n == 0, nil
}
