package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/repository"
)

// LifecycleManager aplica trash, restore y erase sobre cualquier entidad con LifecycleRepository.
// La lectura del estado y la escritura posterior no son atómicas: dos peticiones concurrentes
// sobre el mismo id pueden ver el mismo estado de partida.
type LifecycleManager struct {
	repo     repository.LifecycleRepository
	notFound error
	now      func() time.Time
}

// NewLifecycleManager construye el gestor. notFound es el error devuelto si el id no existe.
func NewLifecycleManager(repo repository.LifecycleRepository, notFound error) *LifecycleManager {
	return &LifecycleManager{repo: repo, notFound: notFound, now: now}
}

// Apply ejecuta mode sobre id y devuelve el estado resultante.
func (m *LifecycleManager) Apply(ctx context.Context, id string, mode entity.Mode) (entity.State, error) {
	deletedAt, found, err := m.repo.DeletedAt(ctx, id)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, m.notFound
	}
	next, err := entity.Transition(entity.StateOf(deletedAt), mode)
	if err != nil {
		return 0, err
	}
	ts := m.now()
	switch next {
	case entity.StateTrashed:
		err = m.repo.SetDeletedAt(ctx, id, &ts, ts)
	case entity.StateActive:
		err = m.repo.SetDeletedAt(ctx, id, nil, ts)
	case entity.StateErased:
		err = m.repo.Delete(ctx, id)
	}
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", mode, id, err)
	}
	return next, nil
}

// eventAction nombre del evento que corresponde al estado alcanzado.
func eventAction(s entity.State) string {
	switch s {
	case entity.StateTrashed:
		return "trashed"
	case entity.StateErased:
		return "erased"
	default:
		return "restored"
	}
}

// now marca temporal común a todos los backends (UTC, milisegundos).
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
