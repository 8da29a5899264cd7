package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/staffdir/internal/application/ports"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ports.RecordEvent) error { return nil }

func publisherOrNop(p ports.EventPublisher) ports.EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// publish emite el evento y solo registra el fallo: el cambio ya está persistido.
func publish(ctx context.Context, p ports.EventPublisher, entityName, action, id string, data any) {
	ev := ports.RecordEvent{
		Type:       entityName + "." + action,
		Entity:     entityName,
		ID:         id,
		OccurredAt: now(),
		Data:       data,
	}
	if err := p.Publish(ctx, ev); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("event", ev.Type).Str("id", id).Msg("no se pudo publicar el evento")
	}
}
