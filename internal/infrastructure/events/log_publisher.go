package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/staffdir/internal/application/ports"
)

// LogPublisher registra los eventos en el log en lugar de enviarlos (KAFKA_BROKERS vacío).
type LogPublisher struct{}

var _ ports.EventPublisher = LogPublisher{}

func (LogPublisher) Publish(ctx context.Context, event ports.RecordEvent) error {
	zerolog.Ctx(ctx).Debug().Str("event", event.Type).Str("id", event.ID).Msg("evento")
	return nil
}
