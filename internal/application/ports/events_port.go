package ports

import (
	"context"
	"time"
)

// RecordEvent notificación de cambio sobre un registro (user.created, company.trashed, ...).
type RecordEvent struct {
	Type       string    `json:"type"`
	Entity     string    `json:"entity"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// EventPublisher define el puerto de salida para eventos de cambio.
// Un fallo al publicar no revierte la operación que lo originó.
type EventPublisher interface {
	Publish(ctx context.Context, event RecordEvent) error
}
