package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/staffdir/internal/application/ports"
)

// KafkaPublisher publica eventos de cambio en un topic. La clave del mensaje es el id del registro,
// así todos los eventos de un mismo registro caen en la misma partición.
type KafkaPublisher struct {
	writer *kafka.Writer
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher construye el publicador. No abre conexiones hasta el primer Publish.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           5 * time.Second,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish escribe el evento de forma síncrona.
func (p *KafkaPublisher) Publish(ctx context.Context, event ports.RecordEvent) error {
	msg, err := buildMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// Close vacía los lotes pendientes y libera el writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func buildMessage(event ports.RecordEvent) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event %s: %w", event.Type, err)
	}
	return kafka.Message{
		Key:   []byte(event.ID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}
