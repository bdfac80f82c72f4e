package events

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// Kafka writes events keyed by reservation ID, so every event for one
// reservation lands on the same partition in order.
type Kafka struct {
	w *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Kafka) Publish(ctx context.Context, e Event) error {
	const op = "events.Kafka.Publish"

	body, err := e.encode()
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.ReservationID.String()),
		Value: body,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (p *Kafka) Close() error {
	return p.w.Close()
}
