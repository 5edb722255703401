// Package eventpub publishes transfer lifecycle events to Kafka.
package eventpub

import (
	"context"
	"encoding/json"

	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher publishes terminal transfer states. Delivery is best
// effort; the saga logs publish failures and moves on.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher returns a publisher writing to the given topic.
func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish writes the event keyed by transaction id, so all states of one
// transfer land in the same partition in order.
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.TransferEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: data,
	})
}

// Close closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
