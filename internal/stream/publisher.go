package stream

import (
	"context"
	"encoding/json"
	"fmt"

	"ordersync/internal/logger"
	"ordersync/internal/services/klaviyo"

	"github.com/segmentio/kafka-go"
)

// Publisher mirrors tracked events onto a Kafka topic so downstream
// consumers see the same stream Klaviyo does.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers []string, topic string, logger *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

func (p *Publisher) Publish(ctx context.Context, event *klaviyo.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Event),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Published %s event to %s", event.Event, p.writer.Topic)

	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
