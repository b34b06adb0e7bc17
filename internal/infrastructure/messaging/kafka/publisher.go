package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/cargoline/shipping-core/internal/api/metrics"
	"github.com/cargoline/shipping-core/internal/core/domain"
)

// DefaultTopic receives one message per recorded lifecycle stage.
const DefaultTopic = "shipment.stage-recorded"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher emits StageRecorded notifications keyed by tracking number, so a
// shipment's notifications land on one partition in order.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, event domain.StageRecorded) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal stage event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.TrackingNumber),
		Value: data,
		Time:  event.RecordedAt,
		Headers: []kafka.Header{
			{Key: "stage", Value: []byte(event.CurrentStage)},
		},
	})
	if err != nil {
		metrics.EventsPublishedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("publish stage event: %w", err)
	}
	metrics.EventsPublishedTotal.WithLabelValues("ok").Inc()
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every notification. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.StageRecorded) error { return nil }
