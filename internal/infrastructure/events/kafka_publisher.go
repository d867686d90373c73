// Package events publishes purchase-order events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/nagane/franchise-api/internal/application/stock"
	"github.com/nagane/franchise-api/internal/domain/entity"
	"github.com/nagane/franchise-api/pkg/config"
)

var (
	_ stock.EventPublisher = (*KafkaPublisher)(nil)
	_ stock.EventPublisher = NopPublisher{}
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one message per event, keyed by purchase order id so that
// every event of an order lands on the same partition.
type KafkaPublisher struct {
	w MessageWriter
}

// NewKafkaWriter builds the writer for the configured brokers and topic.
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaPublisher wraps w. Close releases it.
func NewKafkaPublisher(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{w: w}
}

// Publish encodes the event as JSON and writes it.
func (p *KafkaPublisher) Publish(ctx context.Context, ev entity.PurchaseOrderEvent) error {
	msg, err := Message(ev)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s: %w", ev.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// Message builds the Kafka message for ev.
func Message(ev entity.PurchaseOrderEvent) (kafka.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode %s: %w", ev.Type, err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.PurchaseOrderID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}, nil
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, entity.PurchaseOrderEvent) error { return nil }
