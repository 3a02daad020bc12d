package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/zherujiang/spotlight/internal/config"
	"github.com/zherujiang/spotlight/internal/logger"
)

// Event is the envelope of every booking message.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// NewEvent wraps payload in an envelope with a fresh id.
func NewEvent(eventType string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	Writer      messageWriter
	topicPrefix string
	logger      *logger.Logger
}

// NewProducer builds a producer without a default topic; each message names
// its own, derived from the event type.
func NewProducer(cfg config.KafkaConfig, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &Producer{Writer: writer, topicPrefix: cfg.TopicPrefix, logger: log}
}

// Topic returns the topic an event type is published to.
func (p *Producer) Topic(eventType string) string {
	return TopicName(p.topicPrefix, eventType)
}

// Publish streams one event keyed by key, so events about the same entity
// keep their order within a partition.
func (p *Producer) Publish(ctx context.Context, eventType, key string, payload any) error {
	event := NewEvent(eventType, payload)
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	topic := p.Topic(eventType)
	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: msgBytes,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
			{Key: "event-id", Value: []byte(event.ID)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.LogKafka("PUBLISH", topic, fmt.Sprintf("event %s key=%s", event.ID, key))
	return nil
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
