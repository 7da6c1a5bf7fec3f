package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// Producer is the subset of *kafka.Writer used for forwarding events.
type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter builds the writer for the configured brokers and topic.
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// envelope is the JSON value written for every forwarded event.
type envelope struct {
	EventID       string          `json:"eventId"`
	EventType     string          `json:"eventType"`
	AggregateType string          `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Payload       json.RawMessage `json:"payload"`
}

// KafkaPublisher is an event handler that forwards every domain event to a
// Kafka topic keyed by aggregate id, so events of one aggregate stay ordered
// on a partition. Trace context travels in the message headers.
type KafkaPublisher struct {
	producer Producer
	logger   *zap.Logger
}

func NewKafkaPublisher(producer Producer, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: logger}
}

// EventTypes is empty: the publisher subscribes to every event.
func (p *KafkaPublisher) EventTypes() []string {
	return nil
}

func (p *KafkaPublisher) Handle(ctx context.Context, ev shared.DomainEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", ev.EventType(), err)
	}
	value, err := json.Marshal(envelope{
		EventID:       ev.EventID().String(),
		EventType:     ev.EventType(),
		AggregateType: ev.AggregateType(),
		AggregateID:   ev.AggregateID().String(),
		OccurredAt:    ev.OccurredAt(),
		Payload:       payload,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	headers := []kafka.Header{{Key: "event-type", Value: []byte(ev.EventType())}}
	for k, v := range carrier {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	msg := kafka.Message{
		Key:     []byte(ev.AggregateID().String()),
		Value:   value,
		Headers: headers,
		Time:    ev.OccurredAt(),
	}
	if err := p.producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write event %s to kafka: %w", ev.EventType(), err)
	}
	p.logger.Debug("event forwarded to kafka",
		zap.String("event_type", ev.EventType()),
		zap.String("event_id", ev.EventID().String()),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

var _ shared.EventHandler = (*KafkaPublisher)(nil)
