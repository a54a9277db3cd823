package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"yelagiri_booking/internal/infrastructure/telemetry"
	"yelagiri_booking/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher writes JSON events to a single topic, keyed by aggregate id.
type KafkaPublisher struct {
	writer *kafka.Writer
}

var _ interfaces.IEventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, event any) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: b}); err != nil {
		return err
	}
	telemetry.Logger.Debug("[messaging][kafka] event published", zap.String("topic", p.writer.Topic), zap.String("key", key))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

var _ interfaces.IEventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }

// NewPublisher returns a Kafka publisher when brokers are configured and a
// no-op publisher otherwise. The returned close func is always safe to call.
func NewPublisher(brokers []string, topic string) (interfaces.IEventPublisher, func() error) {
	if len(brokers) == 0 {
		telemetry.Logger.Info("[messaging] no kafka brokers configured; events are dropped")
		return NoopPublisher{}, func() error { return nil }
	}
	p := NewKafkaPublisher(brokers, topic)
	telemetry.Logger.Info("[messaging][kafka] publisher ready", zap.Strings("brokers", brokers), zap.String("topic", topic))
	return p, p.Close
}
