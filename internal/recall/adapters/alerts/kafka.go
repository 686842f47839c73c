// Package alerts delivers recall alerts to stakeholders.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"recallguard/internal/platform/kafka"
	"recallguard/internal/recall/ports"
)

// DefaultTopic receives recall alerts when no topic is configured.
const DefaultTopic = "recall.alerts"

// Publisher is the subset of the Kafka producer the dispatcher needs.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaDispatcher publishes one message per alert, keyed by batch so alerts
// for the same batch stay ordered on a partition.
type KafkaDispatcher struct {
	publisher Publisher
	topic     string
	logger    *slog.Logger
}

func NewKafkaDispatcher(publisher Publisher, topic string, logger *slog.Logger) *KafkaDispatcher {
	if topic == "" {
		topic = DefaultTopic
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &KafkaDispatcher{publisher: publisher, topic: topic, logger: logger}
}

func (d *KafkaDispatcher) SendAlert(ctx context.Context, alert ports.Alert) error {
	value, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}
	msg := kafka.Message{
		Topic: d.topic,
		Key:   []byte(alert.BatchID.String()),
		Value: value,
		Headers: map[string]string{
			"recall_id": alert.RecallID.String(),
			"caller":    alert.Caller.String(),
		},
	}
	if err := d.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	d.logger.DebugContext(ctx, "recall alert published",
		"topic", d.topic,
		"recall_id", alert.RecallID.String(),
		"batch_id", alert.BatchID.String(),
	)
	return nil
}
