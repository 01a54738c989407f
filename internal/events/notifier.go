// Package events publishes committed collection mutations.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"winemap/internal/models"
)

// Publisher sends one keyed message.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// KafkaNotifier encodes record events as JSON keyed by record id.
type KafkaNotifier struct {
	publisher Publisher
	logger    *zap.Logger
}

func NewKafkaNotifier(publisher Publisher, logger *zap.Logger) *KafkaNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaNotifier{publisher: publisher, logger: logger}
}

func (n *KafkaNotifier) Notify(ctx context.Context, event models.RecordEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Kind, err)
	}
	if err := n.publisher.Publish(ctx, []byte(event.Record.ID.String()), value); err != nil {
		return err
	}
	n.logger.Debug("record event published",
		zap.String("kind", string(event.Kind)),
		zap.String("id", event.Record.ID.String()),
	)
	return nil
}

// LogNotifier only logs events. It stands in when no broker is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, event models.RecordEvent) error {
	n.logger.Debug("record event",
		zap.String("kind", string(event.Kind)),
		zap.Int("index", event.Index),
		zap.String("id", event.Record.ID.String()),
	)
	return nil
}
