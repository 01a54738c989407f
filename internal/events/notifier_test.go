package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"winemap/internal/models"
)

type capturePublisher struct {
	key, value []byte
	err        error
}

func (c *capturePublisher) Publish(_ context.Context, key, value []byte) error {
	c.key, c.value = key, value
	return c.err
}

func TestKafkaNotifier(t *testing.T) {
	pub := &capturePublisher{}
	n := NewKafkaNotifier(pub, zap.NewNop())
	id := uuid.New()
	event := models.RecordEvent{
		Kind:   models.EventAdded,
		Index:  4,
		Record: models.WineRecord{ID: id, Name: "Test", Type: models.TypeRed, Location: "ボルドー"},
		At:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, n.Notify(context.Background(), event))
	assert.Equal(t, id.String(), string(pub.key))

	var decoded models.RecordEvent
	require.NoError(t, json.Unmarshal(pub.value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestKafkaNotifier_PublishError(t *testing.T) {
	boom := errors.New("broker down")
	n := NewKafkaNotifier(&capturePublisher{err: boom}, nil)
	assert.ErrorIs(t, n.Notify(context.Background(), models.RecordEvent{Kind: models.EventDeleted}), boom)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier(zap.NewNop()).Notify(context.Background(), models.RecordEvent{}))
}
