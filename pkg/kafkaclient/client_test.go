package kafkaclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockReader simulates the kafka-go Reader for unit testing.
type mockReader struct {
	messages   chan kafka.Message
	commitChan chan kafka.Message
	closed     atomic.Bool
}

func newMockReader() *mockReader {
	return &mockReader{
		messages:   make(chan kafka.Message, 10),
		commitChan: make(chan kafka.Message, 200),
	}
}

// produce simulates count messages arriving, then the stream ending.
func (mr *mockReader) produce(count int) {
	go func() {
		defer close(mr.messages)
		for i := 0; i < count; i++ {
			if mr.closed.Load() {
				return
			}
			mr.messages <- kafka.Message{
				Topic:  "test-topic",
				Offset: int64(i),
				Value:  []byte(fmt.Sprintf("mock-message-%d", i)),
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()
}

func (mr *mockReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if mr.closed.Load() {
		return kafka.Message{}, io.EOF
	}
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case msg, ok := <-mr.messages:
		if !ok {
			return kafka.Message{}, io.EOF
		}
		return msg, nil
	}
}

func (mr *mockReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	if mr.closed.Load() {
		return errors.New("kafka: reader closed")
	}
	for _, msg := range msgs {
		mr.commitChan <- msg
	}
	return nil
}

func (mr *mockReader) Close() error {
	mr.closed.Store(true)
	return nil
}

func TestKafkaConsumer_ConsumeAndCommit(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reader := newMockReader()
	consumer := newConsumer(reader, zap.NewNop())

	const expected = 3
	reader.produce(expected)
	consumer.StartConsuming(ctx)

	received := 0
	for msg := range consumer.Messages() {
		assert.Equal(t, fmt.Sprintf("mock-message-%d", received), string(msg.Value))
		require.NoError(t, consumer.CommitOffset(ctx, msg))
		received++
	}
	assert.Equal(t, expected, received)

	consumer.Stop()
	assert.Len(t, reader.commitChan, expected)
	assert.True(t, reader.closed.Load())
}

func TestKafkaConsumer_FetchedMessageNotCommittedUntilAcknowledged(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reader := newMockReader()
	consumer := newConsumer(reader, zap.NewNop())
	reader.produce(2)
	consumer.StartConsuming(ctx)

	var fetched []kafka.Message
	for msg := range consumer.Messages() {
		fetched = append(fetched, msg)
	}
	require.Len(t, fetched, 2)
	assert.Empty(t, reader.commitChan, "fetching must not commit")

	require.NoError(t, consumer.CommitOffset(ctx, fetched[1]))
	consumer.Stop()

	require.Len(t, reader.commitChan, 1)
	assert.Equal(t, int64(1), (<-reader.commitChan).Offset)
}

func TestKafkaConsumer_GracefulShutdown(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reader := newMockReader()
	consumer := newConsumer(reader, zap.NewNop())
	reader.produce(100)
	consumer.StartConsuming(ctx)

	for i := 0; i < 5; i++ {
		select {
		case <-consumer.Messages():
		case <-time.After(500 * time.Millisecond):
			t.Fatal("timed out waiting for a message")
		}
	}

	consumer.Stop()
	consumer.Stop()

	remaining := 0
	for range consumer.Messages() {
		remaining++
	}
	assert.Zero(t, remaining, "channel must be closed after Stop")
	assert.True(t, reader.closed.Load())
}

type flakyReader struct {
	*mockReader
	failures atomic.Int32
}

func (f *flakyReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if f.failures.Add(-1) >= 0 {
		return kafka.Message{}, errors.New("broker unavailable")
	}
	return f.mockReader.FetchMessage(ctx)
}

func TestKafkaConsumer_RetriesAfterReadError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reader := &flakyReader{mockReader: newMockReader()}
	reader.failures.Store(2)
	consumer := newConsumer(reader, zap.NewNop())
	consumer.retryDelay = time.Millisecond

	reader.produce(1)
	consumer.StartConsuming(ctx)

	var got []string
	for msg := range consumer.Messages() {
		got = append(got, string(msg.Value))
	}
	assert.Equal(t, []string{"mock-message-0"}, got)
	consumer.Stop()
}

type mockWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *mockWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_Publish(t *testing.T) {
	w := &mockWriter{}
	p := &Producer{writer: w, topic: "records"}

	require.NoError(t, p.Publish(context.Background(), []byte("k"), []byte("v")))
	require.Len(t, w.messages, 1)
	assert.Equal(t, "k", string(w.messages[0].Key))
	assert.Equal(t, "v", string(w.messages[0].Value))

	w.err = errors.New("leader not available")
	err := p.Publish(context.Background(), nil, nil)
	assert.ErrorIs(t, err, w.err)
	assert.ErrorContains(t, err, "records")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
