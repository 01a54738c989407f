package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	ch        chan kafka.Message
	mu        sync.Mutex
	committed []int64
}

func newFakeSource(values ...string) *fakeSource {
	ch := make(chan kafka.Message, len(values))
	for i, v := range values {
		ch <- kafka.Message{Offset: int64(i), Value: []byte(v)}
	}
	close(ch)
	return &fakeSource{ch: ch}
}

func (f *fakeSource) Messages() <-chan kafka.Message { return f.ch }

func (f *fakeSource) CommitOffset(_ context.Context, msg kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, msg.Offset)
	return nil
}

func event(name, bucket, key string) string {
	return fmt.Sprintf(`{"Records":[{"eventName":%q,"s3":{"bucket":{"name":%q},"object":{"key":%q}}}]}`, name, bucket, key)
}

func collect[T any](t *testing.T, ch <-chan *FetchedObject[T]) []*FetchedObject[T] {
	t.Helper()
	var out []*FetchedObject[T]
	timeout := time.After(time.Second)
	for {
		select {
		case obj, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, obj)
		case <-timeout:
			t.Fatal("timed out waiting for iterator")
		}
	}
}

func TestIterator_Objects(t *testing.T) {
	source := newFakeSource(
		event("s3:ObjectCreated:Put", "winemap", "slots/wines.json"),
		`not json`,
		event("s3:ObjectCreated:Put", "winemap", "slots/other.json"),
		event("s3:ObjectRemoved:Delete", "winemap", "slots/wines.json"),
		event("s3:ObjectCreated:Put", "winemap", "slots%2Fwines.json"),
	)
	var loads []string
	loader := func(_ context.Context, bucket, key string) (string, error) {
		loads = append(loads, bucket+"/"+key)
		return "loaded:" + key, nil
	}

	it := NewIterator(source, loader, MatchObject("winemap", "slots/wines.json"), zap.NewNop())
	got := collect(t, it.Objects(context.Background()))

	require.Len(t, got, 2)
	assert.Equal(t, "loaded:slots/wines.json", got[0].Data)
	assert.Equal(t, "s3:ObjectCreated:Put", got[0].Event.EventName)
	assert.Equal(t, []string{"winemap/slots/wines.json", "winemap/slots/wines.json"}, loads)
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, source.committed)
}

func TestIterator_LoadFailureNotCommitted(t *testing.T) {
	source := newFakeSource(
		event("s3:ObjectCreated:Put", "b", "k"),
		event("s3:ObjectCreated:Put", "b", "k"),
	)
	calls := 0
	loader := func(context.Context, string, string) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("timeout")
		}
		return 42, nil
	}

	got := collect(t, NewIterator(source, loader, nil, nil).Objects(context.Background()))
	require.Len(t, got, 1)
	assert.Equal(t, 42, got[0].Data)
	assert.Equal(t, []int64{1}, source.committed)
}
