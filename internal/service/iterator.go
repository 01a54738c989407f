// Package service turns object-store change notifications into freshly
// loaded objects. The notifications are MinIO/S3 bucket events delivered
// through a message source such as Kafka (see pkg/kafkaclient).
package service

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Iterator consumes notification messages, loads every matching created
// object with its LoaderFunc and yields the results on a channel. It does
// not own the message source; start and stop the consumer outside.
type Iterator[T any] struct {
	msgIterator MessageIterator
	loader      LoaderFunc[T]
	match       KeyFilter
	logger      *zap.Logger
}

// NewIterator constructs an Iterator. A nil match accepts every object.
func NewIterator[T any](source MessageIterator, loader LoaderFunc[T], match KeyFilter, logger *zap.Logger) *Iterator[T] {
	if match == nil {
		match = func(string, string) bool { return true }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Iterator[T]{msgIterator: source, loader: loader, match: match, logger: logger}
}

// Objects starts a goroutine that decodes each message as notification.Info,
// loads every matching s3:ObjectCreated:* record and emits it. Undecodable
// messages and non-matching records are skipped and their offsets committed;
// a message whose load failed is left uncommitted so it is redelivered. The
// returned channel closes when the source closes or ctx ends.
func (it *Iterator[T]) Objects(ctx context.Context) <-chan *FetchedObject[T] {
	out := make(chan *FetchedObject[T])
	go func() {
		defer close(out)

		for msg := range it.msgIterator.Messages() {
			var info notification.Info
			if err := json.Unmarshal(msg.Value, &info); err != nil {
				it.logger.Warn("skipping undecodable notification", zap.Int64("offset", msg.Offset), zap.Error(err))
				it.commit(ctx, msg)
				continue
			}

			ok := true
			for _, event := range info.Records {
				if !strings.HasPrefix(event.EventName, "s3:ObjectCreated:") {
					continue
				}
				bucket := event.S3.Bucket.Name
				key, err := url.QueryUnescape(event.S3.Object.Key)
				if err != nil {
					it.logger.Warn("skipping notification with bad key", zap.String("key", event.S3.Object.Key), zap.Error(err))
					continue
				}
				if !it.match(bucket, key) {
					continue
				}

				data, err := it.loader(ctx, bucket, key)
				if err != nil {
					it.logger.Warn("error loading object", zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
					ok = false
					continue
				}
				select {
				case out <- &FetchedObject[T]{Data: data, Event: event}:
				case <-ctx.Done():
					return
				}
			}
			if ok {
				it.commit(ctx, msg)
			}
		}
	}()
	return out
}

func (it *Iterator[T]) commit(ctx context.Context, msg kafka.Message) {
	if err := it.msgIterator.CommitOffset(ctx, msg); err != nil {
		it.logger.Warn("failed to commit offset", zap.Int64("offset", msg.Offset), zap.Error(err))
	}
}
