package service

import (
	"context"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"
)

// MessageIterator is the message source the Iterator reads bucket
// notifications from. *kafkaclient.KafkaConsumer implements it.
type MessageIterator interface {
	// Messages is closed by the implementation when consumption stops.
	Messages() <-chan kafka.Message
	// CommitOffset acknowledges a processed message.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// LoaderFunc loads and decodes the object named by a notification.
type LoaderFunc[T any] func(ctx context.Context, bucket, key string) (T, error)

// KeyFilter selects the objects whose notifications are acted on.
type KeyFilter func(bucket, key string) bool

// MatchObject returns a KeyFilter accepting exactly bucket/key.
func MatchObject(bucket, key string) KeyFilter {
	return func(b, k string) bool { return b == bucket && k == key }
}

// FetchedObject pairs loaded data with the notification that triggered it.
type FetchedObject[T any] struct {
	Data  T
	Event notification.Event
}
