package kafkaclient

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaReader defines the subset of *kafka.Reader the consumer uses, so it
// can be replaced in tests.
type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ KafkaReader = (*kafka.Reader)(nil)

// ConsumerConfig names what a consumer reads.
type ConsumerConfig struct {
	Broker  string
	Topic   string
	GroupID string
}

// KafkaConsumer pumps messages from a reader into a channel until it is
// stopped or its context ends. Messages are fetched without committing;
// offsets move only through CommitOffset.
type KafkaConsumer struct {
	reader      KafkaReader
	logger      *zap.Logger
	doneChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
	messageChan chan kafka.Message
	retryDelay  time.Duration
}

// NewKafkaConsumer creates a consumer reading cfg.Topic as part of cfg.GroupID.
func NewKafkaConsumer(cfg ConsumerConfig, logger *zap.Logger) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
		// Offsets are committed by CommitOffset only.
		CommitInterval: 0,
		MinBytes:       1,
		MaxBytes:       10e6,
	})
	return newConsumer(reader, logger)
}

func newConsumer(reader KafkaReader, logger *zap.Logger) *KafkaConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaConsumer{
		reader:      reader,
		logger:      logger,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
		retryDelay:  time.Second,
	}
}

// Messages returns the channel messages are delivered on. It is closed when
// the consume loop exits.
func (kc *KafkaConsumer) Messages() <-chan kafka.Message {
	return kc.messageChan
}

// CommitOffset acknowledges msg.
func (kc *KafkaConsumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	kc.logger.Debug("committing offset",
		zap.String("topic", msg.Topic),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	)
	return kc.reader.CommitMessages(ctx, msg)
}

// StartConsuming runs the consume loop in a separate goroutine.
func (kc *KafkaConsumer) StartConsuming(ctx context.Context) {
	kc.wg.Add(1)
	go func() {
		defer kc.wg.Done()
		defer close(kc.messageChan)

		kc.logger.Info("starting kafka consumer loop")
		for {
			select {
			case <-ctx.Done():
				kc.logger.Info("context canceled, stopping consumer loop")
				return
			case <-kc.doneChan:
				kc.logger.Info("shutdown signal received, stopping consumer loop")
				return
			default:
			}

			msg, err := kc.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
					return
				}
				kc.logger.Warn("error reading message", zap.Error(err))
				// Back off to avoid a tight error loop.
				select {
				case <-time.After(kc.retryDelay):
				case <-ctx.Done():
					return
				case <-kc.doneChan:
					return
				}
				continue
			}

			select {
			case kc.messageChan <- msg:
			case <-ctx.Done():
				return
			case <-kc.doneChan:
				return
			}
		}
	}()
}

// Stop ends the consume loop, waits for it and closes the reader. It is
// safe to call more than once.
func (kc *KafkaConsumer) Stop() {
	kc.stopOnce.Do(func() {
		close(kc.doneChan)
		kc.wg.Wait()
		if err := kc.reader.Close(); err != nil {
			kc.logger.Warn("failed to close kafka reader", zap.Error(err))
		}
		kc.logger.Info("kafka consumer stopped")
	})
}
