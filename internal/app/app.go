// Package app wires configuration into a ready record store.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"winemap/internal/config"
	"winemap/internal/events"
	"winemap/internal/metrics"
	"winemap/internal/resolver"
	"winemap/internal/storage"
	"winemap/internal/store"
	"winemap/pkg/kafkaclient"
	"winemap/pkg/location"
)

// App holds the long-lived collaborators of a command.
type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Store    *store.Store
	Repo     *storage.Repository
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry

	closers []func()
}

// OpenSlot connects the storage backend selected by cfg.Storage. The
// returned func releases the connection.
func OpenSlot(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Slot, func(), error) {
	noop := func() {}
	switch cfg.Storage {
	case config.StorageFile:
		return storage.NewFileSlot(cfg.DataDir, cfg.Slot), noop, nil
	case config.StorageS3:
		client, err := storage.NewMinioClient(cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		slot := storage.NewS3Slot(client, cfg.S3.Bucket, cfg.Slot, logger)
		if err := slot.EnsureBucket(ctx, cfg.S3.Region); err != nil {
			return nil, nil, err
		}
		logger.Info("using s3 storage", zap.String("endpoint", cfg.S3.Endpoint), zap.String("bucket", slot.Bucket()), zap.String("key", slot.Key()))
		return slot, noop, nil
	case config.StoragePostgres:
		slot, err := storage.NewPostgresSlot(ctx, cfg.DatabaseURL, cfg.Slot)
		if err != nil {
			return nil, nil, err
		}
		return slot, slot.Close, nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return storage.NewRedisSlot(client, cfg.Slot), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// New builds the store: it opens the slot, hydrates the collection, and
// connects the geocoder, metrics and change feed.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Logger: logger}

	slot, closeSlot, err := OpenSlot(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage, err)
	}
	a.closers = append(a.closers, closeSlot)

	a.Metrics = metrics.New()
	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := a.Metrics.Register(a.Registry); err != nil {
		a.Close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	var notifier store.Notifier = events.NewLogNotifier(logger)
	if cfg.KafkaBroker != "" {
		producer := kafkaclient.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
		a.closers = append(a.closers, func() {
			if err := producer.Close(); err != nil {
				logger.Warn("failed to close kafka producer", zap.Error(err))
			}
		})
		notifier = events.NewKafkaNotifier(producer, logger)
		logger.Info("publishing record events", zap.String("broker", cfg.KafkaBroker), zap.String("topic", cfg.KafkaTopic))
	}

	a.Repo = storage.NewRepository(slot, logger)
	geocoder := location.NewClient(cfg.NominatimURL, cfg.NominatimUserAgent)
	a.Store = store.New(
		a.Repo.Hydrate(ctx),
		resolver.New(geocoder, a.Metrics, logger),
		a.Repo,
		store.Options{Notifier: notifier, Recorder: a.Metrics, Logger: logger},
	)
	return a, nil
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
