package main

import (
	"context"

	"go.uber.org/zap"

	"winemap/internal/config"
	"winemap/internal/env"
	"winemap/internal/logging"
	"winemap/internal/models"
	"winemap/internal/placement"
	"winemap/internal/service"
	"winemap/internal/storage"
	"winemap/pkg/graceful"
	"winemap/pkg/kafkaclient"
)

// winewatch follows bucket notifications for the slot object and logs
// the marker layout every time the collection is rewritten.
func main() {
	env.LoadEnv()
	cfg := config.FromEnv()
	cfg.Storage = config.StorageS3

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat, "winewatch")
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.KafkaBroker, err = env.MustGetEnv("KAFKA_BROKER"); err != nil {
		logger.Fatal("kafka is required", zap.Error(err))
	}

	ctx, cancel := graceful.Context(context.Background(), logger)
	defer cancel()

	client, err := storage.NewMinioClient(cfg.S3)
	if err != nil {
		logger.Fatal("connect to object storage", zap.Error(err))
	}
	slot := storage.NewS3Slot(client, cfg.S3.Bucket, cfg.Slot, logger)
	repo := storage.NewRepository(slot, logger)

	logger.Info("watching slot",
		zap.String("broker", cfg.KafkaBroker),
		zap.String("topic", cfg.KafkaNotifyTopic),
		zap.String("group", cfg.KafkaGroupID),
		zap.String("bucket", slot.Bucket()),
		zap.String("key", slot.Key()))

	consumer := kafkaclient.NewKafkaConsumer(kafkaclient.ConsumerConfig{
		Broker:  cfg.KafkaBroker,
		Topic:   cfg.KafkaNotifyTopic,
		GroupID: cfg.KafkaGroupID,
	}, logger)
	consumer.StartConsuming(ctx)

	loader := func(ctx context.Context, _, _ string) ([]models.WineRecord, error) {
		return repo.Load(ctx)
	}
	it := service.NewIterator(consumer, loader, service.MatchObject(slot.Bucket(), slot.Key()), logger)
	for obj := range it.Objects(ctx) {
		logLayout(logger, obj.Data)
	}

	consumer.Stop()
	logger.Info("winewatch stopped")
}

func logLayout(logger *zap.Logger, records []models.WineRecord) {
	markers := placement.Markers(records)
	groups := make(map[models.Coordinates]int)
	for _, m := range markers {
		groups[models.Coordinates{Lat: m.Position.BaseLat, Lng: m.Position.BaseLng}]++
	}
	logger.Info("collection changed",
		zap.Int("records", len(records)),
		zap.Int("markers", len(markers)),
		zap.Int("locations", len(groups)))
	for _, m := range markers {
		logger.Debug("marker",
			zap.String("id", m.ID),
			zap.String("name", m.Popup.Name),
			zap.String("color", string(m.Style.Color)),
			zap.Float64("lat", m.Position.Lat),
			zap.Float64("lng", m.Position.Lng))
	}
}
