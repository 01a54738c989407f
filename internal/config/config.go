// Package config gathers the settings of the winemap commands.
package config

import (
	"fmt"
	"time"

	"winemap/internal/env"
	"winemap/internal/storage"
)

// Storage backends.
const (
	StorageFile     = "file"
	StorageS3       = "s3"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string

	Storage string
	Slot    string
	DataDir string

	NominatimURL       string
	NominatimUserAgent string

	S3          storage.S3Options
	DatabaseURL string
	RedisAddr   string

	KafkaBroker      string
	KafkaTopic       string
	KafkaNotifyTopic string
	KafkaGroupID     string
}

// FromEnv reads the configuration from the environment. Call env.LoadEnv
// first to pick up a .env file.
func FromEnv() Config {
	return Config{
		Addr:            env.GetEnv("WINEMAP_ADDR", ":8080"),
		ShutdownTimeout: env.GetDuration("WINEMAP_SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel:  env.GetEnv("WINEMAP_LOG_LEVEL", "info"),
		LogFormat: env.GetEnv("WINEMAP_LOG_FORMAT", "json"),

		Storage: env.GetEnv("WINEMAP_STORAGE", StorageFile),
		Slot:    env.GetEnv("WINEMAP_SLOT", "wines"),
		DataDir: env.GetEnv("WINEMAP_DATA_DIR", "data"),

		NominatimURL:       env.GetEnv("NOMINATIM_URL", ""),
		NominatimUserAgent: env.GetEnv("NOMINATIM_USER_AGENT", ""),

		S3: storage.S3Options{
			Endpoint:  env.GetEnv("MINIO_ENDPOINT", ""),
			AccessKey: env.GetEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: env.GetEnv("MINIO_SECRET_KEY", ""),
			UseSSL:    env.GetBool("MINIO_USE_SSL", false),
			Bucket:    env.GetEnv("WINEMAP_BUCKET", "winemap"),
			Region:    env.GetEnv("MINIO_REGION", ""),
		},
		DatabaseURL: env.GetEnv("DATABASE_URL", ""),
		RedisAddr:   env.GetEnv("REDIS_ADDR", "localhost:6379"),

		KafkaBroker:      env.GetEnv("KAFKA_BROKER", ""),
		KafkaTopic:       env.GetEnv("KAFKA_TOPIC", "winemap.records"),
		KafkaNotifyTopic: env.GetEnv("KAFKA_NOTIFY_TOPIC", "winemap.slot-events"),
		KafkaGroupID:     env.GetEnv("KAFKA_GROUP_ID", "winewatch"),
	}
}

// Validate checks that the selected storage backend has what it needs.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageFile:
		if c.DataDir == "" {
			return fmt.Errorf("WINEMAP_DATA_DIR must be set for file storage")
		}
	case StorageS3:
		if c.S3.Endpoint == "" || c.S3.AccessKey == "" || c.S3.SecretKey == "" {
			return fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY must be set for s3 storage")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set for postgres storage")
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR must be set for redis storage")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	if c.Slot == "" {
		return fmt.Errorf("WINEMAP_SLOT must not be empty")
	}
	return nil
}
