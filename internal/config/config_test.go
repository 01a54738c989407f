package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("WINEMAP_STORAGE", "")
	t.Setenv("WINEMAP_SLOT", "")
	cfg := FromEnv()
	assert.Equal(t, StorageFile, cfg.Storage)
	assert.Equal(t, "wines", cfg.Slot)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("WINEMAP_STORAGE", StorageRedis)
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("MINIO_USE_SSL", "true")
	cfg := FromEnv()
	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.True(t, cfg.S3.UseSSL)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"file ok", func(c *Config) {}, false},
		{"unknown backend", func(c *Config) { c.Storage = "floppy" }, true},
		{"s3 missing creds", func(c *Config) { c.Storage = StorageS3; c.S3.AccessKey = "" }, true},
		{"postgres missing dsn", func(c *Config) { c.Storage = StoragePostgres; c.DatabaseURL = "" }, true},
		{"postgres ok", func(c *Config) { c.Storage = StoragePostgres; c.DatabaseURL = "postgres://x" }, false},
		{"empty slot", func(c *Config) { c.Slot = "" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{Storage: StorageFile, Slot: "wines", DataDir: "data"}
			tc.mutate(&cfg)
			if tc.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}
