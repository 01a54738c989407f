package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"winemap/internal/keys"
)

// RedisSlot keeps the slot as a single string key.
type RedisSlot struct {
	client *redis.Client
	key    string
}

func NewRedisSlot(client *redis.Client, slot string) *RedisSlot {
	return &RedisSlot{client: client, key: keys.Redis(slot)}
}

func (s *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.key, err)
	}
	return data, nil
}

func (s *RedisSlot) Write(ctx context.Context, blob []byte) error {
	if err := s.client.Set(ctx, s.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", s.key, err)
	}
	return nil
}
