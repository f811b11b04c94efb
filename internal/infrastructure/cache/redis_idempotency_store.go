package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyPrefix = "idempotency:"
	redisDialTimeout     = 5 * time.Second
)

// RedisIdempotencyStore shares submission keys across instances through
// Redis. SETNX keeps concurrent retries with the same key atomic.
type RedisIdempotencyStore struct {
	client *redis.Client
}

// NewRedisIdempotencyStore connects to Redis and verifies the connection.
func NewRedisIdempotencyStore(cfg config.RedisConfig) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisIdempotencyStore{client: client}, nil
}

// MarkProcessed records the key atomically, returning false when another
// request already holds it.
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	fresh, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark submission key: %w", err)
	}
	return fresh, nil
}

// IsProcessed reports whether the key is currently recorded.
func (s *RedisIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	exists, err := s.client.Exists(ctx, idempotencyKeyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("check submission key: %w", err)
	}
	return exists > 0, nil
}

// Close closes the Redis client.
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)
