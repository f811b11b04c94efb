package cache

import (
	"fmt"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore creates the idempotency store for the configured
// deployment. With a Redis endpoint configured it connects there; otherwise
// it returns the in-memory store, which is fine for a single node but does
// not share state across instances.
func NewIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if !cfg.Enabled() {
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := NewRedisIdempotencyStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("redis idempotency store: %w", err)
	}

	logger.Info("using Redis idempotency store", zap.String("addr", cfg.RedisAddr()))
	return store, nil
}
