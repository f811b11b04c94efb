package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers submission keys so a retried request does not
// create a second document.
type IdempotencyStore interface {
	// MarkProcessed records a submission key with a TTL. It returns true
	// when the key is new and false when it was already recorded.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether a submission key is already recorded.
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases the store's resources.
	Close() error
}
