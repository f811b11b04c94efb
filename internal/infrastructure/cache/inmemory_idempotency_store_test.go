package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	fresh, err := store.MarkProcessed(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)

	// Second attempt with the same key is a duplicate
	fresh, err = store.MarkProcessed(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, fresh)

	processed, err := store.IsProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, processed)

	processed, err = store.IsProcessed(ctx, "key-2")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_Expiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	fresh, err := store.MarkProcessed(ctx, "short-lived", time.Millisecond)
	require.NoError(t, err)
	assert.True(t, fresh)

	time.Sleep(5 * time.Millisecond)

	processed, err := store.IsProcessed(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, processed)

	// Expired entries can be marked again
	fresh, err = store.MarkProcessed(ctx, "short-lived", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "a", time.Millisecond)
	require.NoError(t, err)
	_, err = store.MarkProcessed(ctx, "b", time.Hour)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	store.sweep()

	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
