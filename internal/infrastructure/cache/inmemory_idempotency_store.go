package cache

import (
	"context"
	"sync"
	"time"

	"github.com/aurum/backoffice/internal/domain/shared"
)

const janitorInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps submission keys in a process-local map.
// Used for single-node deployments and tests; keys are not shared across
// instances, so clustered deployments need the Redis store.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	deadlines map[string]time.Time
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates the store and starts a janitor
// goroutine that evicts expired keys.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		deadlines: make(map[string]time.Time),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go s.janitor()
	return s
}

// MarkProcessed records the key unless a live entry already exists.
func (s *InMemoryIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if deadline, ok := s.deadlines[key]; ok && time.Now().Before(deadline) {
		return false, nil
	}
	s.deadlines[key] = time.Now().Add(ttl)
	return true, nil
}

// IsProcessed reports whether the key has a live entry.
func (s *InMemoryIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deadline, ok := s.deadlines[key]
	return ok && time.Now().Before(deadline), nil
}

// Close stops the janitor. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}

// Size returns the current number of entries, expired ones included until
// the janitor's next sweep.
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.deadlines)
}

func (s *InMemoryIdempotencyStore) janitor() {
	defer close(s.done)

	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *InMemoryIdempotencyStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, deadline := range s.deadlines {
		if now.After(deadline) {
			delete(s.deadlines, key)
		}
	}
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
