package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and audit timestamps every persisted
// record shares.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh id and stamps both timestamps.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BaseAggregateRoot extends BaseEntity with the version counter checked by
// guarded saves in the persistence layer.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// NewBaseAggregateRoot creates an aggregate root at version 1.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// IncrementVersion bumps the optimistic-lock version. Every state mutation
// calls this so a stale writer loses the save race.
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}
