package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the access surface shared by all aggregate repositories.
// Aggregate-specific interfaces embed it and add their own finders.
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Filter carries list-query options from the application layer down to the
// repository. Filters holds column equality constraints keyed by column
// name; repositories whitelist OrderBy before interpolating it.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}
