package sales

import (
	"context"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleRepository defines persistence for sales
type SaleRepository interface {
	shared.Repository[Sale]
	FindBySaleNumber(ctx context.Context, saleNumber string) (*Sale, error)
	SaveWithLock(ctx context.Context, sale *Sale, expectedVersion int) error
	GenerateSaleNumber(ctx context.Context) (string, error)
}

// SalesReturnRepository defines persistence for sales returns
type SalesReturnRepository interface {
	shared.Repository[SalesReturn]
	FindByReturnNumber(ctx context.Context, returnNumber string) (*SalesReturn, error)
	FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]SalesReturn, error)
	SaveWithLock(ctx context.Context, sr *SalesReturn, expectedVersion int) error
	GenerateReturnNumber(ctx context.Context) (string, error)
	CountByStatus(ctx context.Context) (map[ReturnStatus]int64, error)
}
