package procurement

import (
	"context"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseOrderRepository defines persistence for purchase orders
type PurchaseOrderRepository interface {
	shared.Repository[PurchaseOrder]
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)
	SaveWithLock(ctx context.Context, order *PurchaseOrder, expectedVersion int) error
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// GoodsReceiptRepository defines persistence for goods receipts
type GoodsReceiptRepository interface {
	shared.Repository[GoodsReceipt]
	FindByReceiptNumber(ctx context.Context, receiptNumber string) (*GoodsReceipt, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]GoodsReceipt, error)
	SaveWithLock(ctx context.Context, receipt *GoodsReceipt, expectedVersion int) error
	GenerateReceiptNumber(ctx context.Context) (string, error)
}

// OrderLineBalanceRepository defines persistence for the returnable
// balance ledger
type OrderLineBalanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderLineBalance, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*OrderLineBalance, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]OrderLineBalance, error)
	FindByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]OrderLineBalance, error)
	Save(ctx context.Context, balance *OrderLineBalance) error
	// SaveWithLock persists the balance only if the stored version matches
	// expectedVersion, so concurrent returns cannot both consume the same
	// remainder.
	SaveWithLock(ctx context.Context, balance *OrderLineBalance, expectedVersion int) error
}

// PurchaseReturnRepository defines persistence for purchase returns
type PurchaseReturnRepository interface {
	shared.Repository[PurchaseReturn]
	FindByReturnNumber(ctx context.Context, returnNumber string) (*PurchaseReturn, error)
	SaveWithLock(ctx context.Context, pr *PurchaseReturn, expectedVersion int) error
	// CreateWithBalances inserts the return and applies the consumed
	// balances in one transaction.
	CreateWithBalances(ctx context.Context, pr *PurchaseReturn, balances []*OrderLineBalance, expectedVersions map[uuid.UUID]int) error
	GenerateReturnNumber(ctx context.Context) (string, error)
	CountByStatus(ctx context.Context) (map[ReturnStatus]int64, error)
}
