package procurement

import (
	"context"

	"github.com/aurum/backoffice/internal/domain/procurement"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder, expectedVersion int) error {
	args := m.Called(ctx, order, expectedVersion)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockGoodsReceiptRepository is a mock implementation of GoodsReceiptRepository
type MockGoodsReceiptRepository struct {
	mock.Mock
}

func (m *MockGoodsReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.GoodsReceipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.GoodsReceipt), args.Error(1)
}

func (m *MockGoodsReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.GoodsReceipt, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.GoodsReceipt), args.Error(1)
}

func (m *MockGoodsReceiptRepository) Save(ctx context.Context, receipt *procurement.GoodsReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockGoodsReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGoodsReceiptRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGoodsReceiptRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*procurement.GoodsReceipt, error) {
	args := m.Called(ctx, receiptNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.GoodsReceipt), args.Error(1)
}

func (m *MockGoodsReceiptRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]procurement.GoodsReceipt, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.GoodsReceipt), args.Error(1)
}

func (m *MockGoodsReceiptRepository) SaveWithLock(ctx context.Context, receipt *procurement.GoodsReceipt, expectedVersion int) error {
	args := m.Called(ctx, receipt, expectedVersion)
	return args.Error(0)
}

func (m *MockGoodsReceiptRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockOrderLineBalanceRepository is a mock implementation of OrderLineBalanceRepository
type MockOrderLineBalanceRepository struct {
	mock.Mock
}

func (m *MockOrderLineBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.OrderLineBalance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.OrderLineBalance), args.Error(1)
}

func (m *MockOrderLineBalanceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*procurement.OrderLineBalance, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*procurement.OrderLineBalance), args.Error(1)
}

func (m *MockOrderLineBalanceRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]procurement.OrderLineBalance, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.OrderLineBalance), args.Error(1)
}

func (m *MockOrderLineBalanceRepository) FindByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]procurement.OrderLineBalance, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.OrderLineBalance), args.Error(1)
}

func (m *MockOrderLineBalanceRepository) Save(ctx context.Context, balance *procurement.OrderLineBalance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}

func (m *MockOrderLineBalanceRepository) SaveWithLock(ctx context.Context, balance *procurement.OrderLineBalance, expectedVersion int) error {
	args := m.Called(ctx, balance, expectedVersion)
	return args.Error(0)
}

// MockPurchaseReturnRepository is a mock implementation of PurchaseReturnRepository
type MockPurchaseReturnRepository struct {
	mock.Mock
}

func (m *MockPurchaseReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseReturn, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseReturn), args.Error(1)
}

func (m *MockPurchaseReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseReturn, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseReturn), args.Error(1)
}

func (m *MockPurchaseReturnRepository) Save(ctx context.Context, pr *procurement.PurchaseReturn) error {
	args := m.Called(ctx, pr)
	return args.Error(0)
}

func (m *MockPurchaseReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseReturnRepository) FindByReturnNumber(ctx context.Context, returnNumber string) (*procurement.PurchaseReturn, error) {
	args := m.Called(ctx, returnNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseReturn), args.Error(1)
}

func (m *MockPurchaseReturnRepository) SaveWithLock(ctx context.Context, pr *procurement.PurchaseReturn, expectedVersion int) error {
	args := m.Called(ctx, pr, expectedVersion)
	return args.Error(0)
}

func (m *MockPurchaseReturnRepository) CreateWithBalances(ctx context.Context, pr *procurement.PurchaseReturn, balances []*procurement.OrderLineBalance, expectedVersions map[uuid.UUID]int) error {
	args := m.Called(ctx, pr, balances, expectedVersions)
	return args.Error(0)
}

func (m *MockPurchaseReturnRepository) GenerateReturnNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPurchaseReturnRepository) CountByStatus(ctx context.Context) (map[procurement.ReturnStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[procurement.ReturnStatus]int64), args.Error(1)
}
