package procurement

import (
	"context"
	"testing"

	"github.com/aurum/backoffice/internal/domain/procurement"
	"github.com/aurum/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGoodsReceiptServiceCreate(t *testing.T) {
	order, err := procurement.NewPurchaseOrder("PO-2026-00010", uuid.New(), "Shree Gold Traders")
	require.NoError(t, err)
	poLine, err := order.AddLine(uuid.New(), "Gold Chain 22K", "GC-22K", "piece",
		decimal.NewFromInt(100), decimal.Zero, valueobject.NewMoneyINRFromFloat(4500))
	require.NoError(t, err)

	orderRepo := new(MockPurchaseOrderRepository)
	receiptRepo := new(MockGoodsReceiptRepository)
	balanceRepo := new(MockOrderLineBalanceRepository)
	service := NewGoodsReceiptService(receiptRepo, orderRepo, balanceRepo)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	receiptRepo.On("GenerateReceiptNumber", mock.Anything).Return("GRN-2026-00010", nil)
	receiptRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.GoodsReceipt")).Return(nil)

	resp, err := service.Create(context.Background(), CreateGoodsReceiptRequest{
		OrderID: order.ID,
		Lines: []CreateGoodsReceiptLineInput{{
			OrderLineID:      poLine.ID,
			ReceivedQuantity: decimal.NewFromInt(40),
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "GRN-2026-00010", resp.ReceiptNumber)
	assert.Equal(t, "draft", resp.Status)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "partially_received", resp.Lines[0].Status)
	assert.True(t, decimal.NewFromInt(180000).Equal(resp.TotalCost))

	receiptRepo.AssertExpectations(t)
}

func TestGoodsReceiptServiceCreateUnknownLine(t *testing.T) {
	order, err := procurement.NewPurchaseOrder("PO-2026-00011", uuid.New(), "Shree Gold Traders")
	require.NoError(t, err)
	_, err = order.AddLine(uuid.New(), "Gold Chain 22K", "GC-22K", "piece",
		decimal.NewFromInt(100), decimal.Zero, valueobject.NewMoneyINRFromFloat(4500))
	require.NoError(t, err)

	orderRepo := new(MockPurchaseOrderRepository)
	receiptRepo := new(MockGoodsReceiptRepository)
	service := NewGoodsReceiptService(receiptRepo, orderRepo, new(MockOrderLineBalanceRepository))

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	receiptRepo.On("GenerateReceiptNumber", mock.Anything).Return("GRN-2026-00011", nil)

	_, err = service.Create(context.Background(), CreateGoodsReceiptRequest{
		OrderID: order.ID,
		Lines: []CreateGoodsReceiptLineInput{{
			OrderLineID:      uuid.New(),
			ReceivedQuantity: decimal.NewFromInt(10),
		}},
	})
	assert.Error(t, err)
	receiptRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGoodsReceiptServiceSubmitSeedsBalances(t *testing.T) {
	order, err := procurement.NewPurchaseOrder("PO-2026-00012", uuid.New(), "Shree Gold Traders")
	require.NoError(t, err)
	poLine, err := order.AddLine(uuid.New(), "Gold Chain 22K", "GC-22K", "piece",
		decimal.NewFromInt(100), decimal.Zero, valueobject.NewMoneyINRFromFloat(4500))
	require.NoError(t, err)

	receipt, err := procurement.NewGoodsReceipt("GRN-2026-00012", order)
	require.NoError(t, err)
	_, err = receipt.AddLine(poLine, decimal.NewFromInt(40), decimal.Zero)
	require.NoError(t, err)

	receiptRepo := new(MockGoodsReceiptRepository)
	balanceRepo := new(MockOrderLineBalanceRepository)
	service := NewGoodsReceiptService(receiptRepo, new(MockPurchaseOrderRepository), balanceRepo)

	receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	receiptRepo.On("SaveWithLock", mock.Anything, receipt, receipt.Version).Return(nil)

	var seeded *procurement.OrderLineBalance
	balanceRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.OrderLineBalance")).
		Run(func(args mock.Arguments) {
			seeded = args.Get(1).(*procurement.OrderLineBalance)
		}).Return(nil)

	resp, err := service.Submit(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, "submitted", resp.Status)

	require.NotNil(t, seeded)
	assert.True(t, decimal.NewFromInt(40).Equal(seeded.Available()))
	assert.Equal(t, receipt.OrderID, seeded.OrderID)
	balanceRepo.AssertNumberOfCalls(t, "Save", 1)
}

func buildSubmittedReceiptWithBalance(t *testing.T) (*procurement.GoodsReceipt, *procurement.OrderLineBalance) {
	t.Helper()

	order, err := procurement.NewPurchaseOrder("PO-2026-00013", uuid.New(), "Shree Gold Traders")
	require.NoError(t, err)
	poLine, err := order.AddLine(uuid.New(), "Gold Chain 22K", "GC-22K", "piece",
		decimal.NewFromInt(100), decimal.Zero, valueobject.NewMoneyINRFromFloat(4500))
	require.NoError(t, err)

	receipt, err := procurement.NewGoodsReceipt("GRN-2026-00013", order)
	require.NoError(t, err)
	line, err := receipt.AddLine(poLine, decimal.NewFromInt(40), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, receipt.Submit())

	balance, err := procurement.NewOrderLineBalance(receipt.ID, receipt.OrderID, line)
	require.NoError(t, err)
	return receipt, balance
}

func TestGoodsReceiptServiceUpdateLineSyncsBalance(t *testing.T) {
	receipt, balance := buildSubmittedReceiptWithBalance(t)
	lineID := receipt.Lines[0].ID

	receiptRepo := new(MockGoodsReceiptRepository)
	balanceRepo := new(MockOrderLineBalanceRepository)
	service := NewGoodsReceiptService(receiptRepo, new(MockPurchaseOrderRepository), balanceRepo)

	receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	balanceRepo.On("FindByReceiptID", mock.Anything, receipt.ID).
		Return([]procurement.OrderLineBalance{*balance}, nil)
	receiptRepo.On("SaveWithLock", mock.Anything, receipt, mock.AnythingOfType("int")).Return(nil)

	var synced *procurement.OrderLineBalance
	balanceRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*procurement.OrderLineBalance"), balance.Version).
		Run(func(args mock.Arguments) {
			synced = args.Get(1).(*procurement.OrderLineBalance)
		}).Return(nil)

	resp, err := service.UpdateLine(context.Background(), receipt.ID, lineID, UpdateGoodsReceiptLineRequest{
		ReceivedQuantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "partially_received", resp.Lines[0].Status)

	require.NotNil(t, synced)
	assert.True(t, decimal.NewFromInt(10).Equal(synced.Available()))
	assert.Error(t, synced.CanConsume(decimal.NewFromInt(40), decimal.Zero))
}

func TestGoodsReceiptServiceUpdateLineRejectsBelowReturned(t *testing.T) {
	receipt, balance := buildSubmittedReceiptWithBalance(t)
	require.NoError(t, balance.Consume(decimal.NewFromInt(20), decimal.Zero))
	lineID := receipt.Lines[0].ID

	receiptRepo := new(MockGoodsReceiptRepository)
	balanceRepo := new(MockOrderLineBalanceRepository)
	service := NewGoodsReceiptService(receiptRepo, new(MockPurchaseOrderRepository), balanceRepo)

	receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	balanceRepo.On("FindByReceiptID", mock.Anything, receipt.ID).
		Return([]procurement.OrderLineBalance{*balance}, nil)

	_, err := service.UpdateLine(context.Background(), receipt.ID, lineID, UpdateGoodsReceiptLineRequest{
		ReceivedQuantity: decimal.NewFromInt(10),
	})
	require.Error(t, err)

	receiptRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything, mock.Anything)
	balanceRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything, mock.Anything)
}
