package procurement

import (
	"testing"

	"github.com/aurum/backoffice/internal/domain/shared/costing"
	"github.com/aurum/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order, err := NewPurchaseOrder("PO-2026-00001", uuid.New(), "Shree Gold Traders")
	require.NoError(t, err)
	return order
}

func addQuantityLine(t *testing.T, order *PurchaseOrder, ordered int64) *PurchaseOrderLine {
	t.Helper()
	line, err := order.AddLine(uuid.New(), "Gold Chain 22K", "GC-22K", "piece",
		decimal.NewFromInt(ordered), decimal.Zero, valueobject.NewMoneyINRFromFloat(4500))
	require.NoError(t, err)
	return line
}

func TestDeriveReceiptLineStatus(t *testing.T) {
	ordered := decimal.NewFromInt(100)

	tests := []struct {
		name     string
		received decimal.Decimal
		want     ReceiptLineStatus
	}{
		{"nothing received", decimal.Zero, ReceiptLineStatusPending},
		{"partial receipt", decimal.NewFromInt(40), ReceiptLineStatusPartiallyReceived},
		{"exact receipt", decimal.NewFromInt(100), ReceiptLineStatusReceived},
		{"over receipt saturates", decimal.NewFromInt(120), ReceiptLineStatusReceived},
		{"negative treated as pending", decimal.NewFromInt(-5), ReceiptLineStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveReceiptLineStatus(tt.received, ordered))
		})
	}
}

func TestReceiptLineStatusMonotonicity(t *testing.T) {
	ordered := decimal.NewFromInt(100)
	rank := map[ReceiptLineStatus]int{
		ReceiptLineStatusPending:           0,
		ReceiptLineStatusPartiallyReceived: 1,
		ReceiptLineStatusReceived:          2,
	}

	prev := ReceiptLineStatusPending
	for received := int64(0); received <= 150; received += 5 {
		status := DeriveReceiptLineStatus(decimal.NewFromInt(received), ordered)
		assert.GreaterOrEqual(t, rank[status], rank[prev],
			"status moved backward at received=%d", received)
		prev = status
	}
	assert.Equal(t, ReceiptLineStatusReceived, prev)
}

func TestGoodsReceiptLineStatusDerivation(t *testing.T) {
	t.Run("partial receipt on quantity tracked line", func(t *testing.T) {
		order := buildOrder(t)
		poLine := addQuantityLine(t, order, 100)

		receipt, err := NewGoodsReceipt("GRN-2026-00001", order)
		require.NoError(t, err)

		line, err := receipt.AddLine(poLine, decimal.NewFromInt(40), decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, ReceiptLineStatusPartiallyReceived, line.Status)
	})

	t.Run("full receipt", func(t *testing.T) {
		order := buildOrder(t)
		poLine := addQuantityLine(t, order, 100)

		receipt, err := NewGoodsReceipt("GRN-2026-00002", order)
		require.NoError(t, err)

		line, err := receipt.AddLine(poLine, decimal.NewFromInt(100), decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, ReceiptLineStatusReceived, line.Status)
	})

	t.Run("zero receipt stays pending", func(t *testing.T) {
		order := buildOrder(t)
		poLine := addQuantityLine(t, order, 100)

		receipt, err := NewGoodsReceipt("GRN-2026-00003", order)
		require.NoError(t, err)

		line, err := receipt.AddLine(poLine, decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, ReceiptLineStatusPending, line.Status)
	})

	t.Run("over receipt is recorded in full", func(t *testing.T) {
		order := buildOrder(t)
		poLine := addQuantityLine(t, order, 100)

		receipt, err := NewGoodsReceipt("GRN-2026-00004", order)
		require.NoError(t, err)

		line, err := receipt.AddLine(poLine, decimal.NewFromInt(130), decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, ReceiptLineStatusReceived, line.Status)
		assert.True(t, decimal.NewFromInt(130).Equal(line.ReceivedQuantity))
	})

	t.Run("weight tracked line rejects quantity input", func(t *testing.T) {
		order := buildOrder(t)
		poLine, err := order.AddLine(uuid.New(), "Gold Bar 24K", "GB-24K", "gram",
			decimal.Zero, decimal.NewFromFloat(250.5), valueobject.NewMoneyINRFromFloat(6200))
		require.NoError(t, err)
		assert.Equal(t, costing.TrackByWeight, poLine.TrackBy)

		receipt, err := NewGoodsReceipt("GRN-2026-00005", order)
		require.NoError(t, err)

		_, err = receipt.AddLine(poLine, decimal.NewFromInt(3), decimal.Zero)
		assert.Error(t, err)
	})
}

func TestGoodsReceiptResubmissionRecomputes(t *testing.T) {
	order := buildOrder(t)
	poLine := addQuantityLine(t, order, 100)

	receipt, err := NewGoodsReceipt("GRN-2026-00006", order)
	require.NoError(t, err)

	line, err := receipt.AddLine(poLine, decimal.NewFromInt(40), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, ReceiptLineStatusPartiallyReceived, line.Status)
	assert.True(t, decimal.NewFromInt(180000).Equal(receipt.TotalCost))

	err = receipt.UpdateLine(line.ID, decimal.NewFromInt(100), decimal.Zero)
	require.NoError(t, err)

	updated := receipt.GetLine(line.ID)
	require.NotNil(t, updated)
	assert.Equal(t, ReceiptLineStatusReceived, updated.Status)
	assert.True(t, decimal.NewFromInt(450000).Equal(receipt.TotalCost))
}

func TestGoodsReceiptLifecycle(t *testing.T) {
	t.Run("submit requires at least one line", func(t *testing.T) {
		order := buildOrder(t)
		receipt, err := NewGoodsReceipt("GRN-2026-00007", order)
		require.NoError(t, err)

		err = receipt.Submit()
		assert.Error(t, err)
	})

	t.Run("submit then void", func(t *testing.T) {
		order := buildOrder(t)
		poLine := addQuantityLine(t, order, 10)
		receipt, err := NewGoodsReceipt("GRN-2026-00008", order)
		require.NoError(t, err)
		_, err = receipt.AddLine(poLine, decimal.NewFromInt(10), decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, receipt.Submit())
		assert.Equal(t, GoodsReceiptStatusSubmitted, receipt.Status)
		assert.NotNil(t, receipt.SubmittedAt)

		require.NoError(t, receipt.Void("damaged consignment"))
		assert.Equal(t, GoodsReceiptStatusVoided, receipt.Status)

		assert.Error(t, receipt.Submit())
	})

	t.Run("cannot receive against cancelled order", func(t *testing.T) {
		order := buildOrder(t)
		addQuantityLine(t, order, 10)
		require.NoError(t, order.Cancel("supplier discontinued"))

		_, err := NewGoodsReceipt("GRN-2026-00009", order)
		assert.Error(t, err)
	})
}

func TestPurchaseOrderValidation(t *testing.T) {
	t.Run("rejects line with both dimensions", func(t *testing.T) {
		order := buildOrder(t)
		_, err := order.AddLine(uuid.New(), "Bangle", "BG-01", "piece",
			decimal.NewFromInt(5), decimal.NewFromFloat(20), valueobject.NewMoneyINRFromFloat(900))
		assert.Error(t, err)
	})

	t.Run("rejects duplicate item", func(t *testing.T) {
		order := buildOrder(t)
		itemID := uuid.New()
		_, err := order.AddLine(itemID, "Bangle", "BG-01", "piece",
			decimal.NewFromInt(5), decimal.Zero, valueobject.NewMoneyINRFromFloat(900))
		require.NoError(t, err)
		_, err = order.AddLine(itemID, "Bangle", "BG-01", "piece",
			decimal.NewFromInt(3), decimal.Zero, valueobject.NewMoneyINRFromFloat(900))
		assert.Error(t, err)
	})

	t.Run("totals roll up from lines", func(t *testing.T) {
		order := buildOrder(t)
		_, err := order.AddLine(uuid.New(), "Chain", "CH-01", "piece",
			decimal.NewFromInt(2), decimal.Zero, valueobject.NewMoneyINRFromFloat(1000))
		require.NoError(t, err)
		_, err = order.AddLine(uuid.New(), "Bar", "BR-01", "gram",
			decimal.Zero, decimal.NewFromInt(10), valueobject.NewMoneyINRFromFloat(6000))
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(62000).Equal(order.TotalCost))
	})
}
