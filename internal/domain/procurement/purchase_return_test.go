package procurement

import (
	"testing"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/domain/shared/costing"
	"github.com/aurum/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBalance(t *testing.T, receivedQty int64) *OrderLineBalance {
	t.Helper()
	order := buildOrder(t)
	poLine := addQuantityLine(t, order, 100)
	receipt, err := NewGoodsReceipt("GRN-2026-10001", order)
	require.NoError(t, err)
	line, err := receipt.AddLine(poLine, decimal.NewFromInt(receivedQty), decimal.Zero)
	require.NoError(t, err)

	balance, err := NewOrderLineBalance(receipt.ID, order.ID, line)
	require.NoError(t, err)
	return balance
}

func TestOrderLineBalance(t *testing.T) {
	t.Run("available is received minus returned", func(t *testing.T) {
		balance := seedBalance(t, 40)
		assert.True(t, decimal.NewFromInt(40).Equal(balance.Available()))

		require.NoError(t, balance.Consume(decimal.NewFromInt(15), decimal.Zero))
		assert.True(t, decimal.NewFromInt(25).Equal(balance.Available()))
	})

	t.Run("consume rejects over-return", func(t *testing.T) {
		balance := seedBalance(t, 40)
		err := balance.Consume(decimal.NewFromInt(50), decimal.Zero)
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INSUFFICIENT_BALANCE", derr.Code)
		assert.True(t, decimal.NewFromInt(40).Equal(balance.Available()))
	})

	t.Run("consume bumps version", func(t *testing.T) {
		balance := seedBalance(t, 40)
		v := balance.Version
		require.NoError(t, balance.Consume(decimal.NewFromInt(10), decimal.Zero))
		assert.Equal(t, v+1, balance.Version)
	})

	t.Run("restore credits returned amounts", func(t *testing.T) {
		balance := seedBalance(t, 40)
		require.NoError(t, balance.Consume(decimal.NewFromInt(30), decimal.Zero))
		require.NoError(t, balance.Restore(decimal.NewFromInt(30), decimal.Zero))
		assert.True(t, decimal.NewFromInt(40).Equal(balance.Available()))

		assert.Error(t, balance.Restore(decimal.NewFromInt(1), decimal.Zero))
	})

	t.Run("adjust received rewrites the balance", func(t *testing.T) {
		balance := seedBalance(t, 40)
		v := balance.Version

		require.NoError(t, balance.AdjustReceived(decimal.NewFromInt(10), decimal.Zero))
		assert.True(t, decimal.NewFromInt(10).Equal(balance.Available()))
		assert.Equal(t, v+1, balance.Version)

		assert.Error(t, balance.Consume(decimal.NewFromInt(40), decimal.Zero))
	})

	t.Run("adjust received cannot drop below returned", func(t *testing.T) {
		balance := seedBalance(t, 40)
		require.NoError(t, balance.Consume(decimal.NewFromInt(20), decimal.Zero))

		err := balance.AdjustReceived(decimal.NewFromInt(10), decimal.Zero)
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INSUFFICIENT_BALANCE", derr.Code)
		assert.True(t, decimal.NewFromInt(40).Equal(balance.ReceivedQuantity))
	})
}

func TestBuildPurchaseReturn(t *testing.T) {
	supplierID := uuid.New()

	t.Run("valid return within balance", func(t *testing.T) {
		balance := seedBalance(t, 40)
		balances := map[uuid.UUID]*OrderLineBalance{balance.ID: balance}

		pr, err := BuildPurchaseReturn("PRN-2026-00001", balance.OrderID, supplierID, "Shree Gold Traders",
			[]PurchaseReturnLineRequest{{
				BalanceID:      balance.ID,
				ReturnQuantity: decimal.NewFromInt(25),
				Reason:         "stone setting defects",
			}}, balances)
		require.NoError(t, err)

		assert.Equal(t, ReturnStatusPending, pr.Status)
		require.Len(t, pr.Lines, 1)
		assert.True(t, decimal.NewFromInt(25).Equal(pr.Lines[0].ReturnQuantity))
		// 25 pieces at 4500
		assert.True(t, decimal.NewFromInt(112500).Equal(pr.RefundTotal))
	})

	t.Run("over-return is rejected with the offending item named", func(t *testing.T) {
		balance := seedBalance(t, 40)
		balances := map[uuid.UUID]*OrderLineBalance{balance.ID: balance}

		_, err := BuildPurchaseReturn("PRN-2026-00002", balance.OrderID, supplierID, "Shree Gold Traders",
			[]PurchaseReturnLineRequest{{
				BalanceID:      balance.ID,
				ReturnQuantity: decimal.NewFromInt(50),
				Reason:         "wrong purity",
			}}, balances)
		require.Error(t, err)

		var overErr *OverReturnError
		require.ErrorAs(t, err, &overErr)
		require.Len(t, overErr.Violations, 1)
		assert.Equal(t, "Gold Chain 22K", overErr.Violations[0].ItemName)
		assert.True(t, decimal.NewFromInt(50).Equal(overErr.Violations[0].Requested))
		assert.True(t, decimal.NewFromInt(40).Equal(overErr.Violations[0].Available))
	})

	t.Run("all violations reported at once, nothing committed", func(t *testing.T) {
		b1 := seedBalance(t, 40)
		b2 := seedBalance(t, 10)
		b3 := seedBalance(t, 5)
		balances := map[uuid.UUID]*OrderLineBalance{b1.ID: b1, b2.ID: b2, b3.ID: b3}

		_, err := BuildPurchaseReturn("PRN-2026-00003", b1.OrderID, supplierID, "Shree Gold Traders",
			[]PurchaseReturnLineRequest{
				{BalanceID: b1.ID, ReturnQuantity: decimal.NewFromInt(20), Reason: "defect"},
				{BalanceID: b2.ID, ReturnQuantity: decimal.NewFromInt(15), Reason: "defect"},
				{BalanceID: b3.ID, ReturnQuantity: decimal.NewFromInt(8), Reason: "defect"},
			}, balances)
		require.Error(t, err)

		var overErr *OverReturnError
		require.ErrorAs(t, err, &overErr)
		assert.Len(t, overErr.Violations, 2)

		// validation must not have consumed anything
		assert.True(t, decimal.NewFromInt(40).Equal(b1.Available()))
		assert.True(t, decimal.NewFromInt(10).Equal(b2.Available()))
		assert.True(t, decimal.NewFromInt(5).Equal(b3.Available()))
	})

	t.Run("reason is required on every nonzero line", func(t *testing.T) {
		balance := seedBalance(t, 40)
		balances := map[uuid.UUID]*OrderLineBalance{balance.ID: balance}

		_, err := BuildPurchaseReturn("PRN-2026-00004", balance.OrderID, supplierID, "Shree Gold Traders",
			[]PurchaseReturnLineRequest{{
				BalanceID:      balance.ID,
				ReturnQuantity: decimal.NewFromInt(5),
			}}, balances)
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_REASON", derr.Code)
	})

	t.Run("zero amount line is rejected", func(t *testing.T) {
		balance := seedBalance(t, 40)
		balances := map[uuid.UUID]*OrderLineBalance{balance.ID: balance}

		_, err := BuildPurchaseReturn("PRN-2026-00005", balance.OrderID, supplierID, "Shree Gold Traders",
			[]PurchaseReturnLineRequest{{
				BalanceID:      balance.ID,
				ReturnQuantity: decimal.Zero,
				Reason:         "defect",
			}}, balances)
		assert.Error(t, err)
	})

	t.Run("empty request is rejected", func(t *testing.T) {
		_, err := BuildPurchaseReturn("PRN-2026-00006", uuid.New(), supplierID, "Shree Gold Traders",
			nil, map[uuid.UUID]*OrderLineBalance{})
		assert.Error(t, err)
	})
}

func mustMoney(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyINRFromString(amount)
	require.NoError(t, err)
	return m
}

func TestReturnStatusTransitions(t *testing.T) {
	tests := []struct {
		from    ReturnStatus
		to      ReturnStatus
		allowed bool
	}{
		{ReturnStatusPending, ReturnStatusApproved, true},
		{ReturnStatusPending, ReturnStatusRejected, true},
		{ReturnStatusPending, ReturnStatusCompleted, false},
		{ReturnStatusApproved, ReturnStatusCompleted, true},
		{ReturnStatusApproved, ReturnStatusRejected, false},
		{ReturnStatusRejected, ReturnStatusApproved, false},
		{ReturnStatusCompleted, ReturnStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestPurchaseReturnWorkflow(t *testing.T) {
	supplierID := uuid.New()
	balance := seedBalance(t, 40)
	balances := map[uuid.UUID]*OrderLineBalance{balance.ID: balance}

	pr, err := BuildPurchaseReturn("PRN-2026-00007", balance.OrderID, supplierID, "Shree Gold Traders",
		[]PurchaseReturnLineRequest{{
			BalanceID:      balance.ID,
			ReturnQuantity: decimal.NewFromInt(10),
			Reason:         "broken clasp",
		}}, balances)
	require.NoError(t, err)

	approver := uuid.New()
	require.NoError(t, pr.Approve(approver, "verified against GRN"))
	assert.Equal(t, ReturnStatusApproved, pr.Status)
	assert.NotNil(t, pr.ApprovedAt)
	require.NotNil(t, pr.ApprovedBy)
	assert.Equal(t, approver, *pr.ApprovedBy)

	assert.Error(t, pr.Reject("too late"))

	require.NoError(t, pr.Complete())
	assert.Equal(t, ReturnStatusCompleted, pr.Status)
	assert.NotNil(t, pr.CompletedAt)

	assert.Error(t, pr.Approve(approver, ""))
}

func TestPurchaseReturnRejectRequiresReason(t *testing.T) {
	supplierID := uuid.New()
	balance := seedBalance(t, 40)
	balances := map[uuid.UUID]*OrderLineBalance{balance.ID: balance}

	pr, err := BuildPurchaseReturn("PRN-2026-00008", balance.OrderID, supplierID, "Shree Gold Traders",
		[]PurchaseReturnLineRequest{{
			BalanceID:      balance.ID,
			ReturnQuantity: decimal.NewFromInt(10),
			Reason:         "broken clasp",
		}}, balances)
	require.NoError(t, err)

	assert.Error(t, pr.Reject(""))
	require.NoError(t, pr.Reject("goods already melted"))
	assert.Equal(t, ReturnStatusRejected, pr.Status)
	assert.Equal(t, "goods already melted", pr.RejectReason)
}

func TestWeightTrackedReturn(t *testing.T) {
	order := buildOrder(t)
	poLine, err := order.AddLine(uuid.New(), "Gold Bar 24K", "GB-24K", "gram",
		decimal.Zero, decimal.NewFromInt(100), mustMoney(t, "6200"))
	require.NoError(t, err)
	require.Equal(t, costing.TrackByWeight, poLine.TrackBy)

	receipt, err := NewGoodsReceipt("GRN-2026-10002", order)
	require.NoError(t, err)
	line, err := receipt.AddLine(poLine, decimal.Zero, decimal.NewFromInt(80))
	require.NoError(t, err)

	balance, err := NewOrderLineBalance(receipt.ID, order.ID, line)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(80).Equal(balance.Available()))

	pr, err := BuildPurchaseReturn("PRN-2026-00009", order.ID, order.SupplierID, order.SupplierName,
		[]PurchaseReturnLineRequest{{
			BalanceID:    balance.ID,
			ReturnWeight: decimal.NewFromInt(30),
			Reason:       "impure alloy",
		}}, map[uuid.UUID]*OrderLineBalance{balance.ID: balance})
	require.NoError(t, err)

	require.Len(t, pr.Lines, 1)
	assert.True(t, decimal.NewFromInt(30).Equal(pr.Lines[0].ReturnWeight))
	// 30 grams at 6200
	assert.True(t, decimal.NewFromInt(186000).Equal(pr.RefundTotal))
}
