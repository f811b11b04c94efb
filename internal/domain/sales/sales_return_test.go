package sales

import (
	"testing"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completedSale builds a completed sale with one line:
// qty 10, price 100 before tax, 18% GST, final total 1180.00
func completedSale(t *testing.T) (*Sale, *SaleLine) {
	t.Helper()
	sale, err := NewSale("SL-2026-00001", "Meera Sharma")
	require.NoError(t, err)

	line, err := sale.AddLine(uuid.New(), "Silver Anklet", "SA-01",
		decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.NewFromFloat(0.18))
	require.NoError(t, err)
	require.NoError(t, sale.Complete())

	return sale, line
}

func TestSaleTotals(t *testing.T) {
	t.Run("line GST breakdown", func(t *testing.T) {
		_, line := completedSale(t)
		assert.True(t, decimal.NewFromInt(1000).Equal(line.SellingTotal))
		assert.True(t, decimal.NewFromInt(180).Equal(line.GSTAmount))
		assert.True(t, decimal.NewFromInt(1180).Equal(line.FinalTotal))
	})

	t.Run("grand total applies adjustments", func(t *testing.T) {
		sale, err := NewSale("SL-2026-00002", "Meera Sharma")
		require.NoError(t, err)
		_, err = sale.AddLine(uuid.New(), "Silver Anklet", "SA-01",
			decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.NewFromFloat(0.18))
		require.NoError(t, err)

		require.NoError(t, sale.ApplyAdjustments(
			decimal.NewFromInt(100), decimal.NewFromInt(50), decimal.NewFromInt(30)))

		// 1180 - 100 + 50 + 30
		assert.True(t, decimal.NewFromInt(1180).Equal(sale.Subtotal))
		assert.True(t, decimal.NewFromInt(1160).Equal(sale.GrandTotal))
	})

	t.Run("discount cannot exceed subtotal", func(t *testing.T) {
		sale, err := NewSale("SL-2026-00003", "Meera Sharma")
		require.NoError(t, err)
		_, err = sale.AddLine(uuid.New(), "Silver Anklet", "SA-01",
			decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero)
		require.NoError(t, err)

		err = sale.ApplyAdjustments(decimal.NewFromInt(500), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("empty sale cannot complete", func(t *testing.T) {
		sale, err := NewSale("SL-2026-00004", "Meera Sharma")
		require.NoError(t, err)
		assert.Error(t, sale.Complete())
	})
}

func TestBuildSalesReturn(t *testing.T) {
	t.Run("half return refunds half the tax-inclusive total", func(t *testing.T) {
		sale, line := completedSale(t)

		sr, err := BuildSalesReturn("SRN-2026-00001", sale, []SalesReturnLineRequest{{
			SaleLineID:     line.ID,
			ReturnQuantity: decimal.NewFromInt(5),
			Reason:         "size exchange refused",
		}})
		require.NoError(t, err)

		require.Len(t, sr.Lines, 1)
		assert.True(t, decimal.NewFromInt(590).Equal(sr.Lines[0].RefundAmount))
		assert.True(t, decimal.NewFromInt(590).Equal(sr.RefundTotal))
		assert.Equal(t, ReturnStatusPending, sr.Status)
	})

	t.Run("full return refunds full total", func(t *testing.T) {
		sale, line := completedSale(t)

		sr, err := BuildSalesReturn("SRN-2026-00002", sale, []SalesReturnLineRequest{{
			SaleLineID:     line.ID,
			ReturnQuantity: decimal.NewFromInt(10),
			Reason:         "order cancelled",
		}})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1180).Equal(sr.RefundTotal))
	})

	t.Run("return above sold quantity is rejected", func(t *testing.T) {
		sale, line := completedSale(t)

		_, err := BuildSalesReturn("SRN-2026-00003", sale, []SalesReturnLineRequest{{
			SaleLineID:     line.ID,
			ReturnQuantity: decimal.NewFromInt(11),
			Reason:         "defect",
		}})
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_QUANTITY", derr.Code)
	})

	t.Run("at least one positive line required", func(t *testing.T) {
		sale, line := completedSale(t)

		_, err := BuildSalesReturn("SRN-2026-00004", sale, []SalesReturnLineRequest{{
			SaleLineID:     line.ID,
			ReturnQuantity: decimal.Zero,
		}})
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "EMPTY_RETURN", derr.Code)
	})

	t.Run("reason required on positive lines", func(t *testing.T) {
		sale, line := completedSale(t)

		_, err := BuildSalesReturn("SRN-2026-00005", sale, []SalesReturnLineRequest{{
			SaleLineID:     line.ID,
			ReturnQuantity: decimal.NewFromInt(2),
		}})
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_REASON", derr.Code)
	})

	t.Run("draft sale cannot be returned against", func(t *testing.T) {
		sale, err := NewSale("SL-2026-00005", "Meera Sharma")
		require.NoError(t, err)
		line, err := sale.AddLine(uuid.New(), "Silver Anklet", "SA-01",
			decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.Zero)
		require.NoError(t, err)

		_, err = BuildSalesReturn("SRN-2026-00006", sale, []SalesReturnLineRequest{{
			SaleLineID:     line.ID,
			ReturnQuantity: decimal.NewFromInt(1),
			Reason:         "defect",
		}})
		assert.Error(t, err)
	})

	t.Run("unknown sale line is rejected", func(t *testing.T) {
		sale, _ := completedSale(t)

		_, err := BuildSalesReturn("SRN-2026-00007", sale, []SalesReturnLineRequest{{
			SaleLineID:     uuid.New(),
			ReturnQuantity: decimal.NewFromInt(1),
			Reason:         "defect",
		}})
		assert.Error(t, err)
	})
}

func TestRefundSumCloseToProportionalShare(t *testing.T) {
	// odd quantities force repeating decimals; the per-line refunds must
	// still sum to the document refund within 1e-6
	sale, err := NewSale("SL-2026-00006", "Meera Sharma")
	require.NoError(t, err)

	l1, err := sale.AddLine(uuid.New(), "Ring", "RG-01",
		decimal.NewFromInt(3), decimal.NewFromFloat(333.33), decimal.NewFromFloat(0.03))
	require.NoError(t, err)
	l2, err := sale.AddLine(uuid.New(), "Pendant", "PD-01",
		decimal.NewFromInt(7), decimal.NewFromFloat(142.85), decimal.NewFromFloat(0.03))
	require.NoError(t, err)
	require.NoError(t, sale.Complete())

	sr, err := BuildSalesReturn("SRN-2026-00008", sale, []SalesReturnLineRequest{
		{SaleLineID: l1.ID, ReturnQuantity: decimal.NewFromInt(1), Reason: "defect"},
		{SaleLineID: l2.ID, ReturnQuantity: decimal.NewFromInt(3), Reason: "defect"},
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, line := range sr.Lines {
		sum = sum.Add(line.RefundAmount)
	}
	diff := sum.Sub(sr.RefundTotal).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.New(1, -6)),
		"refund sum drifted by %s", diff.String())
}

func TestSalesReturnWorkflow(t *testing.T) {
	sale, line := completedSale(t)
	sr, err := BuildSalesReturn("SRN-2026-00009", sale, []SalesReturnLineRequest{{
		SaleLineID:     line.ID,
		ReturnQuantity: decimal.NewFromInt(2),
		Reason:         "clasp defect",
	}})
	require.NoError(t, err)

	assert.Error(t, sr.Complete())

	approver := uuid.New()
	require.NoError(t, sr.Approve(approver, "inspected on counter"))
	assert.Equal(t, ReturnStatusApproved, sr.Status)

	assert.Error(t, sr.Reject("changed mind"))

	require.NoError(t, sr.Complete())
	assert.Equal(t, ReturnStatusCompleted, sr.Status)
}
