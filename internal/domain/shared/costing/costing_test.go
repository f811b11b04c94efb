package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTrackBy(t *testing.T) {
	t.Run("quantity-tracked item", func(t *testing.T) {
		tb, err := DeriveTrackBy(decimal.NewFromInt(10), decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, TrackByQuantity, tb)
	})

	t.Run("weight-tracked item", func(t *testing.T) {
		tb, err := DeriveTrackBy(decimal.Zero, decimal.NewFromFloat(12.5))
		require.NoError(t, err)
		assert.Equal(t, TrackByWeight, tb)
	})

	t.Run("rejects both dimensions set", func(t *testing.T) {
		_, err := DeriveTrackBy(decimal.NewFromInt(10), decimal.NewFromFloat(12.5))
		assert.Error(t, err)
	})

	t.Run("rejects neither dimension set", func(t *testing.T) {
		_, err := DeriveTrackBy(decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestLineTotal(t *testing.T) {
	t.Run("quantity dimension", func(t *testing.T) {
		total := LineTotal(decimal.NewFromInt(50), TrackByQuantity, decimal.NewFromInt(4), decimal.Zero)
		assert.True(t, decimal.NewFromInt(200).Equal(total))
	})

	t.Run("weight dimension ignores quantity", func(t *testing.T) {
		total := LineTotal(decimal.NewFromInt(6000), TrackByWeight, decimal.NewFromInt(3), decimal.NewFromFloat(2.5))
		assert.True(t, decimal.NewFromInt(15000).Equal(total))
	})
}

func TestSumLineTotals(t *testing.T) {
	totals := []decimal.Decimal{
		decimal.NewFromFloat(100.50),
		decimal.NewFromFloat(249.25),
		decimal.NewFromFloat(0.25),
	}
	assert.True(t, decimal.NewFromInt(350).Equal(SumLineTotals(totals)))

	assert.True(t, SumLineTotals(nil).IsZero())
}

func TestGrandTotal(t *testing.T) {
	// subtotal - discount + shipping + vat
	got := GrandTotal(
		decimal.NewFromInt(1000),
		decimal.NewFromInt(100),
		decimal.NewFromInt(50),
		decimal.NewFromInt(30),
	)
	assert.True(t, decimal.NewFromInt(980).Equal(got))
}

func TestProportionalRefund(t *testing.T) {
	t.Run("half of a tax-inclusive total", func(t *testing.T) {
		refund := ProportionalRefund(
			decimal.NewFromFloat(1180.00),
			decimal.NewFromInt(5),
			decimal.NewFromInt(10),
		)
		assert.True(t, decimal.NewFromInt(590).Equal(refund))
	})

	t.Run("full return refunds full total", func(t *testing.T) {
		refund := ProportionalRefund(
			decimal.NewFromFloat(750.40),
			decimal.NewFromInt(4),
			decimal.NewFromInt(4),
		)
		assert.True(t, decimal.NewFromFloat(750.40).Equal(refund))
	})

	t.Run("zero original quantity yields zero refund", func(t *testing.T) {
		refund := ProportionalRefund(decimal.NewFromInt(500), decimal.NewFromInt(1), decimal.Zero)
		assert.True(t, refund.IsZero())
	})

	t.Run("zero return quantity yields zero refund", func(t *testing.T) {
		refund := ProportionalRefund(decimal.NewFromInt(500), decimal.Zero, decimal.NewFromInt(5))
		assert.True(t, refund.IsZero())
	})
}
