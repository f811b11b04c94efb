// Package costing holds the shared cost and refund rollup rules used by
// goods receipts, purchase returns and sales documents. Every document
// total in the system is computed here so the rounding and dimension
// selection rules cannot drift between document types.
package costing

import (
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TrackBy selects the authoritative measurement dimension for an item.
// Quantity-tracked items count discrete pieces; weight-tracked items
// measure grams of metal. The two are mutually exclusive per item.
type TrackBy string

const (
	TrackByQuantity TrackBy = "quantity"
	TrackByWeight   TrackBy = "weight"
)

// IsValid checks if the value is a known tracking dimension
func (t TrackBy) IsValid() bool {
	return t == TrackByQuantity || t == TrackByWeight
}

// String returns the string representation of TrackBy
func (t TrackBy) String() string {
	return string(t)
}

// DeriveTrackBy determines the tracking dimension from an ordered
// quantity/weight pair. Exactly one of the two must be positive.
func DeriveTrackBy(orderedQuantity, orderedWeight decimal.Decimal) (TrackBy, error) {
	qtySet := orderedQuantity.IsPositive()
	weightSet := orderedWeight.IsPositive()

	switch {
	case qtySet && weightSet:
		return "", shared.NewDomainError("INVALID_TRACKING", "Item cannot be tracked by both quantity and weight")
	case qtySet:
		return TrackByQuantity, nil
	case weightSet:
		return TrackByWeight, nil
	default:
		return "", shared.NewDomainError("INVALID_TRACKING", "One of quantity or weight must be positive")
	}
}

// EffectiveAmount returns the amount on the item's tracking dimension
func EffectiveAmount(trackBy TrackBy, quantity, weight decimal.Decimal) decimal.Decimal {
	if trackBy == TrackByWeight {
		return weight
	}
	return quantity
}

// LineTotal computes the monetary total of a single line:
// unit cost times the effective amount on the tracking dimension.
func LineTotal(unitCost decimal.Decimal, trackBy TrackBy, quantity, weight decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(EffectiveAmount(trackBy, quantity, weight))
}

// SumLineTotals rolls per-line totals into a document total
func SumLineTotals(lineTotals []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, lt := range lineTotals {
		total = total.Add(lt)
	}
	return total
}

// GrandTotal applies document-level adjustments to a subtotal:
// subtotal - discount + shipping + vat.
func GrandTotal(subtotal, discount, shippingCost, vat decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount).Add(shippingCost).Add(vat)
}

// ProportionalRefund splits a line's tax-inclusive total across a partial
// return: finalTotal * returnQuantity / originalQuantity. A zero original
// quantity yields a zero refund rather than a division fault.
func ProportionalRefund(finalTotal, returnQuantity, originalQuantity decimal.Decimal) decimal.Decimal {
	if originalQuantity.IsZero() {
		return decimal.Zero
	}
	return finalTotal.Mul(returnQuantity).Div(originalQuantity)
}
