package procurement

import (
	"fmt"
	"time"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/domain/shared/costing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineBalance is the server-owned returnable ledger for one receipt
// line. It accumulates what was received and what has been returned so
// far; available balance is always the difference. Clients never submit
// balances, they only consume them through purchase returns.
type OrderLineBalance struct {
	ID               uuid.UUID
	ReceiptLineID    uuid.UUID
	ReceiptID        uuid.UUID
	OrderID          uuid.UUID
	ItemID           uuid.UUID
	ItemName         string
	TrackBy          costing.TrackBy
	ReceivedQuantity decimal.Decimal
	ReceivedWeight   decimal.Decimal
	ReturnedQuantity decimal.Decimal
	ReturnedWeight   decimal.Decimal
	UnitCost         decimal.Decimal
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewOrderLineBalance seeds a balance from a submitted receipt line
func NewOrderLineBalance(receiptID, orderID uuid.UUID, line *GoodsReceiptLine) (*OrderLineBalance, error) {
	if line == nil {
		return nil, shared.NewDomainError("INVALID_LINE", "Receipt line is required")
	}
	if !line.TrackBy.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRACKING", "Receipt line has no tracking dimension")
	}

	now := time.Now()
	return &OrderLineBalance{
		ID:               uuid.New(),
		ReceiptLineID:    line.ID,
		ReceiptID:        receiptID,
		OrderID:          orderID,
		ItemID:           line.ItemID,
		ItemName:         line.ItemName,
		TrackBy:          line.TrackBy,
		ReceivedQuantity: line.ReceivedQuantity,
		ReceivedWeight:   line.ReceivedWeight,
		ReturnedQuantity: decimal.Zero,
		ReturnedWeight:   decimal.Zero,
		UnitCost:         line.UnitCost,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// AvailableQuantity returns the quantity still available for return
func (b *OrderLineBalance) AvailableQuantity() decimal.Decimal {
	return b.ReceivedQuantity.Sub(b.ReturnedQuantity)
}

// AvailableWeight returns the weight still available for return
func (b *OrderLineBalance) AvailableWeight() decimal.Decimal {
	return b.ReceivedWeight.Sub(b.ReturnedWeight)
}

// Available returns the available balance on the tracking dimension
func (b *OrderLineBalance) Available() decimal.Decimal {
	return costing.EffectiveAmount(b.TrackBy, b.AvailableQuantity(), b.AvailableWeight())
}

// CanConsume checks whether the requested return amounts fit the
// available balance without mutating anything
func (b *OrderLineBalance) CanConsume(returnQuantity, returnWeight decimal.Decimal) error {
	if returnQuantity.IsNegative() || returnWeight.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Return amounts cannot be negative")
	}

	requested := costing.EffectiveAmount(b.TrackBy, returnQuantity, returnWeight)
	if !requested.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Return amount for item %s must be positive", b.ItemName))
	}
	if requested.GreaterThan(b.Available()) {
		return shared.NewDomainError("INSUFFICIENT_BALANCE",
			fmt.Sprintf("Item %s: requested %s exceeds available %s", b.ItemName, requested.String(), b.Available().String()))
	}
	return nil
}

// Consume deducts the returned amounts from the balance. The caller is
// expected to persist with a version check so that concurrent returns
// against the same line cannot both pass.
func (b *OrderLineBalance) Consume(returnQuantity, returnWeight decimal.Decimal) error {
	if err := b.CanConsume(returnQuantity, returnWeight); err != nil {
		return err
	}

	b.ReturnedQuantity = b.ReturnedQuantity.Add(returnQuantity)
	b.ReturnedWeight = b.ReturnedWeight.Add(returnWeight)
	b.Version++
	b.UpdatedAt = time.Now()
	return nil
}

// AdjustReceived rewrites the received amounts after a receipt line
// correction. The correction cannot drop below what has already been
// returned against this balance.
func (b *OrderLineBalance) AdjustReceived(receivedQuantity, receivedWeight decimal.Decimal) error {
	if receivedQuantity.IsNegative() || receivedWeight.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Received amounts cannot be negative")
	}
	if b.ReturnedQuantity.GreaterThan(receivedQuantity) || b.ReturnedWeight.GreaterThan(receivedWeight) {
		returned := costing.EffectiveAmount(b.TrackBy, b.ReturnedQuantity, b.ReturnedWeight)
		corrected := costing.EffectiveAmount(b.TrackBy, receivedQuantity, receivedWeight)
		return shared.NewDomainError("INSUFFICIENT_BALANCE",
			fmt.Sprintf("Item %s: already returned %s exceeds corrected received amount %s",
				b.ItemName, returned.String(), corrected.String()))
	}

	b.ReceivedQuantity = receivedQuantity
	b.ReceivedWeight = receivedWeight
	b.Version++
	b.UpdatedAt = time.Now()
	return nil
}

// Restore credits previously returned amounts back to the balance.
// Used when an approved return is rejected after a partial failure.
func (b *OrderLineBalance) Restore(returnQuantity, returnWeight decimal.Decimal) error {
	if returnQuantity.IsNegative() || returnWeight.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Restore amounts cannot be negative")
	}
	if returnQuantity.GreaterThan(b.ReturnedQuantity) || returnWeight.GreaterThan(b.ReturnedWeight) {
		return shared.NewDomainError("INVALID_AMOUNT", "Cannot restore more than was returned")
	}

	b.ReturnedQuantity = b.ReturnedQuantity.Sub(returnQuantity)
	b.ReturnedWeight = b.ReturnedWeight.Sub(returnWeight)
	b.Version++
	b.UpdatedAt = time.Now()
	return nil
}
