package procurement

import (
	"fmt"
	"time"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/domain/shared/costing"
	"github.com/aurum/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptLineStatus is the fulfilment status of a single receipt line.
// It is always derived from the received amount against the ordered
// amount, never stored as independent client input.
type ReceiptLineStatus string

const (
	ReceiptLineStatusPending           ReceiptLineStatus = "pending"
	ReceiptLineStatusPartiallyReceived ReceiptLineStatus = "partially_received"
	ReceiptLineStatusReceived          ReceiptLineStatus = "received"
)

// IsValid checks if the status is a valid ReceiptLineStatus
func (s ReceiptLineStatus) IsValid() bool {
	switch s {
	case ReceiptLineStatusPending, ReceiptLineStatusPartiallyReceived, ReceiptLineStatusReceived:
		return true
	}
	return false
}

// String returns the string representation of ReceiptLineStatus
func (s ReceiptLineStatus) String() string {
	return string(s)
}

// DeriveReceiptLineStatus derives the line status from received versus
// ordered amounts on the tracking dimension. Receiving more than ordered
// is allowed and saturates at received.
func DeriveReceiptLineStatus(received, ordered decimal.Decimal) ReceiptLineStatus {
	switch {
	case received.LessThanOrEqual(decimal.Zero):
		return ReceiptLineStatusPending
	case received.LessThan(ordered):
		return ReceiptLineStatusPartiallyReceived
	default:
		return ReceiptLineStatusReceived
	}
}

// GoodsReceiptStatus represents the status of a goods receipt document
type GoodsReceiptStatus string

const (
	GoodsReceiptStatusDraft     GoodsReceiptStatus = "draft"
	GoodsReceiptStatusSubmitted GoodsReceiptStatus = "submitted"
	GoodsReceiptStatusVoided    GoodsReceiptStatus = "voided"
)

// IsValid checks if the status is a valid GoodsReceiptStatus
func (s GoodsReceiptStatus) IsValid() bool {
	switch s {
	case GoodsReceiptStatusDraft, GoodsReceiptStatusSubmitted, GoodsReceiptStatusVoided:
		return true
	}
	return false
}

// String returns the string representation of GoodsReceiptStatus
func (s GoodsReceiptStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if transition to target status is allowed
func (s GoodsReceiptStatus) CanTransitionTo(target GoodsReceiptStatus) bool {
	transitions := map[GoodsReceiptStatus][]GoodsReceiptStatus{
		GoodsReceiptStatusDraft:     {GoodsReceiptStatusSubmitted, GoodsReceiptStatusVoided},
		GoodsReceiptStatusSubmitted: {GoodsReceiptStatusVoided},
		GoodsReceiptStatusVoided:    {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// GoodsReceiptLine records the received amount for one order line.
// Ordered amounts are snapshotted from the purchase order at creation
// time so the receipt stays meaningful if the order is later archived.
type GoodsReceiptLine struct {
	ID               uuid.UUID
	ReceiptID        uuid.UUID
	OrderLineID      uuid.UUID
	ItemID           uuid.UUID
	ItemName         string
	ItemCode         string
	TrackBy          costing.TrackBy
	OrderedQuantity  decimal.Decimal
	OrderedWeight    decimal.Decimal
	ReceivedQuantity decimal.Decimal
	ReceivedWeight   decimal.Decimal
	Unit             string
	UnitCost         decimal.Decimal
	LineTotal        decimal.Decimal
	Status           ReceiptLineStatus
	Remark           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// newGoodsReceiptLine builds a receipt line against an order line snapshot
func newGoodsReceiptLine(receiptID uuid.UUID, orderLine *PurchaseOrderLine, receivedQuantity, receivedWeight decimal.Decimal) (*GoodsReceiptLine, error) {
	if receivedQuantity.IsNegative() || receivedWeight.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Received amounts cannot be negative")
	}
	if orderLine.TrackBy == costing.TrackByQuantity && receivedWeight.IsPositive() {
		return nil, shared.NewDomainError("INVALID_TRACKING", fmt.Sprintf("Item %s is tracked by quantity, weight must not be set", orderLine.ItemName))
	}
	if orderLine.TrackBy == costing.TrackByWeight && receivedQuantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_TRACKING", fmt.Sprintf("Item %s is tracked by weight, quantity must not be set", orderLine.ItemName))
	}

	received := costing.EffectiveAmount(orderLine.TrackBy, receivedQuantity, receivedWeight)
	now := time.Now()
	return &GoodsReceiptLine{
		ID:               uuid.New(),
		ReceiptID:        receiptID,
		OrderLineID:      orderLine.ID,
		ItemID:           orderLine.ItemID,
		ItemName:         orderLine.ItemName,
		ItemCode:         orderLine.ItemCode,
		TrackBy:          orderLine.TrackBy,
		OrderedQuantity:  orderLine.OrderedQuantity,
		OrderedWeight:    orderLine.OrderedWeight,
		ReceivedQuantity: receivedQuantity,
		ReceivedWeight:   receivedWeight,
		Unit:             orderLine.Unit,
		UnitCost:         orderLine.UnitCost,
		LineTotal:        costing.LineTotal(orderLine.UnitCost, orderLine.TrackBy, receivedQuantity, receivedWeight),
		Status:           DeriveReceiptLineStatus(received, orderLine.OrderedAmount()),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// ReceivedAmount returns the received amount on the tracking dimension
func (l *GoodsReceiptLine) ReceivedAmount() decimal.Decimal {
	return costing.EffectiveAmount(l.TrackBy, l.ReceivedQuantity, l.ReceivedWeight)
}

// OrderedAmount returns the ordered amount on the tracking dimension
func (l *GoodsReceiptLine) OrderedAmount() decimal.Decimal {
	return costing.EffectiveAmount(l.TrackBy, l.OrderedQuantity, l.OrderedWeight)
}

// setReceived replaces the received amounts and re-derives the line
// status and total. Used when a draft receipt is edited or resubmitted.
func (l *GoodsReceiptLine) setReceived(receivedQuantity, receivedWeight decimal.Decimal) error {
	if receivedQuantity.IsNegative() || receivedWeight.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Received amounts cannot be negative")
	}
	if l.TrackBy == costing.TrackByQuantity && receivedWeight.IsPositive() {
		return shared.NewDomainError("INVALID_TRACKING", fmt.Sprintf("Item %s is tracked by quantity, weight must not be set", l.ItemName))
	}
	if l.TrackBy == costing.TrackByWeight && receivedQuantity.IsPositive() {
		return shared.NewDomainError("INVALID_TRACKING", fmt.Sprintf("Item %s is tracked by weight, quantity must not be set", l.ItemName))
	}

	l.ReceivedQuantity = receivedQuantity
	l.ReceivedWeight = receivedWeight
	l.LineTotal = costing.LineTotal(l.UnitCost, l.TrackBy, receivedQuantity, receivedWeight)
	l.Status = DeriveReceiptLineStatus(l.ReceivedAmount(), l.OrderedAmount())
	l.UpdatedAt = time.Now()
	return nil
}

// GoodsReceipt represents a goods receipt note aggregate root
type GoodsReceipt struct {
	shared.BaseAggregateRoot
	ReceiptNumber string
	OrderID       uuid.UUID
	OrderNumber   string
	SupplierID    uuid.UUID
	SupplierName  string
	Lines         []GoodsReceiptLine
	TotalCost     decimal.Decimal
	Status        GoodsReceiptStatus
	Remark        string
	SubmittedAt   *time.Time
	VoidedAt      *time.Time
	VoidReason    string
}

// NewGoodsReceipt creates a new goods receipt against a purchase order
func NewGoodsReceipt(receiptNumber string, order *PurchaseOrder) (*GoodsReceipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if order == nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Purchase order is required")
	}
	if order.IsCancelled() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot receive against a cancelled order")
	}

	return &GoodsReceipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiptNumber:     receiptNumber,
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		SupplierID:        order.SupplierID,
		SupplierName:      order.SupplierName,
		Lines:             make([]GoodsReceiptLine, 0),
		TotalCost:         decimal.Zero,
		Status:            GoodsReceiptStatusDraft,
	}, nil
}

// AddLine records the received amount against one order line
func (r *GoodsReceipt) AddLine(orderLine *PurchaseOrderLine, receivedQuantity, receivedWeight decimal.Decimal) (*GoodsReceiptLine, error) {
	if r.Status != GoodsReceiptStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Can only add lines to a draft receipt")
	}
	if orderLine == nil {
		return nil, shared.NewDomainError("INVALID_ORDER_LINE", "Order line is required")
	}
	if orderLine.OrderID != r.OrderID {
		return nil, shared.NewDomainError("INVALID_ORDER_LINE", "Order line does not belong to the receipt's order")
	}

	for _, line := range r.Lines {
		if line.OrderLineID == orderLine.ID {
			return nil, shared.NewDomainError("DUPLICATE_LINE", "Order line already received on this receipt")
		}
	}

	line, err := newGoodsReceiptLine(r.ID, orderLine, receivedQuantity, receivedWeight)
	if err != nil {
		return nil, err
	}

	r.Lines = append(r.Lines, *line)
	r.recalculateTotal()
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return line, nil
}

// UpdateLine replaces the received amounts on an existing line.
// Allowed while the receipt is in draft or when a submitted receipt
// is being corrected before resubmission.
func (r *GoodsReceipt) UpdateLine(lineID uuid.UUID, receivedQuantity, receivedWeight decimal.Decimal) error {
	if r.Status == GoodsReceiptStatusVoided {
		return shared.NewDomainError("INVALID_STATE", "Cannot update lines on a voided receipt")
	}

	for idx := range r.Lines {
		if r.Lines[idx].ID == lineID {
			if err := r.Lines[idx].setReceived(receivedQuantity, receivedWeight); err != nil {
				return err
			}
			r.recalculateTotal()
			r.UpdatedAt = time.Now()
			r.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Receipt line not found")
}

// Submit marks the receipt as submitted. Submitted receipts feed the
// returnable balance ledger.
func (r *GoodsReceipt) Submit() error {
	if !r.Status.CanTransitionTo(GoodsReceiptStatusSubmitted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit receipt in %s status", r.Status))
	}
	if len(r.Lines) == 0 {
		return shared.NewDomainError("EMPTY_RECEIPT", "Receipt must have at least one line")
	}

	now := time.Now()
	r.Status = GoodsReceiptStatusSubmitted
	r.SubmittedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// Void voids the receipt
func (r *GoodsReceipt) Void(reason string) error {
	if !r.Status.CanTransitionTo(GoodsReceiptStatusVoided) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot void receipt in %s status", r.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Void reason is required")
	}

	now := time.Now()
	r.Status = GoodsReceiptStatusVoided
	r.VoidedAt = &now
	r.VoidReason = reason
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// SetRemark sets the receipt remark
func (r *GoodsReceipt) SetRemark(remark string) {
	r.Remark = remark
	r.UpdatedAt = time.Now()
}

// recalculateTotal recalculates the receipt total cost
func (r *GoodsReceipt) recalculateTotal() {
	lineTotals := make([]decimal.Decimal, len(r.Lines))
	for i, line := range r.Lines {
		lineTotals[i] = line.LineTotal
	}
	r.TotalCost = costing.SumLineTotals(lineTotals)
}

// GetLine returns a line by its ID
func (r *GoodsReceipt) GetLine(lineID uuid.UUID) *GoodsReceiptLine {
	for idx := range r.Lines {
		if r.Lines[idx].ID == lineID {
			return &r.Lines[idx]
		}
	}
	return nil
}

// IsFullyReceived returns true when every line reached received status
func (r *GoodsReceipt) IsFullyReceived() bool {
	if len(r.Lines) == 0 {
		return false
	}
	for _, line := range r.Lines {
		if line.Status != ReceiptLineStatusReceived {
			return false
		}
	}
	return true
}

// GetTotalCostMoney returns the total cost as Money
func (r *GoodsReceipt) GetTotalCostMoney() valueobject.Money {
	return valueobject.NewMoneyINR(r.TotalCost)
}
