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

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusOpen      PurchaseOrderStatus = "open"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusOpen, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// PurchaseOrderLine represents a committed line item in a purchase order.
// Lines are immutable once the order is submitted: receipts and returns
// read them but never rewrite them.
type PurchaseOrderLine struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ItemID          uuid.UUID
	ItemName        string
	ItemCode        string
	TrackBy         costing.TrackBy
	OrderedQuantity decimal.Decimal
	OrderedWeight   decimal.Decimal
	Unit            string
	UnitCost        decimal.Decimal
	LineTotal       decimal.Decimal
	Remark          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewPurchaseOrderLine creates a new purchase order line. Exactly one of
// orderedQuantity/orderedWeight must be positive; that dimension is the
// item's tracking dimension for the rest of the pipeline.
func NewPurchaseOrderLine(orderID, itemID uuid.UUID, itemName, itemCode, unit string, orderedQuantity, orderedWeight decimal.Decimal, unitCost valueobject.Money) (*PurchaseOrderLine, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if itemName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if orderedQuantity.IsNegative() || orderedWeight.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Ordered amounts cannot be negative")
	}
	if unitCost.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	trackBy, err := costing.DeriveTrackBy(orderedQuantity, orderedWeight)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &PurchaseOrderLine{
		ID:              uuid.New(),
		OrderID:         orderID,
		ItemID:          itemID,
		ItemName:        itemName,
		ItemCode:        itemCode,
		TrackBy:         trackBy,
		OrderedQuantity: orderedQuantity,
		OrderedWeight:   orderedWeight,
		Unit:            unit,
		UnitCost:        unitCost.Amount(),
		LineTotal:       costing.LineTotal(unitCost.Amount(), trackBy, orderedQuantity, orderedWeight),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// OrderedAmount returns the committed amount on the tracking dimension
func (l *PurchaseOrderLine) OrderedAmount() decimal.Decimal {
	return costing.EffectiveAmount(l.TrackBy, l.OrderedQuantity, l.OrderedWeight)
}

// GetUnitCostMoney returns the unit cost as Money value object
func (l *PurchaseOrderLine) GetUnitCostMoney() valueobject.Money {
	return valueobject.NewMoneyINR(l.UnitCost)
}

// PurchaseOrder represents a purchase order aggregate root.
// It is the order ledger: the line items as originally committed.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string
	SupplierID   uuid.UUID
	SupplierName string
	BranchID     *uuid.UUID
	Lines        []PurchaseOrderLine
	TotalCost    decimal.Decimal
	Status       PurchaseOrderStatus
	Remark       string
	CancelledAt  *time.Time
	CancelReason string
}

// NewPurchaseOrder creates a new purchase order
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID, supplierName string) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Lines:             make([]PurchaseOrderLine, 0),
		TotalCost:         decimal.Zero,
		Status:            PurchaseOrderStatusOpen,
	}, nil
}

// AddLine adds a committed line to the order. Only allowed before the
// order has been cancelled; an item may appear on at most one line.
func (o *PurchaseOrder) AddLine(itemID uuid.UUID, itemName, itemCode, unit string, orderedQuantity, orderedWeight decimal.Decimal, unitCost valueobject.Money) (*PurchaseOrderLine, error) {
	if o.Status != PurchaseOrderStatusOpen {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a cancelled order")
	}

	for _, line := range o.Lines {
		if line.ItemID == itemID {
			return nil, shared.NewDomainError("DUPLICATE_ITEM", "Item already exists in order")
		}
	}

	line, err := NewPurchaseOrderLine(o.ID, itemID, itemName, itemCode, unit, orderedQuantity, orderedWeight, unitCost)
	if err != nil {
		return nil, err
	}

	o.Lines = append(o.Lines, *line)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return line, nil
}

// SetBranch sets the branch the order belongs to
func (o *PurchaseOrder) SetBranch(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	o.BranchID = &branchID
	o.UpdatedAt = time.Now()
	return nil
}

// SetRemark sets the order remark
func (o *PurchaseOrder) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
}

// Cancel cancels the order. Allowed only while open.
func (o *PurchaseOrder) Cancel(reason string) error {
	if o.Status != PurchaseOrderStatusOpen {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// recalculateTotal recalculates the order total cost
func (o *PurchaseOrder) recalculateTotal() {
	lineTotals := make([]decimal.Decimal, len(o.Lines))
	for i, line := range o.Lines {
		lineTotals[i] = line.LineTotal
	}
	o.TotalCost = costing.SumLineTotals(lineTotals)
}

// GetLine returns a line by its ID
func (o *PurchaseOrder) GetLine(lineID uuid.UUID) *PurchaseOrderLine {
	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			return &o.Lines[idx]
		}
	}
	return nil
}

// GetLineByItem returns a line by item ID
func (o *PurchaseOrder) GetLineByItem(itemID uuid.UUID) *PurchaseOrderLine {
	for idx := range o.Lines {
		if o.Lines[idx].ItemID == itemID {
			return &o.Lines[idx]
		}
	}
	return nil
}

// LineCount returns the number of lines in the order
func (o *PurchaseOrder) LineCount() int {
	return len(o.Lines)
}

// IsOpen returns true if the order is open
func (o *PurchaseOrder) IsOpen() bool {
	return o.Status == PurchaseOrderStatusOpen
}

// IsCancelled returns true if the order is cancelled
func (o *PurchaseOrder) IsCancelled() bool {
	return o.Status == PurchaseOrderStatusCancelled
}

// GetTotalCostMoney returns the total cost as Money
func (o *PurchaseOrder) GetTotalCostMoney() valueobject.Money {
	return valueobject.NewMoneyINR(o.TotalCost)
}
