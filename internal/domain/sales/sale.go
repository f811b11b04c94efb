package sales

import (
	"fmt"
	"time"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/domain/shared/costing"
	"github.com/aurum/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a sale document
type SaleStatus string

const (
	SaleStatusDraft     SaleStatus = "draft"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusDraft, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if transition to target status is allowed
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	transitions := map[SaleStatus][]SaleStatus{
		SaleStatusDraft:     {SaleStatusCompleted, SaleStatusCancelled},
		SaleStatusCompleted: {},
		SaleStatusCancelled: {},
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

// SaleLine is a sold line item with its GST breakdown snapshotted at the
// time of sale. FinalTotal is tax inclusive and is the base for any later
// proportional refund.
type SaleLine struct {
	ID             uuid.UUID
	SaleID         uuid.UUID
	ItemID         uuid.UUID
	ItemName       string
	ItemCode       string
	Quantity       decimal.Decimal
	PriceBeforeTax decimal.Decimal
	GSTRate        decimal.Decimal
	GSTAmount      decimal.Decimal
	SellingTotal   decimal.Decimal
	FinalTotal     decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewSaleLine creates a sale line and computes its GST breakdown.
// gstRate is a fraction, e.g. 0.03 for 3% GST on jewellery.
func NewSaleLine(saleID, itemID uuid.UUID, itemName, itemCode string, quantity, priceBeforeTax, gstRate decimal.Decimal) (*SaleLine, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if itemName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if priceBeforeTax.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if gstRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_GST_RATE", "GST rate cannot be negative")
	}

	sellingTotal := priceBeforeTax.Mul(quantity)
	gstAmount := sellingTotal.Mul(gstRate)

	now := time.Now()
	return &SaleLine{
		ID:             uuid.New(),
		SaleID:         saleID,
		ItemID:         itemID,
		ItemName:       itemName,
		ItemCode:       itemCode,
		Quantity:       quantity,
		PriceBeforeTax: priceBeforeTax,
		GSTRate:        gstRate,
		GSTAmount:      gstAmount,
		SellingTotal:   sellingTotal,
		FinalTotal:     sellingTotal.Add(gstAmount),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Sale represents a retail sale aggregate root
type Sale struct {
	shared.BaseAggregateRoot
	SaleNumber   string
	CustomerID   *uuid.UUID
	CustomerName string
	Lines        []SaleLine
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	ShippingCost decimal.Decimal
	VAT          decimal.Decimal
	GrandTotal   decimal.Decimal
	Status       SaleStatus
	Remark       string
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string
}

// NewSale creates a new sale document
func NewSale(saleNumber, customerName string) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}

	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleNumber:        saleNumber,
		CustomerName:      customerName,
		Lines:             make([]SaleLine, 0),
		Subtotal:          decimal.Zero,
		Discount:          decimal.Zero,
		ShippingCost:      decimal.Zero,
		VAT:               decimal.Zero,
		GrandTotal:        decimal.Zero,
		Status:            SaleStatusDraft,
	}, nil
}

// AddLine adds a sold line and recomputes document totals
func (s *Sale) AddLine(itemID uuid.UUID, itemName, itemCode string, quantity, priceBeforeTax, gstRate decimal.Decimal) (*SaleLine, error) {
	if s.Status != SaleStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Can only add lines to a draft sale")
	}

	line, err := NewSaleLine(s.ID, itemID, itemName, itemCode, quantity, priceBeforeTax, gstRate)
	if err != nil {
		return nil, err
	}

	s.Lines = append(s.Lines, *line)
	s.recalculateTotals()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return line, nil
}

// SetCustomer attaches a customer reference to the sale
func (s *Sale) SetCustomer(customerID uuid.UUID, customerName string) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	s.CustomerID = &customerID
	s.CustomerName = customerName
	s.UpdatedAt = time.Now()
	return nil
}

// SetRemark sets the sale remark
func (s *Sale) SetRemark(remark string) {
	s.Remark = remark
	s.UpdatedAt = time.Now()
}

// ApplyAdjustments sets document level discount, shipping and vat and
// recomputes the grand total
func (s *Sale) ApplyAdjustments(discount, shippingCost, vat decimal.Decimal) error {
	if s.Status != SaleStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Can only adjust a draft sale")
	}
	if discount.IsNegative() || shippingCost.IsNegative() || vat.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Adjustments cannot be negative")
	}
	if discount.GreaterThan(s.Subtotal) {
		return shared.NewDomainError("INVALID_AMOUNT", "Discount cannot exceed subtotal")
	}

	s.Discount = discount
	s.ShippingCost = shippingCost
	s.VAT = vat
	s.recalculateTotals()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Complete finalizes the sale. Completed sales are the only ones a sales
// return can reference.
func (s *Sale) Complete() error {
	if !s.Status.CanTransitionTo(SaleStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete sale in %s status", s.Status))
	}
	if len(s.Lines) == 0 {
		return shared.NewDomainError("EMPTY_SALE", "Sale must have at least one line")
	}

	now := time.Now()
	s.Status = SaleStatusCompleted
	s.CompletedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// Cancel cancels a draft sale
func (s *Sale) Cancel(reason string) error {
	if !s.Status.CanTransitionTo(SaleStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel sale in %s status", s.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	s.Status = SaleStatusCancelled
	s.CancelledAt = &now
	s.CancelReason = reason
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// recalculateTotals recomputes the subtotal and grand total.
// Subtotal is the sum of tax-inclusive line totals; the grand total
// applies document adjustments on top.
func (s *Sale) recalculateTotals() {
	lineTotals := make([]decimal.Decimal, len(s.Lines))
	for i, line := range s.Lines {
		lineTotals[i] = line.FinalTotal
	}
	s.Subtotal = costing.SumLineTotals(lineTotals)
	s.GrandTotal = costing.GrandTotal(s.Subtotal, s.Discount, s.ShippingCost, s.VAT)
}

// GetLine returns a line by its ID
func (s *Sale) GetLine(lineID uuid.UUID) *SaleLine {
	for idx := range s.Lines {
		if s.Lines[idx].ID == lineID {
			return &s.Lines[idx]
		}
	}
	return nil
}

// IsCompleted returns true if the sale has been completed
func (s *Sale) IsCompleted() bool {
	return s.Status == SaleStatusCompleted
}

// GetGrandTotalMoney returns the grand total as Money
func (s *Sale) GetGrandTotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(s.GrandTotal)
}
