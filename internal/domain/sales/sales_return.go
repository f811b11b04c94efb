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

// ReturnStatus represents the workflow status of a sales return
type ReturnStatus string

const (
	ReturnStatusPending   ReturnStatus = "pending"
	ReturnStatusApproved  ReturnStatus = "approved"
	ReturnStatusRejected  ReturnStatus = "rejected"
	ReturnStatusCompleted ReturnStatus = "completed"
)

// IsValid checks if the status is a valid ReturnStatus
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected, ReturnStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of ReturnStatus
func (s ReturnStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if transition to target status is allowed
func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	transitions := map[ReturnStatus][]ReturnStatus{
		ReturnStatusPending:   {ReturnStatusApproved, ReturnStatusRejected},
		ReturnStatusApproved:  {ReturnStatusCompleted},
		ReturnStatusRejected:  {},
		ReturnStatusCompleted: {},
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

// SalesReturnLine records one returned sale line with its refund share.
// The refund is proportional to the tax-inclusive total of the original
// line, so partial returns refund partial tax as well.
type SalesReturnLine struct {
	ID               uuid.UUID
	ReturnID         uuid.UUID
	SaleLineID       uuid.UUID
	ItemID           uuid.UUID
	ItemName         string
	OriginalQuantity decimal.Decimal
	ReturnQuantity   decimal.Decimal
	FinalTotal       decimal.Decimal
	RefundAmount     decimal.Decimal
	Reason           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SalesReturnLineRequest is one requested line of a sales return
type SalesReturnLineRequest struct {
	SaleLineID     uuid.UUID
	ReturnQuantity decimal.Decimal
	Reason         string
}

// SalesReturn represents a customer return against a completed sale
type SalesReturn struct {
	shared.BaseAggregateRoot
	ReturnNumber string
	SaleID       uuid.UUID
	SaleNumber   string
	CustomerID   *uuid.UUID
	CustomerName string
	Lines        []SalesReturnLine
	RefundTotal  decimal.Decimal
	Status       ReturnStatus
	Remark       string
	ApprovedBy   *uuid.UUID
	ApprovalNote string
	ApprovedAt   *time.Time
	RejectedAt   *time.Time
	CompletedAt  *time.Time
	RejectReason string
}

// BuildSalesReturn validates a return request against the original sale
// and assembles the aggregate. Quantities are re-validated server side
// regardless of what the client claims: each line must satisfy
// 0 <= return_quantity <= original_quantity, at least one line must
// return a positive quantity, and every positive line needs a reason.
func BuildSalesReturn(returnNumber string, sale *Sale, requests []SalesReturnLineRequest) (*SalesReturn, error) {
	if returnNumber == "" {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number cannot be empty")
	}
	if sale == nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale is required")
	}
	if !sale.IsCompleted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Returns are only accepted against completed sales")
	}
	if len(requests) == 0 {
		return nil, shared.NewDomainError("EMPTY_RETURN", "Return must have at least one line")
	}

	seen := make(map[uuid.UUID]bool, len(requests))
	lines := make([]SalesReturnLine, 0, len(requests))
	hasPositive := false

	for _, req := range requests {
		if seen[req.SaleLineID] {
			return nil, shared.NewDomainError("DUPLICATE_LINE", "Sale line referenced more than once in return")
		}
		seen[req.SaleLineID] = true

		saleLine := sale.GetLine(req.SaleLineID)
		if saleLine == nil {
			return nil, shared.NewDomainError("LINE_NOT_FOUND", "Sale line not found on the referenced sale")
		}
		if req.ReturnQuantity.IsNegative() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Return quantity for item %s cannot be negative", saleLine.ItemName))
		}
		if req.ReturnQuantity.GreaterThan(saleLine.Quantity) {
			return nil, shared.NewDomainError("INVALID_QUANTITY",
				fmt.Sprintf("Item %s: return quantity %s exceeds sold quantity %s", saleLine.ItemName, req.ReturnQuantity.String(), saleLine.Quantity.String()))
		}
		if req.ReturnQuantity.IsPositive() {
			hasPositive = true
			if req.Reason == "" {
				return nil, shared.NewDomainError("INVALID_REASON", fmt.Sprintf("Return reason is required for item %s", saleLine.ItemName))
			}
		}

		now := time.Now()
		lines = append(lines, SalesReturnLine{
			ID:               uuid.New(),
			SaleLineID:       saleLine.ID,
			ItemID:           saleLine.ItemID,
			ItemName:         saleLine.ItemName,
			OriginalQuantity: saleLine.Quantity,
			ReturnQuantity:   req.ReturnQuantity,
			FinalTotal:       saleLine.FinalTotal,
			RefundAmount:     costing.ProportionalRefund(saleLine.FinalTotal, req.ReturnQuantity, saleLine.Quantity),
			Reason:           req.Reason,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	if !hasPositive {
		return nil, shared.NewDomainError("EMPTY_RETURN", "At least one line must return a positive quantity")
	}

	sr := &SalesReturn{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReturnNumber:      returnNumber,
		SaleID:            sale.ID,
		SaleNumber:        sale.SaleNumber,
		CustomerID:        sale.CustomerID,
		CustomerName:      sale.CustomerName,
		Lines:             lines,
		Status:            ReturnStatusPending,
	}
	for idx := range sr.Lines {
		sr.Lines[idx].ReturnID = sr.ID
	}
	sr.recalculateRefund()

	return sr, nil
}

// Approve approves the return, recording who approved it
func (r *SalesReturn) Approve(approverID uuid.UUID, note string) error {
	if !r.Status.CanTransitionTo(ReturnStatusApproved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve return in %s status", r.Status))
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver ID cannot be empty")
	}

	now := time.Now()
	r.Status = ReturnStatusApproved
	r.ApprovedBy = &approverID
	r.ApprovalNote = note
	r.ApprovedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// Reject rejects the return
func (r *SalesReturn) Reject(reason string) error {
	if !r.Status.CanTransitionTo(ReturnStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject return in %s status", r.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Reject reason is required")
	}

	now := time.Now()
	r.Status = ReturnStatusRejected
	r.RejectedAt = &now
	r.RejectReason = reason
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// Complete marks the return as completed after the refund is paid out
func (r *SalesReturn) Complete() error {
	if !r.Status.CanTransitionTo(ReturnStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete return in %s status", r.Status))
	}

	now := time.Now()
	r.Status = ReturnStatusCompleted
	r.CompletedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// SetRemark sets the return remark
func (r *SalesReturn) SetRemark(remark string) {
	r.Remark = remark
	r.UpdatedAt = time.Now()
}

// recalculateRefund recalculates the refund total
func (r *SalesReturn) recalculateRefund() {
	lineTotals := make([]decimal.Decimal, len(r.Lines))
	for i, line := range r.Lines {
		lineTotals[i] = line.RefundAmount
	}
	r.RefundTotal = costing.SumLineTotals(lineTotals)
}

// GetRefundTotalMoney returns the refund total as Money
func (r *SalesReturn) GetRefundTotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(r.RefundTotal)
}
