package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/domain/shared/costing"
	"github.com/aurum/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnStatus represents the workflow status of a return document.
// Shared by purchase returns and sales returns.
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

// OverReturnViolation describes a single line whose requested return
// exceeds the available balance
type OverReturnViolation struct {
	ItemID    uuid.UUID       `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
	TrackBy   costing.TrackBy `json:"track_by"`
}

// OverReturnError reports every violating line of a return request at
// once, so the client can fix the whole document in one round trip.
type OverReturnError struct {
	Violations []OverReturnViolation
}

// Error implements the error interface
func (e *OverReturnError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: requested %s, available %s", v.ItemName, v.Requested.String(), v.Available.String())
	}
	return "return exceeds available balance: " + strings.Join(parts, "; ")
}

// PurchaseReturnLine represents a line item being returned to a supplier
type PurchaseReturnLine struct {
	ID             uuid.UUID
	ReturnID       uuid.UUID
	BalanceID      uuid.UUID
	ReceiptLineID  uuid.UUID
	ItemID         uuid.UUID
	ItemName       string
	TrackBy        costing.TrackBy
	ReturnQuantity decimal.Decimal
	ReturnWeight   decimal.Decimal
	UnitCost       decimal.Decimal
	RefundAmount   decimal.Decimal
	Reason         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReturnAmount returns the returned amount on the tracking dimension
func (l *PurchaseReturnLine) ReturnAmount() decimal.Decimal {
	return costing.EffectiveAmount(l.TrackBy, l.ReturnQuantity, l.ReturnWeight)
}

// PurchaseReturnLineRequest is the requested return for one balance,
// before validation
type PurchaseReturnLineRequest struct {
	BalanceID      uuid.UUID
	ReturnQuantity decimal.Decimal
	ReturnWeight   decimal.Decimal
	Reason         string
}

// PurchaseReturn represents a return of received goods to a supplier
type PurchaseReturn struct {
	shared.BaseAggregateRoot
	ReturnNumber string
	OrderID      uuid.UUID
	SupplierID   uuid.UUID
	SupplierName string
	Lines        []PurchaseReturnLine
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

// BuildPurchaseReturn validates a return request against the balance
// ledger and assembles the aggregate. Validation is all-or-nothing:
// every requested line is checked and every over-return is collected
// into a single OverReturnError before anything is committed. Balances
// are NOT consumed here; the caller consumes them in the same
// transaction that persists the return.
func BuildPurchaseReturn(returnNumber string, orderID, supplierID uuid.UUID, supplierName string, requests []PurchaseReturnLineRequest, balances map[uuid.UUID]*OrderLineBalance) (*PurchaseReturn, error) {
	if returnNumber == "" {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if len(requests) == 0 {
		return nil, shared.NewDomainError("EMPTY_RETURN", "Return must have at least one line")
	}

	seen := make(map[uuid.UUID]bool, len(requests))
	violations := make([]OverReturnViolation, 0)
	validated := make([]PurchaseReturnLine, 0, len(requests))

	for _, req := range requests {
		if seen[req.BalanceID] {
			return nil, shared.NewDomainError("DUPLICATE_LINE", "Balance referenced more than once in return")
		}
		seen[req.BalanceID] = true

		balance, ok := balances[req.BalanceID]
		if !ok {
			return nil, shared.NewDomainError("BALANCE_NOT_FOUND", "Returnable balance not found")
		}
		if req.ReturnQuantity.IsNegative() || req.ReturnWeight.IsNegative() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Return amounts cannot be negative")
		}

		requested := costing.EffectiveAmount(balance.TrackBy, req.ReturnQuantity, req.ReturnWeight)
		if !requested.IsPositive() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Return amount for item %s must be positive", balance.ItemName))
		}
		if req.Reason == "" {
			return nil, shared.NewDomainError("INVALID_REASON", fmt.Sprintf("Return reason is required for item %s", balance.ItemName))
		}

		if requested.GreaterThan(balance.Available()) {
			violations = append(violations, OverReturnViolation{
				ItemID:    balance.ItemID,
				ItemName:  balance.ItemName,
				Requested: requested,
				Available: balance.Available(),
				TrackBy:   balance.TrackBy,
			})
			continue
		}

		now := time.Now()
		validated = append(validated, PurchaseReturnLine{
			ID:             uuid.New(),
			BalanceID:      balance.ID,
			ReceiptLineID:  balance.ReceiptLineID,
			ItemID:         balance.ItemID,
			ItemName:       balance.ItemName,
			TrackBy:        balance.TrackBy,
			ReturnQuantity: req.ReturnQuantity,
			ReturnWeight:   req.ReturnWeight,
			UnitCost:       balance.UnitCost,
			RefundAmount:   costing.LineTotal(balance.UnitCost, balance.TrackBy, req.ReturnQuantity, req.ReturnWeight),
			Reason:         req.Reason,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	if len(violations) > 0 {
		return nil, &OverReturnError{Violations: violations}
	}

	pr := &PurchaseReturn{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReturnNumber:      returnNumber,
		OrderID:           orderID,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Lines:             validated,
		Status:            ReturnStatusPending,
	}
	for idx := range pr.Lines {
		pr.Lines[idx].ReturnID = pr.ID
	}
	pr.recalculateRefund()

	return pr, nil
}

// Approve approves the return, recording who approved it
func (r *PurchaseReturn) Approve(approverID uuid.UUID, note string) error {
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

// Reject rejects the return. Rejection releases the consumed balances;
// the caller restores them in the same transaction.
func (r *PurchaseReturn) Reject(reason string) error {
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

// Complete marks the return as completed after goods left for the supplier
func (r *PurchaseReturn) Complete() error {
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
func (r *PurchaseReturn) SetRemark(remark string) {
	r.Remark = remark
	r.UpdatedAt = time.Now()
}

// recalculateRefund recalculates the refund total
func (r *PurchaseReturn) recalculateRefund() {
	lineTotals := make([]decimal.Decimal, len(r.Lines))
	for i, line := range r.Lines {
		lineTotals[i] = line.RefundAmount
	}
	r.RefundTotal = costing.SumLineTotals(lineTotals)
}

// GetRefundTotalMoney returns the refund total as Money
func (r *PurchaseReturn) GetRefundTotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(r.RefundTotal)
}

// IsPending returns true if the return awaits a workflow decision
func (r *PurchaseReturn) IsPending() bool {
	return r.Status == ReturnStatusPending
}
