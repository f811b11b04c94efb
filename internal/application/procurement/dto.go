package procurement

import (
	"time"

	"github.com/aurum/backoffice/internal/domain/procurement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Purchase Order DTOs ====================

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID   uuid.UUID                      `json:"supplier_id" binding:"required"`
	SupplierName string                         `json:"supplier_name" binding:"required,min=1,max=200"`
	BranchID     *uuid.UUID                     `json:"branch_id"`
	Lines        []CreatePurchaseOrderLineInput `json:"lines" binding:"required,min=1,dive"`
	Remark       string                         `json:"remark"`
}

// CreatePurchaseOrderLineInput represents a line in the create order request.
// Exactly one of quantity/weight must be positive.
type CreatePurchaseOrderLineInput struct {
	ItemID          uuid.UUID       `json:"item_id" binding:"required"`
	ItemName        string          `json:"item_name" binding:"required,min=1,max=200"`
	ItemCode        string          `json:"item_code" binding:"max=50"`
	Unit            string          `json:"unit" binding:"required,min=1,max=20"`
	OrderedQuantity decimal.Decimal `json:"ordered_quantity"`
	OrderedWeight   decimal.Decimal `json:"ordered_weight"`
	UnitCost        decimal.Decimal `json:"unit_cost" binding:"required"`
}

// CancelPurchaseOrderRequest represents a request to cancel a purchase order
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// PurchaseOrderListFilter represents filter options for purchase order list
type PurchaseOrderListFilter struct {
	Search     string                           `form:"search"`
	SupplierID *uuid.UUID                       `form:"supplier_id"`
	Status     *procurement.PurchaseOrderStatus `form:"status"`
	StartDate  *time.Time                       `form:"start_date"`
	EndDate    *time.Time                       `form:"end_date"`
	Page       int                              `form:"page" binding:"omitempty,min=1"`
	PageSize   int                              `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string                           `form:"order_by"`
	OrderDir   string                           `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PurchaseOrderLineResponse represents an order line in API responses
type PurchaseOrderLineResponse struct {
	ID              uuid.UUID       `json:"id"`
	ItemID          uuid.UUID       `json:"item_id"`
	ItemName        string          `json:"item_name"`
	ItemCode        string          `json:"item_code"`
	TrackBy         string          `json:"track_by"`
	OrderedQuantity decimal.Decimal `json:"ordered_quantity"`
	OrderedWeight   decimal.Decimal `json:"ordered_weight"`
	Unit            string          `json:"unit"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID           uuid.UUID                   `json:"id"`
	OrderNumber  string                      `json:"order_number"`
	SupplierID   uuid.UUID                   `json:"supplier_id"`
	SupplierName string                      `json:"supplier_name"`
	BranchID     *uuid.UUID                  `json:"branch_id,omitempty"`
	Lines        []PurchaseOrderLineResponse `json:"lines"`
	LineCount    int                         `json:"line_count"`
	TotalCost    decimal.Decimal             `json:"total_cost"`
	Status       string                      `json:"status"`
	Remark       string                      `json:"remark,omitempty"`
	CancelledAt  *time.Time                  `json:"cancelled_at,omitempty"`
	CancelReason string                      `json:"cancel_reason,omitempty"`
	Version      int                         `json:"version"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// PurchaseOrderListItemResponse is the trimmed list row
type PurchaseOrderListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	SupplierName string          `json:"supplier_name"`
	LineCount    int             `json:"line_count"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToPurchaseOrderResponse converts a domain purchase order to a response
func ToPurchaseOrderResponse(o *procurement.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = PurchaseOrderLineResponse{
			ID:              l.ID,
			ItemID:          l.ItemID,
			ItemName:        l.ItemName,
			ItemCode:        l.ItemCode,
			TrackBy:         l.TrackBy.String(),
			OrderedQuantity: l.OrderedQuantity,
			OrderedWeight:   l.OrderedWeight,
			Unit:            l.Unit,
			UnitCost:        l.UnitCost,
			LineTotal:       l.LineTotal,
		}
	}
	return PurchaseOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		SupplierID:   o.SupplierID,
		SupplierName: o.SupplierName,
		BranchID:     o.BranchID,
		Lines:        lines,
		LineCount:    len(lines),
		TotalCost:    o.TotalCost,
		Status:       o.Status.String(),
		Remark:       o.Remark,
		CancelledAt:  o.CancelledAt,
		CancelReason: o.CancelReason,
		Version:      o.Version,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// ToPurchaseOrderListItemResponses converts domain orders to list rows
func ToPurchaseOrderListItemResponses(orders []procurement.PurchaseOrder) []PurchaseOrderListItemResponse {
	items := make([]PurchaseOrderListItemResponse, len(orders))
	for i, o := range orders {
		items[i] = PurchaseOrderListItemResponse{
			ID:           o.ID,
			OrderNumber:  o.OrderNumber,
			SupplierName: o.SupplierName,
			LineCount:    len(o.Lines),
			TotalCost:    o.TotalCost,
			Status:       o.Status.String(),
			CreatedAt:    o.CreatedAt,
		}
	}
	return items
}

// ==================== Goods Receipt DTOs ====================

// CreateGoodsReceiptRequest represents a request to create a goods receipt
// against a purchase order
type CreateGoodsReceiptRequest struct {
	OrderID uuid.UUID                     `json:"order_id" binding:"required"`
	Lines   []CreateGoodsReceiptLineInput `json:"lines" binding:"required,min=1,dive"`
	Remark  string                        `json:"remark"`
}

// CreateGoodsReceiptLineInput records the received amount for one order line
type CreateGoodsReceiptLineInput struct {
	OrderLineID      uuid.UUID       `json:"order_line_id" binding:"required"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	ReceivedWeight   decimal.Decimal `json:"received_weight"`
}

// UpdateGoodsReceiptLineRequest corrects received amounts on a line
type UpdateGoodsReceiptLineRequest struct {
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	ReceivedWeight   decimal.Decimal `json:"received_weight"`
}

// VoidGoodsReceiptRequest represents a request to void a receipt
type VoidGoodsReceiptRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// GoodsReceiptListFilter represents filter options for receipt list
type GoodsReceiptListFilter struct {
	Search     string                          `form:"search"`
	OrderID    *uuid.UUID                      `form:"order_id"`
	SupplierID *uuid.UUID                      `form:"supplier_id"`
	Status     *procurement.GoodsReceiptStatus `form:"status"`
	StartDate  *time.Time                      `form:"start_date"`
	EndDate    *time.Time                      `form:"end_date"`
	Page       int                             `form:"page" binding:"omitempty,min=1"`
	PageSize   int                             `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string                          `form:"order_by"`
	OrderDir   string                          `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// GoodsReceiptLineResponse represents a receipt line in API responses
type GoodsReceiptLineResponse struct {
	ID               uuid.UUID       `json:"id"`
	OrderLineID      uuid.UUID       `json:"order_line_id"`
	ItemID           uuid.UUID       `json:"item_id"`
	ItemName         string          `json:"item_name"`
	ItemCode         string          `json:"item_code"`
	TrackBy          string          `json:"track_by"`
	OrderedQuantity  decimal.Decimal `json:"ordered_quantity"`
	OrderedWeight    decimal.Decimal `json:"ordered_weight"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	ReceivedWeight   decimal.Decimal `json:"received_weight"`
	Unit             string          `json:"unit"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	LineTotal        decimal.Decimal `json:"line_total"`
	Status           string          `json:"status"`
}

// GoodsReceiptResponse represents a goods receipt in API responses
type GoodsReceiptResponse struct {
	ID            uuid.UUID                  `json:"id"`
	ReceiptNumber string                     `json:"receipt_number"`
	OrderID       uuid.UUID                  `json:"order_id"`
	OrderNumber   string                     `json:"order_number"`
	SupplierID    uuid.UUID                  `json:"supplier_id"`
	SupplierName  string                     `json:"supplier_name"`
	Lines         []GoodsReceiptLineResponse `json:"lines"`
	TotalCost     decimal.Decimal            `json:"total_cost"`
	Status        string                     `json:"status"`
	Remark        string                     `json:"remark,omitempty"`
	SubmittedAt   *time.Time                 `json:"submitted_at,omitempty"`
	VoidedAt      *time.Time                 `json:"voided_at,omitempty"`
	VoidReason    string                     `json:"void_reason,omitempty"`
	Version       int                        `json:"version"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// GoodsReceiptListItemResponse is the trimmed list row
type GoodsReceiptListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	OrderNumber   string          `json:"order_number"`
	SupplierName  string          `json:"supplier_name"`
	LineCount     int             `json:"line_count"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToGoodsReceiptResponse converts a domain receipt to a response
func ToGoodsReceiptResponse(r *procurement.GoodsReceipt) GoodsReceiptResponse {
	lines := make([]GoodsReceiptLineResponse, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = GoodsReceiptLineResponse{
			ID:               l.ID,
			OrderLineID:      l.OrderLineID,
			ItemID:           l.ItemID,
			ItemName:         l.ItemName,
			ItemCode:         l.ItemCode,
			TrackBy:          l.TrackBy.String(),
			OrderedQuantity:  l.OrderedQuantity,
			OrderedWeight:    l.OrderedWeight,
			ReceivedQuantity: l.ReceivedQuantity,
			ReceivedWeight:   l.ReceivedWeight,
			Unit:             l.Unit,
			UnitCost:         l.UnitCost,
			LineTotal:        l.LineTotal,
			Status:           l.Status.String(),
		}
	}
	return GoodsReceiptResponse{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		OrderID:       r.OrderID,
		OrderNumber:   r.OrderNumber,
		SupplierID:    r.SupplierID,
		SupplierName:  r.SupplierName,
		Lines:         lines,
		TotalCost:     r.TotalCost,
		Status:        r.Status.String(),
		Remark:        r.Remark,
		SubmittedAt:   r.SubmittedAt,
		VoidedAt:      r.VoidedAt,
		VoidReason:    r.VoidReason,
		Version:       r.Version,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ToGoodsReceiptListItemResponses converts domain receipts to list rows
func ToGoodsReceiptListItemResponses(receipts []procurement.GoodsReceipt) []GoodsReceiptListItemResponse {
	items := make([]GoodsReceiptListItemResponse, len(receipts))
	for i, r := range receipts {
		items[i] = GoodsReceiptListItemResponse{
			ID:            r.ID,
			ReceiptNumber: r.ReceiptNumber,
			OrderNumber:   r.OrderNumber,
			SupplierName:  r.SupplierName,
			LineCount:     len(r.Lines),
			TotalCost:     r.TotalCost,
			Status:        r.Status.String(),
			CreatedAt:     r.CreatedAt,
		}
	}
	return items
}

// ==================== Order Line Balance DTOs ====================

// OrderLineBalanceResponse exposes the returnable ledger for one receipt line
type OrderLineBalanceResponse struct {
	ID                uuid.UUID       `json:"id"`
	ReceiptLineID     uuid.UUID       `json:"receipt_line_id"`
	ReceiptID         uuid.UUID       `json:"receipt_id"`
	OrderID           uuid.UUID       `json:"order_id"`
	ItemID            uuid.UUID       `json:"item_id"`
	ItemName          string          `json:"item_name"`
	TrackBy           string          `json:"track_by"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	ReceivedWeight    decimal.Decimal `json:"received_weight"`
	ReturnedQuantity  decimal.Decimal `json:"returned_quantity"`
	ReturnedWeight    decimal.Decimal `json:"returned_weight"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	AvailableWeight   decimal.Decimal `json:"available_weight"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
}

// ToOrderLineBalanceResponse converts a domain balance to a response
func ToOrderLineBalanceResponse(b *procurement.OrderLineBalance) OrderLineBalanceResponse {
	return OrderLineBalanceResponse{
		ID:                b.ID,
		ReceiptLineID:     b.ReceiptLineID,
		ReceiptID:         b.ReceiptID,
		OrderID:           b.OrderID,
		ItemID:            b.ItemID,
		ItemName:          b.ItemName,
		TrackBy:           b.TrackBy.String(),
		ReceivedQuantity:  b.ReceivedQuantity,
		ReceivedWeight:    b.ReceivedWeight,
		ReturnedQuantity:  b.ReturnedQuantity,
		ReturnedWeight:    b.ReturnedWeight,
		AvailableQuantity: b.AvailableQuantity(),
		AvailableWeight:   b.AvailableWeight(),
		UnitCost:          b.UnitCost,
	}
}

// ToOrderLineBalanceResponses converts domain balances to responses
func ToOrderLineBalanceResponses(balances []procurement.OrderLineBalance) []OrderLineBalanceResponse {
	items := make([]OrderLineBalanceResponse, len(balances))
	for i := range balances {
		items[i] = ToOrderLineBalanceResponse(&balances[i])
	}
	return items
}

// ==================== Purchase Return DTOs ====================

// CreatePurchaseReturnRequest represents a request to create a purchase return
type CreatePurchaseReturnRequest struct {
	OrderID uuid.UUID                       `json:"order_id" binding:"required"`
	Lines   []CreatePurchaseReturnLineInput `json:"lines" binding:"required,min=1,dive"`
	Remark  string                          `json:"remark"`
}

// CreatePurchaseReturnLineInput requests a return against one balance
type CreatePurchaseReturnLineInput struct {
	BalanceID      uuid.UUID       `json:"balance_id" binding:"required"`
	ReturnQuantity decimal.Decimal `json:"return_quantity"`
	ReturnWeight   decimal.Decimal `json:"return_weight"`
	Reason         string          `json:"reason" binding:"required,min=1,max=500"`
}

// ApproveReturnRequest carries approver metadata
type ApproveReturnRequest struct {
	ApproverID uuid.UUID `json:"approver_id" binding:"required"`
	Note       string    `json:"note" binding:"max=500"`
}

// RejectReturnRequest carries the rejection reason
type RejectReturnRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// PurchaseReturnListFilter represents filter options for return list
type PurchaseReturnListFilter struct {
	Search     string                    `form:"search"`
	OrderID    *uuid.UUID                `form:"order_id"`
	SupplierID *uuid.UUID                `form:"supplier_id"`
	Status     *procurement.ReturnStatus `form:"status"`
	StartDate  *time.Time                `form:"start_date"`
	EndDate    *time.Time                `form:"end_date"`
	Page       int                       `form:"page" binding:"omitempty,min=1"`
	PageSize   int                       `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string                    `form:"order_by"`
	OrderDir   string                    `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PurchaseReturnLineResponse represents a return line in API responses
type PurchaseReturnLineResponse struct {
	ID             uuid.UUID       `json:"id"`
	BalanceID      uuid.UUID       `json:"balance_id"`
	ReceiptLineID  uuid.UUID       `json:"receipt_line_id"`
	ItemID         uuid.UUID       `json:"item_id"`
	ItemName       string          `json:"item_name"`
	TrackBy        string          `json:"track_by"`
	ReturnQuantity decimal.Decimal `json:"return_quantity"`
	ReturnWeight   decimal.Decimal `json:"return_weight"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	RefundAmount   decimal.Decimal `json:"refund_amount"`
	Reason         string          `json:"reason"`
}

// PurchaseReturnResponse represents a purchase return in API responses
type PurchaseReturnResponse struct {
	ID           uuid.UUID                    `json:"id"`
	ReturnNumber string                       `json:"return_number"`
	OrderID      uuid.UUID                    `json:"order_id"`
	SupplierID   uuid.UUID                    `json:"supplier_id"`
	SupplierName string                       `json:"supplier_name"`
	Lines        []PurchaseReturnLineResponse `json:"lines"`
	RefundTotal  decimal.Decimal              `json:"refund_total"`
	Status       string                       `json:"status"`
	Remark       string                       `json:"remark,omitempty"`
	ApprovedBy   *uuid.UUID                   `json:"approved_by,omitempty"`
	ApprovalNote string                       `json:"approval_note,omitempty"`
	ApprovedAt   *time.Time                   `json:"approved_at,omitempty"`
	RejectedAt   *time.Time                   `json:"rejected_at,omitempty"`
	CompletedAt  *time.Time                   `json:"completed_at,omitempty"`
	RejectReason string                       `json:"reject_reason,omitempty"`
	Version      int                          `json:"version"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

// PurchaseReturnListItemResponse is the trimmed list row
type PurchaseReturnListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ReturnNumber string          `json:"return_number"`
	SupplierName string          `json:"supplier_name"`
	LineCount    int             `json:"line_count"`
	RefundTotal  decimal.Decimal `json:"refund_total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ReturnStatusSummaryResponse holds counts per workflow state
type ReturnStatusSummaryResponse struct {
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}

// ToPurchaseReturnResponse converts a domain return to a response
func ToPurchaseReturnResponse(pr *procurement.PurchaseReturn) PurchaseReturnResponse {
	lines := make([]PurchaseReturnLineResponse, len(pr.Lines))
	for i, l := range pr.Lines {
		lines[i] = PurchaseReturnLineResponse{
			ID:             l.ID,
			BalanceID:      l.BalanceID,
			ReceiptLineID:  l.ReceiptLineID,
			ItemID:         l.ItemID,
			ItemName:       l.ItemName,
			TrackBy:        l.TrackBy.String(),
			ReturnQuantity: l.ReturnQuantity,
			ReturnWeight:   l.ReturnWeight,
			UnitCost:       l.UnitCost,
			RefundAmount:   l.RefundAmount,
			Reason:         l.Reason,
		}
	}
	return PurchaseReturnResponse{
		ID:           pr.ID,
		ReturnNumber: pr.ReturnNumber,
		OrderID:      pr.OrderID,
		SupplierID:   pr.SupplierID,
		SupplierName: pr.SupplierName,
		Lines:        lines,
		RefundTotal:  pr.RefundTotal,
		Status:       pr.Status.String(),
		Remark:       pr.Remark,
		ApprovedBy:   pr.ApprovedBy,
		ApprovalNote: pr.ApprovalNote,
		ApprovedAt:   pr.ApprovedAt,
		RejectedAt:   pr.RejectedAt,
		CompletedAt:  pr.CompletedAt,
		RejectReason: pr.RejectReason,
		Version:      pr.Version,
		CreatedAt:    pr.CreatedAt,
		UpdatedAt:    pr.UpdatedAt,
	}
}

// ToPurchaseReturnListItemResponses converts domain returns to list rows
func ToPurchaseReturnListItemResponses(returns []procurement.PurchaseReturn) []PurchaseReturnListItemResponse {
	items := make([]PurchaseReturnListItemResponse, len(returns))
	for i, pr := range returns {
		items[i] = PurchaseReturnListItemResponse{
			ID:           pr.ID,
			ReturnNumber: pr.ReturnNumber,
			SupplierName: pr.SupplierName,
			LineCount:    len(pr.Lines),
			RefundTotal:  pr.RefundTotal,
			Status:       pr.Status.String(),
			CreatedAt:    pr.CreatedAt,
		}
	}
	return items
}
