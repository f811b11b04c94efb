package sales

import (
	"time"

	"github.com/aurum/backoffice/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Sale DTOs ====================

// CreateSaleRequest represents a request to create a sale
type CreateSaleRequest struct {
	CustomerID   *uuid.UUID            `json:"customer_id"`
	CustomerName string                `json:"customer_name" binding:"max=200"`
	Lines        []CreateSaleLineInput `json:"lines" binding:"required,min=1,dive"`
	Discount     decimal.Decimal       `json:"discount"`
	ShippingCost decimal.Decimal       `json:"shipping_cost"`
	VAT          decimal.Decimal       `json:"vat"`
	Remark       string                `json:"remark"`
}

// CreateSaleLineInput represents a sold line in the create request
type CreateSaleLineInput struct {
	ItemID         uuid.UUID       `json:"item_id" binding:"required"`
	ItemName       string          `json:"item_name" binding:"required,min=1,max=200"`
	ItemCode       string          `json:"item_code" binding:"max=50"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	PriceBeforeTax decimal.Decimal `json:"price_before_tax" binding:"required"`
	GSTRate        decimal.Decimal `json:"gst_rate"`
}

// CancelSaleRequest represents a request to cancel a draft sale
type CancelSaleRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// SaleListFilter represents filter options for sale list
type SaleListFilter struct {
	Search     string            `form:"search"`
	CustomerID *uuid.UUID        `form:"customer_id"`
	Status     *sales.SaleStatus `form:"status"`
	StartDate  *time.Time        `form:"start_date"`
	EndDate    *time.Time        `form:"end_date"`
	Page       int               `form:"page" binding:"omitempty,min=1"`
	PageSize   int               `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string            `form:"order_by"`
	OrderDir   string            `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SaleLineResponse represents a sale line in API responses
type SaleLineResponse struct {
	ID             uuid.UUID       `json:"id"`
	ItemID         uuid.UUID       `json:"item_id"`
	ItemName       string          `json:"item_name"`
	ItemCode       string          `json:"item_code"`
	Quantity       decimal.Decimal `json:"quantity"`
	PriceBeforeTax decimal.Decimal `json:"price_before_tax"`
	GSTRate        decimal.Decimal `json:"gst_rate"`
	GSTAmount      decimal.Decimal `json:"gst_amount"`
	SellingTotal   decimal.Decimal `json:"selling_total"`
	FinalTotal     decimal.Decimal `json:"final_total"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID           uuid.UUID          `json:"id"`
	SaleNumber   string             `json:"sale_number"`
	CustomerID   *uuid.UUID         `json:"customer_id,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	Lines        []SaleLineResponse `json:"lines"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Discount     decimal.Decimal    `json:"discount"`
	ShippingCost decimal.Decimal    `json:"shipping_cost"`
	VAT          decimal.Decimal    `json:"vat"`
	GrandTotal   decimal.Decimal    `json:"grand_total"`
	Status       string             `json:"status"`
	Remark       string             `json:"remark,omitempty"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty"`
	CancelledAt  *time.Time         `json:"cancelled_at,omitempty"`
	CancelReason string             `json:"cancel_reason,omitempty"`
	Version      int                `json:"version"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// SaleListItemResponse is the trimmed list row
type SaleListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	SaleNumber   string          `json:"sale_number"`
	CustomerName string          `json:"customer_name,omitempty"`
	LineCount    int             `json:"line_count"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToSaleResponse converts a domain sale to a response
func ToSaleResponse(s *sales.Sale) SaleResponse {
	lines := make([]SaleLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = SaleLineResponse{
			ID:             l.ID,
			ItemID:         l.ItemID,
			ItemName:       l.ItemName,
			ItemCode:       l.ItemCode,
			Quantity:       l.Quantity,
			PriceBeforeTax: l.PriceBeforeTax,
			GSTRate:        l.GSTRate,
			GSTAmount:      l.GSTAmount,
			SellingTotal:   l.SellingTotal,
			FinalTotal:     l.FinalTotal,
		}
	}
	return SaleResponse{
		ID:           s.ID,
		SaleNumber:   s.SaleNumber,
		CustomerID:   s.CustomerID,
		CustomerName: s.CustomerName,
		Lines:        lines,
		Subtotal:     s.Subtotal,
		Discount:     s.Discount,
		ShippingCost: s.ShippingCost,
		VAT:          s.VAT,
		GrandTotal:   s.GrandTotal,
		Status:       s.Status.String(),
		Remark:       s.Remark,
		CompletedAt:  s.CompletedAt,
		CancelledAt:  s.CancelledAt,
		CancelReason: s.CancelReason,
		Version:      s.Version,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ToSaleListItemResponses converts domain sales to list rows
func ToSaleListItemResponses(items []sales.Sale) []SaleListItemResponse {
	out := make([]SaleListItemResponse, len(items))
	for i, s := range items {
		out[i] = SaleListItemResponse{
			ID:           s.ID,
			SaleNumber:   s.SaleNumber,
			CustomerName: s.CustomerName,
			LineCount:    len(s.Lines),
			GrandTotal:   s.GrandTotal,
			Status:       s.Status.String(),
			CreatedAt:    s.CreatedAt,
		}
	}
	return out
}

// ==================== Sales Return DTOs ====================

// CreateSalesReturnRequest represents a request to create a sales return
type CreateSalesReturnRequest struct {
	SaleID uuid.UUID                     `json:"sale_id" binding:"required"`
	Lines  []CreateSalesReturnLineInput  `json:"lines" binding:"required,min=1,dive"`
	Remark string                        `json:"remark"`
}

// CreateSalesReturnLineInput requests a return against one sale line
type CreateSalesReturnLineInput struct {
	SaleLineID     uuid.UUID       `json:"sale_line_id" binding:"required"`
	ReturnQuantity decimal.Decimal `json:"return_quantity"`
	Reason         string          `json:"reason" binding:"max=500"`
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

// SalesReturnListFilter represents filter options for sales return list
type SalesReturnListFilter struct {
	Search     string              `form:"search"`
	SaleID     *uuid.UUID          `form:"sale_id"`
	CustomerID *uuid.UUID          `form:"customer_id"`
	Status     *sales.ReturnStatus `form:"status"`
	StartDate  *time.Time          `form:"start_date"`
	EndDate    *time.Time          `form:"end_date"`
	Page       int                 `form:"page" binding:"omitempty,min=1"`
	PageSize   int                 `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string              `form:"order_by"`
	OrderDir   string              `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SalesReturnLineResponse represents a sales return line in API responses
type SalesReturnLineResponse struct {
	ID               uuid.UUID       `json:"id"`
	SaleLineID       uuid.UUID       `json:"sale_line_id"`
	ItemID           uuid.UUID       `json:"item_id"`
	ItemName         string          `json:"item_name"`
	OriginalQuantity decimal.Decimal `json:"original_quantity"`
	ReturnQuantity   decimal.Decimal `json:"return_quantity"`
	FinalTotal       decimal.Decimal `json:"final_total"`
	RefundAmount     decimal.Decimal `json:"refund_amount"`
	Reason           string          `json:"reason,omitempty"`
}

// SalesReturnResponse represents a sales return in API responses
type SalesReturnResponse struct {
	ID           uuid.UUID                 `json:"id"`
	ReturnNumber string                    `json:"return_number"`
	SaleID       uuid.UUID                 `json:"sale_id"`
	SaleNumber   string                    `json:"sale_number"`
	CustomerID   *uuid.UUID                `json:"customer_id,omitempty"`
	CustomerName string                    `json:"customer_name,omitempty"`
	Lines        []SalesReturnLineResponse `json:"lines"`
	RefundTotal  decimal.Decimal           `json:"refund_total"`
	Status       string                    `json:"status"`
	Remark       string                    `json:"remark,omitempty"`
	ApprovedBy   *uuid.UUID                `json:"approved_by,omitempty"`
	ApprovalNote string                    `json:"approval_note,omitempty"`
	ApprovedAt   *time.Time                `json:"approved_at,omitempty"`
	RejectedAt   *time.Time                `json:"rejected_at,omitempty"`
	CompletedAt  *time.Time                `json:"completed_at,omitempty"`
	RejectReason string                    `json:"reject_reason,omitempty"`
	Version      int                       `json:"version"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// SalesReturnListItemResponse is the trimmed list row
type SalesReturnListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ReturnNumber string          `json:"return_number"`
	SaleNumber   string          `json:"sale_number"`
	CustomerName string          `json:"customer_name,omitempty"`
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

// ToSalesReturnResponse converts a domain sales return to a response
func ToSalesReturnResponse(sr *sales.SalesReturn) SalesReturnResponse {
	lines := make([]SalesReturnLineResponse, len(sr.Lines))
	for i, l := range sr.Lines {
		lines[i] = SalesReturnLineResponse{
			ID:               l.ID,
			SaleLineID:       l.SaleLineID,
			ItemID:           l.ItemID,
			ItemName:         l.ItemName,
			OriginalQuantity: l.OriginalQuantity,
			ReturnQuantity:   l.ReturnQuantity,
			FinalTotal:       l.FinalTotal,
			RefundAmount:     l.RefundAmount,
			Reason:           l.Reason,
		}
	}
	return SalesReturnResponse{
		ID:           sr.ID,
		ReturnNumber: sr.ReturnNumber,
		SaleID:       sr.SaleID,
		SaleNumber:   sr.SaleNumber,
		CustomerID:   sr.CustomerID,
		CustomerName: sr.CustomerName,
		Lines:        lines,
		RefundTotal:  sr.RefundTotal,
		Status:       sr.Status.String(),
		Remark:       sr.Remark,
		ApprovedBy:   sr.ApprovedBy,
		ApprovalNote: sr.ApprovalNote,
		ApprovedAt:   sr.ApprovedAt,
		RejectedAt:   sr.RejectedAt,
		CompletedAt:  sr.CompletedAt,
		RejectReason: sr.RejectReason,
		Version:      sr.Version,
		CreatedAt:    sr.CreatedAt,
		UpdatedAt:    sr.UpdatedAt,
	}
}

// ToSalesReturnListItemResponses converts domain returns to list rows
func ToSalesReturnListItemResponses(returns []sales.SalesReturn) []SalesReturnListItemResponse {
	items := make([]SalesReturnListItemResponse, len(returns))
	for i, sr := range returns {
		items[i] = SalesReturnListItemResponse{
			ID:           sr.ID,
			ReturnNumber: sr.ReturnNumber,
			SaleNumber:   sr.SaleNumber,
			CustomerName: sr.CustomerName,
			LineCount:    len(sr.Lines),
			RefundTotal:  sr.RefundTotal,
			Status:       sr.Status.String(),
			CreatedAt:    sr.CreatedAt,
		}
	}
	return items
}
