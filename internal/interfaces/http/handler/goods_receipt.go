package handler

import (
	procurementapp "github.com/aurum/backoffice/internal/application/procurement"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GoodsReceiptHandler handles goods receipt API endpoints
type GoodsReceiptHandler struct {
	BaseHandler
	receiptService *procurementapp.GoodsReceiptService
}

// NewGoodsReceiptHandler creates a new GoodsReceiptHandler
func NewGoodsReceiptHandler(receiptService *procurementapp.GoodsReceiptService) *GoodsReceiptHandler {
	return &GoodsReceiptHandler{receiptService: receiptService}
}

// RegisterRoutes registers goods receipt routes. The balance ledger is
// exposed under the order it belongs to.
func (h *GoodsReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/goods-receipts")
	{
		receipts.POST("", h.Create)
		receipts.GET("", h.List)
		receipts.GET("/:id", h.GetByID)
		receipts.GET("/number/:receipt_number", h.GetByReceiptNumber)
		receipts.PUT("/:id/lines/:line_id", h.UpdateLine)
		receipts.POST("/:id/submit", h.Submit)
		receipts.POST("/:id/void", h.Void)
	}

	rg.GET("/purchase-orders/:id/balances", h.ListBalancesByOrder)
}

// Create creates a draft goods receipt against a purchase order
func (h *GoodsReceiptHandler) Create(c *gin.Context) {
	var req procurementapp.CreateGoodsReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, receipt)
}

// GetByID retrieves a goods receipt by its ID
func (h *GoodsReceiptHandler) GetByID(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), receiptID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receipt)
}

// GetByReceiptNumber retrieves a goods receipt by its receipt number
func (h *GoodsReceiptHandler) GetByReceiptNumber(c *gin.Context) {
	receiptNumber := c.Param("receipt_number")
	if receiptNumber == "" {
		h.BadRequest(c, "Receipt number is required")
		return
	}

	receipt, err := h.receiptService.GetByReceiptNumber(c.Request.Context(), receiptNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receipt)
}

// List retrieves a paginated list of goods receipts
func (h *GoodsReceiptHandler) List(c *gin.Context) {
	var filter procurementapp.GoodsReceiptListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	receipts, total, err := h.receiptService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, receipts, total, filter.Page, filter.PageSize)
}

// UpdateLine corrects the received amounts on a receipt line
func (h *GoodsReceiptHandler) UpdateLine(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req procurementapp.UpdateGoodsReceiptLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.receiptService.UpdateLine(c.Request.Context(), receiptID, lineID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receipt)
}

// Submit posts a draft receipt and opens its return balances
func (h *GoodsReceiptHandler) Submit(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	receipt, err := h.receiptService.Submit(c.Request.Context(), receiptID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMessage(c, receipt, "Goods receipt submitted")
}

// Void voids a draft receipt
func (h *GoodsReceiptHandler) Void(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	var req procurementapp.VoidGoodsReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.receiptService.Void(c.Request.Context(), receiptID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMessage(c, receipt, "Goods receipt voided")
}

// ListBalancesByOrder lists the returnable balances opened for an order
func (h *GoodsReceiptHandler) ListBalancesByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	balances, err := h.receiptService.ListBalancesByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balances)
}
