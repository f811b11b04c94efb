package handler

import (
	salesapp "github.com/aurum/backoffice/internal/application/sales"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalesReturnHandler handles sales return API endpoints
type SalesReturnHandler struct {
	BaseHandler
	returnService *salesapp.SalesReturnService
}

// NewSalesReturnHandler creates a new SalesReturnHandler
func NewSalesReturnHandler(returnService *salesapp.SalesReturnService) *SalesReturnHandler {
	return &SalesReturnHandler{returnService: returnService}
}

// RegisterRoutes registers sales return routes. Returns recorded against
// a sale are also reachable under the sale itself.
func (h *SalesReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	returns := rg.Group("/sales-returns")
	{
		returns.POST("", h.Create)
		returns.GET("", h.List)
		returns.GET("/status-summary", h.StatusSummary)
		returns.GET("/:id", h.GetByID)
		returns.GET("/number/:return_number", h.GetByReturnNumber)
		returns.POST("/:id/approve", h.Approve)
		returns.POST("/:id/reject", h.Reject)
		returns.POST("/:id/complete", h.Complete)
	}

	rg.GET("/sales/:id/returns", h.ListBySale)
}

// Create creates a sales return with proportional refunds
func (h *SalesReturnHandler) Create(c *gin.Context) {
	var req salesapp.CreateSalesReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sr, err := h.returnService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sr)
}

// GetByID retrieves a sales return by its ID
func (h *SalesReturnHandler) GetByID(c *gin.Context) {
	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	sr, err := h.returnService.GetByID(c.Request.Context(), returnID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sr)
}

// GetByReturnNumber retrieves a sales return by its return number
func (h *SalesReturnHandler) GetByReturnNumber(c *gin.Context) {
	returnNumber := c.Param("return_number")
	if returnNumber == "" {
		h.BadRequest(c, "Return number is required")
		return
	}

	sr, err := h.returnService.GetByReturnNumber(c.Request.Context(), returnNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sr)
}

// ListBySale lists all returns recorded against one sale
func (h *SalesReturnHandler) ListBySale(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	returns, err := h.returnService.ListBySale(c.Request.Context(), saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, returns)
}

// List retrieves a paginated list of sales returns
func (h *SalesReturnHandler) List(c *gin.Context) {
	var filter salesapp.SalesReturnListFilter
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

	returns, total, err := h.returnService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, returns, total, filter.Page, filter.PageSize)
}

// Approve approves a pending sales return
func (h *SalesReturnHandler) Approve(c *gin.Context) {
	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	var req salesapp.ApproveReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sr, err := h.returnService.Approve(c.Request.Context(), returnID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMessage(c, sr, "Sales return approved")
}

// Reject rejects a pending sales return
func (h *SalesReturnHandler) Reject(c *gin.Context) {
	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	var req salesapp.RejectReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sr, err := h.returnService.Reject(c.Request.Context(), returnID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMessage(c, sr, "Sales return rejected")
}

// Complete marks an approved sales return as refunded
func (h *SalesReturnHandler) Complete(c *gin.Context) {
	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	sr, err := h.returnService.Complete(c.Request.Context(), returnID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMessage(c, sr, "Sales return completed")
}

// StatusSummary returns counts of sales returns per workflow state
func (h *SalesReturnHandler) StatusSummary(c *gin.Context) {
	summary, err := h.returnService.StatusSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
