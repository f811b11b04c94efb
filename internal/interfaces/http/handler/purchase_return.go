package handler

import (
	procurementapp "github.com/aurum/backoffice/internal/application/procurement"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PurchaseReturnHandler handles purchase return API endpoints
type PurchaseReturnHandler struct {
	BaseHandler
	returnService *procurementapp.PurchaseReturnService
}

// NewPurchaseReturnHandler creates a new PurchaseReturnHandler
func NewPurchaseReturnHandler(returnService *procurementapp.PurchaseReturnService) *PurchaseReturnHandler {
	return &PurchaseReturnHandler{returnService: returnService}
}

// RegisterRoutes registers purchase return routes
func (h *PurchaseReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	returns := rg.Group("/purchase-returns")
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
}

// Create creates a purchase return and consumes the matching balances
func (h *PurchaseReturnHandler) Create(c *gin.Context) {
	var req procurementapp.CreatePurchaseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pr, err := h.returnService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, pr)
}

// GetByID retrieves a purchase return by its ID
func (h *PurchaseReturnHandler) GetByID(c *gin.Context) {
	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	pr, err := h.returnService.GetByID(c.Request.Context(), returnID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, pr)
}

// GetByReturnNumber retrieves a purchase return by its return number
func (h *PurchaseReturnHandler) GetByReturnNumber(c *gin.Context) {
	returnNumber := c.Param("return_number")
	if returnNumber == "" {
		h.BadRequest(c, "Return number is required")
		return
	}

	pr, err := h.returnService.GetByReturnNumber(c.Request.Context(), returnNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, pr)
}

// List retrieves a paginated list of purchase returns
func (h *PurchaseReturnHandler) List(c *gin.Context) {
	var filter procurementapp.PurchaseReturnListFilter
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

// Approve approves a pending purchase return
func (h *PurchaseReturnHandler) Approve(c *gin.Context) {
	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	var req procurementapp.ApproveReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pr, err := h.returnService.Approve(c.Request.Context(), returnID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMessage(c, pr, "Purchase return approved")
}

// Reject rejects a pending purchase return and releases its balances
func (h *PurchaseReturnHandler) Reject(c *gin.Context) {
	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	var req procurementapp.RejectReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pr, err := h.returnService.Reject(c.Request.Context(), returnID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMessage(c, pr, "Purchase return rejected")
}

// Complete marks an approved purchase return as shipped back
func (h *PurchaseReturnHandler) Complete(c *gin.Context) {
	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	pr, err := h.returnService.Complete(c.Request.Context(), returnID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMessage(c, pr, "Purchase return completed")
}

// StatusSummary returns counts of purchase returns per workflow state
func (h *PurchaseReturnHandler) StatusSummary(c *gin.Context) {
	summary, err := h.returnService.StatusSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
