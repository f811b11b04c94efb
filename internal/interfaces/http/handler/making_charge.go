package handler

import (
	pricingapp "github.com/aurum/backoffice/internal/application/pricing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MakingChargeHandler handles making charge price table API endpoints
type MakingChargeHandler struct {
	BaseHandler
	chargeService *pricingapp.MakingChargeService
}

// NewMakingChargeHandler creates a new MakingChargeHandler
func NewMakingChargeHandler(chargeService *pricingapp.MakingChargeService) *MakingChargeHandler {
	return &MakingChargeHandler{chargeService: chargeService}
}

// RegisterRoutes registers making charge routes
func (h *MakingChargeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	charges := rg.Group("/making-charges")
	{
		charges.POST("", h.Create)
		charges.GET("", h.List)
		charges.GET("/stage/:stage_id", h.ListByStage)
		charges.GET("/:id", h.GetByID)
		charges.PUT("/:id", h.Update)
		charges.DELETE("/:id", h.Delete)
	}
}

// Create adds a price table entry
func (h *MakingChargeHandler) Create(c *gin.Context) {
	var req pricingapp.CreateMakingChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	charge, err := h.chargeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, charge)
}

// GetByID retrieves a price table entry by its ID
func (h *MakingChargeHandler) GetByID(c *gin.Context) {
	chargeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid charge ID format")
		return
	}

	charge, err := h.chargeService.GetByID(c.Request.Context(), chargeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, charge)
}

// List retrieves a paginated view of the price table
func (h *MakingChargeHandler) List(c *gin.Context) {
	var filter pricingapp.MakingChargeListFilter
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

	charges, total, err := h.chargeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, charges, total, filter.Page, filter.PageSize)
}

// ListByStage lists all quotes recorded for a production stage
func (h *MakingChargeHandler) ListByStage(c *gin.Context) {
	stageID, err := uuid.Parse(c.Param("stage_id"))
	if err != nil {
		h.BadRequest(c, "Invalid stage ID format")
		return
	}

	charges, err := h.chargeService.ListByStage(c.Request.Context(), stageID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, charges)
}

// Update changes the quoted amount of a price table entry
func (h *MakingChargeHandler) Update(c *gin.Context) {
	chargeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid charge ID format")
		return
	}

	var req pricingapp.UpdateMakingChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	charge, err := h.chargeService.Update(c.Request.Context(), chargeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, charge)
}

// Delete removes a price table entry
func (h *MakingChargeHandler) Delete(c *gin.Context) {
	chargeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid charge ID format")
		return
	}

	if err := h.chargeService.Delete(c.Request.Context(), chargeID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
