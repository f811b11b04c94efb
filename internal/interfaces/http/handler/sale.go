package handler

import (
	salesapp "github.com/aurum/backoffice/internal/application/sales"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleHandler handles sale API endpoints
type SaleHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.List)
		sales.GET("/:id", h.GetByID)
		sales.GET("/number/:sale_number", h.GetBySaleNumber)
	}
}

// Create records a completed sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetByID retrieves a sale by its ID
func (h *SaleHandler) GetByID(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// GetBySaleNumber retrieves a sale by its sale number
func (h *SaleHandler) GetBySaleNumber(c *gin.Context) {
	saleNumber := c.Param("sale_number")
	if saleNumber == "" {
		h.BadRequest(c, "Sale number is required")
		return
	}

	sale, err := h.saleService.GetBySaleNumber(c.Request.Context(), saleNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// List retrieves a paginated list of sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter salesapp.SaleListFilter
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

	sales, total, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}
