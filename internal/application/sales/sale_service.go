package sales

import (
	"context"

	"github.com/aurum/backoffice/internal/domain/sales"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleService handles sale business operations
type SaleService struct {
	saleRepo sales.SaleRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo sales.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// Create creates and completes a sale in one step. Counter sales are
// recorded after the fact, so the draft stage is internal only.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	saleNumber, err := s.saleRepo.GenerateSaleNumber(ctx)
	if err != nil {
		return nil, err
	}

	sale, err := sales.NewSale(saleNumber, req.CustomerName)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		if err := sale.SetCustomer(*req.CustomerID, req.CustomerName); err != nil {
			return nil, err
		}
	}
	if req.Remark != "" {
		sale.SetRemark(req.Remark)
	}

	for _, line := range req.Lines {
		if _, err := sale.AddLine(line.ItemID, line.ItemName, line.ItemCode,
			line.Quantity, line.PriceBeforeTax, line.GSTRate); err != nil {
			return nil, err
		}
	}

	if err := sale.ApplyAdjustments(req.Discount, req.ShippingCost, req.VAT); err != nil {
		return nil, err
	}
	if err := sale.Complete(); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetBySaleNumber retrieves a sale by its number
func (s *SaleService) GetBySaleNumber(ctx context.Context, saleNumber string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindBySaleNumber(ctx, saleNumber)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	items, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSaleListItemResponses(items), total, nil
}
