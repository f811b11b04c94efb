package procurement

import (
	"context"

	"github.com/aurum/backoffice/internal/domain/procurement"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	orderRepo procurement.PurchaseOrderRepository
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(orderRepo procurement.PurchaseOrderRepository) *PurchaseOrderService {
	return &PurchaseOrderService{orderRepo: orderRepo}
}

// Create creates a new purchase order with its lines
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := procurement.NewPurchaseOrder(orderNumber, req.SupplierID, req.SupplierName)
	if err != nil {
		return nil, err
	}

	if req.BranchID != nil {
		if err := order.SetBranch(*req.BranchID); err != nil {
			return nil, err
		}
	}
	if req.Remark != "" {
		order.SetRemark(req.Remark)
	}

	for _, line := range req.Lines {
		if _, err := order.AddLine(line.ItemID, line.ItemName, line.ItemCode, line.Unit,
			line.OrderedQuantity, line.OrderedWeight, valueobject.NewMoneyINR(line.UnitCost)); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves a purchase order by its number
func (s *PurchaseOrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter PurchaseOrderListFilter) ([]PurchaseOrderListItemResponse, int64, error) {
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

	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
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

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPurchaseOrderListItemResponses(orders), total, nil
}

// Cancel cancels a purchase order
func (s *PurchaseOrderService) Cancel(ctx context.Context, orderID uuid.UUID, req CancelPurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	expectedVersion := order.Version
	if err := order.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order, expectedVersion); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}
