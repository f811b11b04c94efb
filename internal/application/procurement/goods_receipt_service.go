package procurement

import (
	"context"

	"github.com/aurum/backoffice/internal/domain/procurement"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// GoodsReceiptService handles goods receipt business operations.
// Submitting a receipt seeds the returnable balance ledger.
type GoodsReceiptService struct {
	receiptRepo procurement.GoodsReceiptRepository
	orderRepo   procurement.PurchaseOrderRepository
	balanceRepo procurement.OrderLineBalanceRepository
}

// NewGoodsReceiptService creates a new GoodsReceiptService
func NewGoodsReceiptService(
	receiptRepo procurement.GoodsReceiptRepository,
	orderRepo procurement.PurchaseOrderRepository,
	balanceRepo procurement.OrderLineBalanceRepository,
) *GoodsReceiptService {
	return &GoodsReceiptService{
		receiptRepo: receiptRepo,
		orderRepo:   orderRepo,
		balanceRepo: balanceRepo,
	}
}

// Create creates a draft goods receipt against a purchase order
func (s *GoodsReceiptService) Create(ctx context.Context, req CreateGoodsReceiptRequest) (*GoodsReceiptResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	receiptNumber, err := s.receiptRepo.GenerateReceiptNumber(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := procurement.NewGoodsReceipt(receiptNumber, order)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		receipt.SetRemark(req.Remark)
	}

	for _, line := range req.Lines {
		orderLine := order.GetLine(line.OrderLineID)
		if orderLine == nil {
			return nil, shared.NewDomainError("LINE_NOT_FOUND", "Order line not found: "+line.OrderLineID.String())
		}
		if _, err := receipt.AddLine(orderLine, line.ReceivedQuantity, line.ReceivedWeight); err != nil {
			return nil, err
		}
	}

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}

	response := ToGoodsReceiptResponse(receipt)
	return &response, nil
}

// GetByID retrieves a goods receipt by ID
func (s *GoodsReceiptService) GetByID(ctx context.Context, receiptID uuid.UUID) (*GoodsReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	response := ToGoodsReceiptResponse(receipt)
	return &response, nil
}

// GetByReceiptNumber retrieves a goods receipt by its number
func (s *GoodsReceiptService) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*GoodsReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByReceiptNumber(ctx, receiptNumber)
	if err != nil {
		return nil, err
	}
	response := ToGoodsReceiptResponse(receipt)
	return &response, nil
}

// List retrieves goods receipts with filtering and pagination
func (s *GoodsReceiptService) List(ctx context.Context, filter GoodsReceiptListFilter) ([]GoodsReceiptListItemResponse, int64, error) {
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

	if filter.OrderID != nil {
		domainFilter.Filters["order_id"] = *filter.OrderID
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

	receipts, err := s.receiptRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.receiptRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToGoodsReceiptListItemResponses(receipts), total, nil
}

// UpdateLine corrects the received amounts on a receipt line and
// re-derives its status and totals. Corrections on a submitted receipt
// rewrite the matching returnable balance as well, so a later return
// is always validated against the corrected received amount.
func (s *GoodsReceiptService) UpdateLine(ctx context.Context, receiptID, lineID uuid.UUID, req UpdateGoodsReceiptLineRequest) (*GoodsReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	var balance *procurement.OrderLineBalance
	var balanceVersion int
	if receipt.Status == procurement.GoodsReceiptStatusSubmitted {
		balances, err := s.balanceRepo.FindByReceiptID(ctx, receiptID)
		if err != nil {
			return nil, err
		}
		for idx := range balances {
			if balances[idx].ReceiptLineID == lineID {
				balance = &balances[idx]
				break
			}
		}
		if balance == nil {
			return nil, shared.NewDomainError("LINE_NOT_FOUND", "Returnable balance not found for receipt line")
		}
		balanceVersion = balance.Version
		if err := balance.AdjustReceived(req.ReceivedQuantity, req.ReceivedWeight); err != nil {
			return nil, err
		}
	}

	expectedVersion := receipt.Version
	if err := receipt.UpdateLine(lineID, req.ReceivedQuantity, req.ReceivedWeight); err != nil {
		return nil, err
	}

	if err := s.receiptRepo.SaveWithLock(ctx, receipt, expectedVersion); err != nil {
		return nil, err
	}
	if balance != nil {
		if err := s.balanceRepo.SaveWithLock(ctx, balance, balanceVersion); err != nil {
			return nil, err
		}
	}

	response := ToGoodsReceiptResponse(receipt)
	return &response, nil
}

// Submit submits a draft receipt and seeds one returnable balance per line
func (s *GoodsReceiptService) Submit(ctx context.Context, receiptID uuid.UUID) (*GoodsReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	expectedVersion := receipt.Version
	if err := receipt.Submit(); err != nil {
		return nil, err
	}

	if err := s.receiptRepo.SaveWithLock(ctx, receipt, expectedVersion); err != nil {
		return nil, err
	}

	for idx := range receipt.Lines {
		balance, err := procurement.NewOrderLineBalance(receipt.ID, receipt.OrderID, &receipt.Lines[idx])
		if err != nil {
			return nil, err
		}
		if err := s.balanceRepo.Save(ctx, balance); err != nil {
			return nil, err
		}
	}

	response := ToGoodsReceiptResponse(receipt)
	return &response, nil
}

// Void voids a receipt
func (s *GoodsReceiptService) Void(ctx context.Context, receiptID uuid.UUID, req VoidGoodsReceiptRequest) (*GoodsReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	expectedVersion := receipt.Version
	if err := receipt.Void(req.Reason); err != nil {
		return nil, err
	}

	if err := s.receiptRepo.SaveWithLock(ctx, receipt, expectedVersion); err != nil {
		return nil, err
	}

	response := ToGoodsReceiptResponse(receipt)
	return &response, nil
}

// ListBalancesByOrder exposes the returnable ledger for an order
func (s *GoodsReceiptService) ListBalancesByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderLineBalanceResponse, error) {
	balances, err := s.balanceRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderLineBalanceResponses(balances), nil
}
