package sales

import (
	"context"

	"github.com/aurum/backoffice/internal/domain/sales"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// SalesReturnService handles sales return business operations
type SalesReturnService struct {
	returnRepo sales.SalesReturnRepository
	saleRepo   sales.SaleRepository
}

// NewSalesReturnService creates a new SalesReturnService
func NewSalesReturnService(returnRepo sales.SalesReturnRepository, saleRepo sales.SaleRepository) *SalesReturnService {
	return &SalesReturnService{
		returnRepo: returnRepo,
		saleRepo:   saleRepo,
	}
}

// Create validates and creates a sales return against a completed sale
func (s *SalesReturnService) Create(ctx context.Context, req CreateSalesReturnRequest) (*SalesReturnResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}

	returnNumber, err := s.returnRepo.GenerateReturnNumber(ctx)
	if err != nil {
		return nil, err
	}

	requests := make([]sales.SalesReturnLineRequest, len(req.Lines))
	for i, line := range req.Lines {
		requests[i] = sales.SalesReturnLineRequest{
			SaleLineID:     line.SaleLineID,
			ReturnQuantity: line.ReturnQuantity,
			Reason:         line.Reason,
		}
	}

	sr, err := sales.BuildSalesReturn(returnNumber, sale, requests)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		sr.SetRemark(req.Remark)
	}

	if err := s.returnRepo.Save(ctx, sr); err != nil {
		return nil, err
	}

	response := ToSalesReturnResponse(sr)
	return &response, nil
}

// GetByID retrieves a sales return by ID
func (s *SalesReturnService) GetByID(ctx context.Context, returnID uuid.UUID) (*SalesReturnResponse, error) {
	sr, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	response := ToSalesReturnResponse(sr)
	return &response, nil
}

// GetByReturnNumber retrieves a sales return by its number
func (s *SalesReturnService) GetByReturnNumber(ctx context.Context, returnNumber string) (*SalesReturnResponse, error) {
	sr, err := s.returnRepo.FindByReturnNumber(ctx, returnNumber)
	if err != nil {
		return nil, err
	}
	response := ToSalesReturnResponse(sr)
	return &response, nil
}

// ListBySale retrieves sales returns for a specific sale
func (s *SalesReturnService) ListBySale(ctx context.Context, saleID uuid.UUID) ([]SalesReturnListItemResponse, error) {
	returns, err := s.returnRepo.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return ToSalesReturnListItemResponses(returns), nil
}

// List retrieves sales returns with filtering and pagination
func (s *SalesReturnService) List(ctx context.Context, filter SalesReturnListFilter) ([]SalesReturnListItemResponse, int64, error) {
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

	if filter.SaleID != nil {
		domainFilter.Filters["sale_id"] = *filter.SaleID
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

	returns, err := s.returnRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.returnRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSalesReturnListItemResponses(returns), total, nil
}

// Approve approves a pending return
func (s *SalesReturnService) Approve(ctx context.Context, returnID uuid.UUID, req ApproveReturnRequest) (*SalesReturnResponse, error) {
	sr, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}

	expectedVersion := sr.Version
	if err := sr.Approve(req.ApproverID, req.Note); err != nil {
		return nil, err
	}

	if err := s.returnRepo.SaveWithLock(ctx, sr, expectedVersion); err != nil {
		return nil, err
	}

	response := ToSalesReturnResponse(sr)
	return &response, nil
}

// Reject rejects a pending return
func (s *SalesReturnService) Reject(ctx context.Context, returnID uuid.UUID, req RejectReturnRequest) (*SalesReturnResponse, error) {
	sr, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}

	expectedVersion := sr.Version
	if err := sr.Reject(req.Reason); err != nil {
		return nil, err
	}

	if err := s.returnRepo.SaveWithLock(ctx, sr, expectedVersion); err != nil {
		return nil, err
	}

	response := ToSalesReturnResponse(sr)
	return &response, nil
}

// Complete marks an approved return as completed
func (s *SalesReturnService) Complete(ctx context.Context, returnID uuid.UUID) (*SalesReturnResponse, error) {
	sr, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}

	expectedVersion := sr.Version
	if err := sr.Complete(); err != nil {
		return nil, err
	}

	if err := s.returnRepo.SaveWithLock(ctx, sr, expectedVersion); err != nil {
		return nil, err
	}

	response := ToSalesReturnResponse(sr)
	return &response, nil
}

// StatusSummary returns counts of returns per workflow state
func (s *SalesReturnService) StatusSummary(ctx context.Context) (*ReturnStatusSummaryResponse, error) {
	counts, err := s.returnRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ReturnStatusSummaryResponse{
		Pending:   counts[sales.ReturnStatusPending],
		Approved:  counts[sales.ReturnStatusApproved],
		Rejected:  counts[sales.ReturnStatusRejected],
		Completed: counts[sales.ReturnStatusCompleted],
	}
	summary.Total = summary.Pending + summary.Approved + summary.Rejected + summary.Completed
	return summary, nil
}
