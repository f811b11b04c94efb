package procurement

import (
	"context"

	"github.com/aurum/backoffice/internal/domain/procurement"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseReturnService handles purchase return business operations.
// Creation is validate-all-then-commit: the whole request is checked
// against the balance ledger before anything is persisted, and the
// return plus the consumed balances are written in one transaction.
type PurchaseReturnService struct {
	returnRepo  procurement.PurchaseReturnRepository
	orderRepo   procurement.PurchaseOrderRepository
	balanceRepo procurement.OrderLineBalanceRepository
}

// NewPurchaseReturnService creates a new PurchaseReturnService
func NewPurchaseReturnService(
	returnRepo procurement.PurchaseReturnRepository,
	orderRepo procurement.PurchaseOrderRepository,
	balanceRepo procurement.OrderLineBalanceRepository,
) *PurchaseReturnService {
	return &PurchaseReturnService{
		returnRepo:  returnRepo,
		orderRepo:   orderRepo,
		balanceRepo: balanceRepo,
	}
}

// Create validates and creates a purchase return, consuming the
// returnable balances transactionally
func (s *PurchaseReturnService) Create(ctx context.Context, req CreatePurchaseReturnRequest) (*PurchaseReturnResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	balanceIDs := make([]uuid.UUID, len(req.Lines))
	for i, line := range req.Lines {
		balanceIDs[i] = line.BalanceID
	}
	balances, err := s.balanceRepo.FindByIDs(ctx, balanceIDs)
	if err != nil {
		return nil, err
	}

	// Record the versions we validated against. The repository re-checks
	// them at commit so a concurrent return cannot double-spend a balance.
	expectedVersions := make(map[uuid.UUID]int, len(balances))
	for id, b := range balances {
		if b.OrderID != order.ID {
			return nil, shared.NewDomainError("BALANCE_NOT_FOUND", "Balance does not belong to the referenced order")
		}
		expectedVersions[id] = b.Version
	}

	returnNumber, err := s.returnRepo.GenerateReturnNumber(ctx)
	if err != nil {
		return nil, err
	}

	requests := make([]procurement.PurchaseReturnLineRequest, len(req.Lines))
	for i, line := range req.Lines {
		requests[i] = procurement.PurchaseReturnLineRequest{
			BalanceID:      line.BalanceID,
			ReturnQuantity: line.ReturnQuantity,
			ReturnWeight:   line.ReturnWeight,
			Reason:         line.Reason,
		}
	}

	pr, err := procurement.BuildPurchaseReturn(returnNumber, order.ID, order.SupplierID, order.SupplierName, requests, balances)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		pr.SetRemark(req.Remark)
	}

	consumed := make([]*procurement.OrderLineBalance, 0, len(pr.Lines))
	for _, line := range pr.Lines {
		balance := balances[line.BalanceID]
		if err := balance.Consume(line.ReturnQuantity, line.ReturnWeight); err != nil {
			return nil, err
		}
		consumed = append(consumed, balance)
	}

	if err := s.returnRepo.CreateWithBalances(ctx, pr, consumed, expectedVersions); err != nil {
		return nil, err
	}

	response := ToPurchaseReturnResponse(pr)
	return &response, nil
}

// GetByID retrieves a purchase return by ID
func (s *PurchaseReturnService) GetByID(ctx context.Context, returnID uuid.UUID) (*PurchaseReturnResponse, error) {
	pr, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseReturnResponse(pr)
	return &response, nil
}

// GetByReturnNumber retrieves a purchase return by its number
func (s *PurchaseReturnService) GetByReturnNumber(ctx context.Context, returnNumber string) (*PurchaseReturnResponse, error) {
	pr, err := s.returnRepo.FindByReturnNumber(ctx, returnNumber)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseReturnResponse(pr)
	return &response, nil
}

// List retrieves purchase returns with filtering and pagination
func (s *PurchaseReturnService) List(ctx context.Context, filter PurchaseReturnListFilter) ([]PurchaseReturnListItemResponse, int64, error) {
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

	returns, err := s.returnRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.returnRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPurchaseReturnListItemResponses(returns), total, nil
}

// Approve approves a pending return
func (s *PurchaseReturnService) Approve(ctx context.Context, returnID uuid.UUID, req ApproveReturnRequest) (*PurchaseReturnResponse, error) {
	pr, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}

	expectedVersion := pr.Version
	if err := pr.Approve(req.ApproverID, req.Note); err != nil {
		return nil, err
	}

	if err := s.returnRepo.SaveWithLock(ctx, pr, expectedVersion); err != nil {
		return nil, err
	}

	response := ToPurchaseReturnResponse(pr)
	return &response, nil
}

// Reject rejects a pending return and restores the consumed balances
func (s *PurchaseReturnService) Reject(ctx context.Context, returnID uuid.UUID, req RejectReturnRequest) (*PurchaseReturnResponse, error) {
	pr, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}

	expectedVersion := pr.Version
	if err := pr.Reject(req.Reason); err != nil {
		return nil, err
	}

	if err := s.returnRepo.SaveWithLock(ctx, pr, expectedVersion); err != nil {
		return nil, err
	}

	// Credit the ledger back so the goods can be returned again later
	for _, line := range pr.Lines {
		balance, err := s.balanceRepo.FindByID(ctx, line.BalanceID)
		if err != nil {
			return nil, err
		}
		balanceVersion := balance.Version
		if err := balance.Restore(line.ReturnQuantity, line.ReturnWeight); err != nil {
			return nil, err
		}
		if err := s.balanceRepo.SaveWithLock(ctx, balance, balanceVersion); err != nil {
			return nil, err
		}
	}

	response := ToPurchaseReturnResponse(pr)
	return &response, nil
}

// Complete marks an approved return as completed
func (s *PurchaseReturnService) Complete(ctx context.Context, returnID uuid.UUID) (*PurchaseReturnResponse, error) {
	pr, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}

	expectedVersion := pr.Version
	if err := pr.Complete(); err != nil {
		return nil, err
	}

	if err := s.returnRepo.SaveWithLock(ctx, pr, expectedVersion); err != nil {
		return nil, err
	}

	response := ToPurchaseReturnResponse(pr)
	return &response, nil
}

// StatusSummary returns counts of returns per workflow state
func (s *PurchaseReturnService) StatusSummary(ctx context.Context) (*ReturnStatusSummaryResponse, error) {
	counts, err := s.returnRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ReturnStatusSummaryResponse{
		Pending:   counts[procurement.ReturnStatusPending],
		Approved:  counts[procurement.ReturnStatusApproved],
		Rejected:  counts[procurement.ReturnStatusRejected],
		Completed: counts[procurement.ReturnStatusCompleted],
	}
	summary.Total = summary.Pending + summary.Approved + summary.Rejected + summary.Completed
	return summary, nil
}
