package pricing

import (
	"context"
	"time"

	"github.com/aurum/backoffice/internal/domain/pricing"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== DTOs ====================

// CreateMakingChargeRequest represents a request to create a price table
// entry. The resolved display names are supplied by the caller and
// snapshotted verbatim.
type CreateMakingChargeRequest struct {
	StageID    uuid.UUID       `json:"stage_id" binding:"required"`
	StageName  string          `json:"stage_name" binding:"required,min=1,max=100"`
	CostTypeID uuid.UUID       `json:"cost_type_id" binding:"required"`
	CostType   string          `json:"cost_type" binding:"required,min=1,max=100"`
	UnitID     uuid.UUID       `json:"unit_id" binding:"required"`
	UnitName   string          `json:"unit_name" binding:"required,min=1,max=50"`
	CostAmount decimal.Decimal `json:"cost_amount" binding:"required"`
	Remark     string          `json:"remark"`
}

// UpdateMakingChargeRequest updates the quoted amount of an entry
type UpdateMakingChargeRequest struct {
	CostAmount decimal.Decimal `json:"cost_amount" binding:"required"`
	Remark     *string         `json:"remark"`
}

// MakingChargeListFilter represents filter options for the price table
type MakingChargeListFilter struct {
	Search     string     `form:"search"`
	StageID    *uuid.UUID `form:"stage_id"`
	CostTypeID *uuid.UUID `form:"cost_type_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MakingChargeResponse represents a price table entry in API responses
type MakingChargeResponse struct {
	ID               uuid.UUID       `json:"id"`
	StageID          uuid.UUID       `json:"stage_id"`
	StageName        string          `json:"stage_name"`
	CostTypeID       uuid.UUID       `json:"cost_type_id"`
	CostType         string          `json:"cost_type"`
	UnitID           uuid.UUID       `json:"unit_id"`
	UnitName         string          `json:"unit_name"`
	CostAmount       decimal.Decimal `json:"cost_amount"`
	NormalizedAmount decimal.Decimal `json:"normalized_amount"`
	Remark           string          `json:"remark,omitempty"`
	Version          int             `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToMakingChargeResponse converts a domain entry to a response
func ToMakingChargeResponse(mc *pricing.MakingCharge) MakingChargeResponse {
	return MakingChargeResponse{
		ID:               mc.ID,
		StageID:          mc.StageID,
		StageName:        mc.StageName,
		CostTypeID:       mc.CostTypeID,
		CostType:         mc.CostType,
		UnitID:           mc.UnitID,
		UnitName:         mc.UnitName,
		CostAmount:       mc.CostAmount,
		NormalizedAmount: mc.NormalizedAmount,
		Remark:           mc.Remark,
		Version:          mc.Version,
		CreatedAt:        mc.CreatedAt,
		UpdatedAt:        mc.UpdatedAt,
	}
}

// ToMakingChargeResponses converts domain entries to responses
func ToMakingChargeResponses(entries []pricing.MakingCharge) []MakingChargeResponse {
	items := make([]MakingChargeResponse, len(entries))
	for i := range entries {
		items[i] = ToMakingChargeResponse(&entries[i])
	}
	return items
}

// ==================== Service ====================

// MakingChargeService handles price table business operations
type MakingChargeService struct {
	chargeRepo pricing.MakingChargeRepository
}

// NewMakingChargeService creates a new MakingChargeService
func NewMakingChargeService(chargeRepo pricing.MakingChargeRepository) *MakingChargeService {
	return &MakingChargeService{chargeRepo: chargeRepo}
}

// Create creates a price table entry, rejecting exact duplicates
func (s *MakingChargeService) Create(ctx context.Context, req CreateMakingChargeRequest) (*MakingChargeResponse, error) {
	exists, err := s.chargeRepo.ExistsByKey(ctx, req.StageID, req.CostTypeID, req.UnitID, req.CostAmount)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Making charge entry already exists")
	}

	mc, err := pricing.NewMakingCharge(req.StageID, req.StageName, req.CostTypeID, req.CostType, req.UnitID, req.UnitName, req.CostAmount)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		mc.SetRemark(req.Remark)
	}

	if err := s.chargeRepo.Save(ctx, mc); err != nil {
		return nil, err
	}

	response := ToMakingChargeResponse(mc)
	return &response, nil
}

// GetByID retrieves a price table entry by ID
func (s *MakingChargeService) GetByID(ctx context.Context, chargeID uuid.UUID) (*MakingChargeResponse, error) {
	mc, err := s.chargeRepo.FindByID(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	response := ToMakingChargeResponse(mc)
	return &response, nil
}

// List retrieves price table entries with filtering and pagination
func (s *MakingChargeService) List(ctx context.Context, filter MakingChargeListFilter) ([]MakingChargeResponse, int64, error) {
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

	if filter.StageID != nil {
		domainFilter.Filters["stage_id"] = *filter.StageID
	}
	if filter.CostTypeID != nil {
		domainFilter.Filters["cost_type_id"] = *filter.CostTypeID
	}

	entries, err := s.chargeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.chargeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToMakingChargeResponses(entries), total, nil
}

// ListByStage retrieves all entries for one production stage
func (s *MakingChargeService) ListByStage(ctx context.Context, stageID uuid.UUID) ([]MakingChargeResponse, error) {
	entries, err := s.chargeRepo.FindByStage(ctx, stageID)
	if err != nil {
		return nil, err
	}
	return ToMakingChargeResponses(entries), nil
}

// Update replaces the quoted amount on an entry
func (s *MakingChargeService) Update(ctx context.Context, chargeID uuid.UUID, req UpdateMakingChargeRequest) (*MakingChargeResponse, error) {
	mc, err := s.chargeRepo.FindByID(ctx, chargeID)
	if err != nil {
		return nil, err
	}

	expectedVersion := mc.Version
	if err := mc.UpdateAmount(req.CostAmount); err != nil {
		return nil, err
	}
	if req.Remark != nil {
		mc.SetRemark(*req.Remark)
	}

	if err := s.chargeRepo.SaveWithLock(ctx, mc, expectedVersion); err != nil {
		return nil, err
	}

	response := ToMakingChargeResponse(mc)
	return &response, nil
}

// Delete removes a price table entry
func (s *MakingChargeService) Delete(ctx context.Context, chargeID uuid.UUID) error {
	if _, err := s.chargeRepo.FindByID(ctx, chargeID); err != nil {
		return err
	}
	return s.chargeRepo.Delete(ctx, chargeID)
}
