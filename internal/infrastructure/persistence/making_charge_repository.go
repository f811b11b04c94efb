package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/aurum/backoffice/internal/domain/pricing"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormMakingChargeRepository implements MakingChargeRepository using GORM
type GormMakingChargeRepository struct {
	db *gorm.DB
}

// NewGormMakingChargeRepository creates a new GormMakingChargeRepository
func NewGormMakingChargeRepository(db *gorm.DB) *GormMakingChargeRepository {
	return &GormMakingChargeRepository{db: db}
}

// FindByID finds a making charge by its ID
func (r *GormMakingChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.MakingCharge, error) {
	var model models.MakingChargeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStage finds all making charges quoted for a stage
func (r *GormMakingChargeRepository) FindByStage(ctx context.Context, stageID uuid.UUID) ([]pricing.MakingCharge, error) {
	var chargeModels []models.MakingChargeModel
	if err := r.db.WithContext(ctx).
		Where("stage_id = ?", stageID).
		Order("created_at DESC").
		Find(&chargeModels).Error; err != nil {
		return nil, err
	}
	charges := make([]pricing.MakingCharge, len(chargeModels))
	for i, model := range chargeModels {
		charges[i] = *model.ToDomain()
	}
	return charges, nil
}

// FindAll finds making charges matching the filter
func (r *GormMakingChargeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pricing.MakingCharge, error) {
	var chargeModels []models.MakingChargeModel

	query := r.db.WithContext(ctx).Model(&models.MakingChargeModel{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&chargeModels).Error; err != nil {
		return nil, err
	}
	charges := make([]pricing.MakingCharge, len(chargeModels))
	for i, model := range chargeModels {
		charges[i] = *model.ToDomain()
	}
	return charges, nil
}

// ExistsByKey checks for a duplicate (stage, cost type, unit, amount) entry
func (r *GormMakingChargeRepository) ExistsByKey(ctx context.Context, stageID, costTypeID, unitID uuid.UUID, costAmount decimal.Decimal) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MakingChargeModel{}).
		Where("stage_id = ? AND cost_type_id = ? AND unit_id = ? AND cost_amount = ?",
			stageID, costTypeID, unitID, costAmount).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a making charge
func (r *GormMakingChargeRepository) Save(ctx context.Context, mc *pricing.MakingCharge) error {
	model := models.MakingChargeModelFromDomain(mc)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock updates the charge only if the stored version still matches
// expectedVersion
func (r *GormMakingChargeRepository) SaveWithLock(ctx context.Context, mc *pricing.MakingCharge, expectedVersion int) error {
	result := r.db.WithContext(ctx).Model(&models.MakingChargeModel{}).
		Where("id = ? AND version = ?", mc.ID, expectedVersion).
		Updates(map[string]interface{}{
			"cost_amount":       mc.CostAmount,
			"normalized_amount": mc.NormalizedAmount,
			"remark":            mc.Remark,
			"version":           mc.Version,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return lockFailure(r.db.WithContext(ctx), &models.MakingChargeModel{}, mc.ID)
	}
	return nil
}

// Delete deletes a making charge
func (r *GormMakingChargeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MakingChargeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts making charges matching the filter
func (r *GormMakingChargeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.MakingChargeModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormMakingChargeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, MakingChargeSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormMakingChargeRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("stage_name ILIKE ? OR cost_type ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "stage_id":
			query = query.Where("stage_id = ?", value)
		case "cost_type_id":
			query = query.Where("cost_type_id = ?", value)
		case "unit_id":
			query = query.Where("unit_id = ?", value)
		}
	}

	return query
}

var _ pricing.MakingChargeRepository = (*GormMakingChargeRepository)(nil)
