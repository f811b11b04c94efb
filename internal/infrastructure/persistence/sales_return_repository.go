package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/aurum/backoffice/internal/domain/sales"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalesReturnRepository implements SalesReturnRepository using GORM
type GormSalesReturnRepository struct {
	db *gorm.DB
}

// NewGormSalesReturnRepository creates a new GormSalesReturnRepository
func NewGormSalesReturnRepository(db *gorm.DB) *GormSalesReturnRepository {
	return &GormSalesReturnRepository{db: db}
}

// FindByID finds a sales return by its ID
func (r *GormSalesReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SalesReturn, error) {
	var model models.SalesReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReturnNumber finds a sales return by its return number
func (r *GormSalesReturnRepository) FindByReturnNumber(ctx context.Context, returnNumber string) (*sales.SalesReturn, error) {
	var model models.SalesReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("return_number = ?", returnNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySaleID finds all returns recorded against a sale
func (r *GormSalesReturnRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]sales.SalesReturn, error) {
	var returnModels []models.SalesReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("sale_id = ?", saleID).
		Order("created_at DESC").
		Find(&returnModels).Error; err != nil {
		return nil, err
	}
	returns := make([]sales.SalesReturn, len(returnModels))
	for i, model := range returnModels {
		returns[i] = *model.ToDomain()
	}
	return returns, nil
}

// FindAll finds sales returns matching the filter
func (r *GormSalesReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SalesReturn, error) {
	var returnModels []models.SalesReturnModel

	query := r.db.WithContext(ctx).Model(&models.SalesReturnModel{})
	query = r.applyFilter(query, filter)

	if err := query.Preload("Lines").Find(&returnModels).Error; err != nil {
		return nil, err
	}
	returns := make([]sales.SalesReturn, len(returnModels))
	for i, model := range returnModels {
		returns[i] = *model.ToDomain()
	}
	return returns, nil
}

// Save creates or updates a sales return together with its lines
func (r *GormSalesReturnRepository) Save(ctx context.Context, sr *sales.SalesReturn) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.SalesReturnModelFromDomain(sr)

		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}

		return saveSalesReturnLines(tx, sr)
	})
}

// SaveWithLock updates the return only if the stored version still matches
// expectedVersion
func (r *GormSalesReturnRepository) SaveWithLock(ctx context.Context, sr *sales.SalesReturn, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SalesReturnModel{}).
			Where("id = ? AND version = ?", sr.ID, expectedVersion).
			Updates(map[string]interface{}{
				"refund_total":  sr.RefundTotal,
				"status":        sr.Status,
				"remark":        sr.Remark,
				"approved_by":   sr.ApprovedBy,
				"approval_note": sr.ApprovalNote,
				"approved_at":   sr.ApprovedAt,
				"rejected_at":   sr.RejectedAt,
				"completed_at":  sr.CompletedAt,
				"reject_reason": sr.RejectReason,
				"version":       sr.Version,
				"updated_at":    time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return lockFailure(tx, &models.SalesReturnModel{}, sr.ID)
		}

		return saveSalesReturnLines(tx, sr)
	})
}

// Delete deletes a sales return and its lines
func (r *GormSalesReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("return_id = ?", id).Delete(&models.SalesReturnLineModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.SalesReturnModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts sales returns matching the filter
func (r *GormSalesReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SalesReturnModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts sales returns grouped by workflow status
func (r *GormSalesReturnRepository) CountByStatus(ctx context.Context) (map[sales.ReturnStatus]int64, error) {
	var rows []struct {
		Status sales.ReturnStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.SalesReturnModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[sales.ReturnStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// GenerateReturnNumber generates a unique return number.
// Format: SRN-YYYY-NNNNN (e.g., SRN-2026-00001)
func (r *GormSalesReturnRepository) GenerateReturnNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, "sales_returns", "return_number", "SRN")
}

// saveSalesReturnLines replaces the stored lines with the aggregate's lines
func saveSalesReturnLines(tx *gorm.DB, sr *sales.SalesReturn) error {
	currentLineIDs := make([]uuid.UUID, len(sr.Lines))
	for i, line := range sr.Lines {
		currentLineIDs[i] = line.ID
	}

	if len(currentLineIDs) > 0 {
		if err := tx.Where("return_id = ? AND id NOT IN ?", sr.ID, currentLineIDs).
			Delete(&models.SalesReturnLineModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("return_id = ?", sr.ID).
			Delete(&models.SalesReturnLineModel{}).Error; err != nil {
			return err
		}
	}

	for i := range sr.Lines {
		sr.Lines[i].ReturnID = sr.ID
		lineModel := models.SalesReturnLineModelFromDomain(&sr.Lines[i])
		if err := tx.Save(lineModel).Error; err != nil {
			return err
		}
	}

	return nil
}

// applyFilter applies filter options to the query
func (r *GormSalesReturnRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, SalesReturnSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSalesReturnRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("return_number ILIKE ? OR sale_number ILIKE ? OR customer_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "sale_id":
			query = query.Where("sale_id = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

var _ sales.SalesReturnRepository = (*GormSalesReturnRepository)(nil)
