package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurum/backoffice/internal/domain/procurement"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseReturnRepository implements PurchaseReturnRepository using GORM
type GormPurchaseReturnRepository struct {
	db *gorm.DB
}

// NewGormPurchaseReturnRepository creates a new GormPurchaseReturnRepository
func NewGormPurchaseReturnRepository(db *gorm.DB) *GormPurchaseReturnRepository {
	return &GormPurchaseReturnRepository{db: db}
}

// FindByID finds a purchase return by its ID
func (r *GormPurchaseReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseReturn, error) {
	var model models.PurchaseReturnModel
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

// FindByReturnNumber finds a purchase return by its return number
func (r *GormPurchaseReturnRepository) FindByReturnNumber(ctx context.Context, returnNumber string) (*procurement.PurchaseReturn, error) {
	var model models.PurchaseReturnModel
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

// FindAll finds purchase returns matching the filter
func (r *GormPurchaseReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseReturn, error) {
	var returnModels []models.PurchaseReturnModel

	query := r.db.WithContext(ctx).Model(&models.PurchaseReturnModel{})
	query = r.applyFilter(query, filter)

	if err := query.Preload("Lines").Find(&returnModels).Error; err != nil {
		return nil, err
	}
	returns := make([]procurement.PurchaseReturn, len(returnModels))
	for i, model := range returnModels {
		returns[i] = *model.ToDomain()
	}
	return returns, nil
}

// Save creates or updates a purchase return together with its lines
func (r *GormPurchaseReturnRepository) Save(ctx context.Context, pr *procurement.PurchaseReturn) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.PurchaseReturnModelFromDomain(pr)

		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}

		return saveReturnLines(tx, pr)
	})
}

// SaveWithLock updates the return only if the stored version still matches
// expectedVersion
func (r *GormPurchaseReturnRepository) SaveWithLock(ctx context.Context, pr *procurement.PurchaseReturn, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PurchaseReturnModel{}).
			Where("id = ? AND version = ?", pr.ID, expectedVersion).
			Updates(map[string]interface{}{
				"refund_total":  pr.RefundTotal,
				"status":        pr.Status,
				"remark":        pr.Remark,
				"approved_by":   pr.ApprovedBy,
				"approval_note": pr.ApprovalNote,
				"approved_at":   pr.ApprovedAt,
				"rejected_at":   pr.RejectedAt,
				"completed_at":  pr.CompletedAt,
				"reject_reason": pr.RejectReason,
				"version":       pr.Version,
				"updated_at":    time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return lockFailure(tx, &models.PurchaseReturnModel{}, pr.ID)
		}

		return saveReturnLines(tx, pr)
	})
}

// CreateWithBalances inserts the return and applies the consumed balances
// in one transaction. Every balance update is guarded by the version the
// service captured before consuming, so a concurrent return against the
// same balance rolls the whole document back.
func (r *GormPurchaseReturnRepository) CreateWithBalances(ctx context.Context, pr *procurement.PurchaseReturn, balances []*procurement.OrderLineBalance, expectedVersions map[uuid.UUID]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.PurchaseReturnModelFromDomain(pr)
		if err := tx.Omit("Lines").Create(model).Error; err != nil {
			return err
		}

		for i := range pr.Lines {
			pr.Lines[i].ReturnID = pr.ID
			lineModel := models.PurchaseReturnLineModelFromDomain(&pr.Lines[i])
			if err := tx.Create(lineModel).Error; err != nil {
				return err
			}
		}

		for _, balance := range balances {
			expected, ok := expectedVersions[balance.ID]
			if !ok {
				return fmt.Errorf("missing expected version for balance %s", balance.ID)
			}
			if err := applyBalanceWithLock(tx, balance, expected); err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a purchase return and its lines
func (r *GormPurchaseReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("return_id = ?", id).Delete(&models.PurchaseReturnLineModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.PurchaseReturnModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts purchase returns matching the filter
func (r *GormPurchaseReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PurchaseReturnModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts purchase returns grouped by workflow status
func (r *GormPurchaseReturnRepository) CountByStatus(ctx context.Context) (map[procurement.ReturnStatus]int64, error) {
	var rows []struct {
		Status procurement.ReturnStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PurchaseReturnModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[procurement.ReturnStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// GenerateReturnNumber generates a unique return number.
// Format: PRN-YYYY-NNNNN (e.g., PRN-2026-00001)
func (r *GormPurchaseReturnRepository) GenerateReturnNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, "purchase_returns", "return_number", "PRN")
}

// saveReturnLines replaces the stored lines with the aggregate's lines
func saveReturnLines(tx *gorm.DB, pr *procurement.PurchaseReturn) error {
	currentLineIDs := make([]uuid.UUID, len(pr.Lines))
	for i, line := range pr.Lines {
		currentLineIDs[i] = line.ID
	}

	if len(currentLineIDs) > 0 {
		if err := tx.Where("return_id = ? AND id NOT IN ?", pr.ID, currentLineIDs).
			Delete(&models.PurchaseReturnLineModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("return_id = ?", pr.ID).
			Delete(&models.PurchaseReturnLineModel{}).Error; err != nil {
			return err
		}
	}

	for i := range pr.Lines {
		pr.Lines[i].ReturnID = pr.ID
		lineModel := models.PurchaseReturnLineModelFromDomain(&pr.Lines[i])
		if err := tx.Save(lineModel).Error; err != nil {
			return err
		}
	}

	return nil
}

// applyFilter applies filter options to the query
func (r *GormPurchaseReturnRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, PurchaseReturnSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPurchaseReturnRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("return_number ILIKE ? OR supplier_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
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

var _ procurement.PurchaseReturnRepository = (*GormPurchaseReturnRepository)(nil)
