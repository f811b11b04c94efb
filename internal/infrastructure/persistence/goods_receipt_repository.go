package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/aurum/backoffice/internal/domain/procurement"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormGoodsReceiptRepository implements GoodsReceiptRepository using GORM
type GormGoodsReceiptRepository struct {
	db *gorm.DB
}

// NewGormGoodsReceiptRepository creates a new GormGoodsReceiptRepository
func NewGormGoodsReceiptRepository(db *gorm.DB) *GormGoodsReceiptRepository {
	return &GormGoodsReceiptRepository{db: db}
}

// FindByID finds a goods receipt by its ID
func (r *GormGoodsReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.GoodsReceipt, error) {
	var model models.GoodsReceiptModel
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

// FindByReceiptNumber finds a goods receipt by its receipt number
func (r *GormGoodsReceiptRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*procurement.GoodsReceipt, error) {
	var model models.GoodsReceiptModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("receipt_number = ?", receiptNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderID finds all receipts recorded against a purchase order
func (r *GormGoodsReceiptRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]procurement.GoodsReceipt, error) {
	var receiptModels []models.GoodsReceiptModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&receiptModels).Error; err != nil {
		return nil, err
	}
	receipts := make([]procurement.GoodsReceipt, len(receiptModels))
	for i, model := range receiptModels {
		receipts[i] = *model.ToDomain()
	}
	return receipts, nil
}

// FindAll finds goods receipts matching the filter
func (r *GormGoodsReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.GoodsReceipt, error) {
	var receiptModels []models.GoodsReceiptModel

	query := r.db.WithContext(ctx).Model(&models.GoodsReceiptModel{})
	query = r.applyFilter(query, filter)

	if err := query.Preload("Lines").Find(&receiptModels).Error; err != nil {
		return nil, err
	}
	receipts := make([]procurement.GoodsReceipt, len(receiptModels))
	for i, model := range receiptModels {
		receipts[i] = *model.ToDomain()
	}
	return receipts, nil
}

// Save creates or updates a goods receipt together with its lines
func (r *GormGoodsReceiptRepository) Save(ctx context.Context, receipt *procurement.GoodsReceipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.GoodsReceiptModelFromDomain(receipt)

		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}

		return saveReceiptLines(tx, receipt)
	})
}

// SaveWithLock updates the receipt only if the stored version still matches
// expectedVersion
func (r *GormGoodsReceiptRepository) SaveWithLock(ctx context.Context, receipt *procurement.GoodsReceipt, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.GoodsReceiptModel{}).
			Where("id = ? AND version = ?", receipt.ID, expectedVersion).
			Updates(map[string]interface{}{
				"total_cost":   receipt.TotalCost,
				"status":       receipt.Status,
				"remark":       receipt.Remark,
				"submitted_at": receipt.SubmittedAt,
				"voided_at":    receipt.VoidedAt,
				"void_reason":  receipt.VoidReason,
				"version":      receipt.Version,
				"updated_at":   time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return lockFailure(tx, &models.GoodsReceiptModel{}, receipt.ID)
		}

		return saveReceiptLines(tx, receipt)
	})
}

// Delete deletes a goods receipt and its lines
func (r *GormGoodsReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("receipt_id = ?", id).Delete(&models.GoodsReceiptLineModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.GoodsReceiptModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts goods receipts matching the filter
func (r *GormGoodsReceiptRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.GoodsReceiptModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateReceiptNumber generates a unique receipt number.
// Format: GRN-YYYY-NNNNN (e.g., GRN-2026-00001)
func (r *GormGoodsReceiptRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, "goods_receipts", "receipt_number", "GRN")
}

// saveReceiptLines replaces the stored lines with the aggregate's lines
func saveReceiptLines(tx *gorm.DB, receipt *procurement.GoodsReceipt) error {
	currentLineIDs := make([]uuid.UUID, len(receipt.Lines))
	for i, line := range receipt.Lines {
		currentLineIDs[i] = line.ID
	}

	if len(currentLineIDs) > 0 {
		if err := tx.Where("receipt_id = ? AND id NOT IN ?", receipt.ID, currentLineIDs).
			Delete(&models.GoodsReceiptLineModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("receipt_id = ?", receipt.ID).
			Delete(&models.GoodsReceiptLineModel{}).Error; err != nil {
			return err
		}
	}

	for i := range receipt.Lines {
		receipt.Lines[i].ReceiptID = receipt.ID
		lineModel := models.GoodsReceiptLineModelFromDomain(&receipt.Lines[i])
		if err := tx.Save(lineModel).Error; err != nil {
			return err
		}
	}

	return nil
}

// applyFilter applies filter options to the query
func (r *GormGoodsReceiptRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, GoodsReceiptSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormGoodsReceiptRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("receipt_number ILIKE ? OR order_number ILIKE ? OR supplier_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
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

var _ procurement.GoodsReceiptRepository = (*GormGoodsReceiptRepository)(nil)
