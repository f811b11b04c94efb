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

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by its ID
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
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

// FindByOrderNumber finds a purchase order by its order number
func (r *GormPurchaseOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*procurement.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("order_number = ?", orderNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orderModels []models.PurchaseOrderModel

	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{})
	query = r.applyFilter(query, filter)

	if err := query.Preload("Lines").Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]procurement.PurchaseOrder, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Save creates or updates a purchase order together with its lines
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.PurchaseOrderModelFromDomain(order)

		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}

		return saveOrderLines(tx, order)
	})
}

// SaveWithLock updates the order only if the stored version still matches
// expectedVersion. The aggregate carries the already incremented version.
func (r *GormPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PurchaseOrderModel{}).
			Where("id = ? AND version = ?", order.ID, expectedVersion).
			Updates(map[string]interface{}{
				"supplier_id":   order.SupplierID,
				"supplier_name": order.SupplierName,
				"branch_id":     order.BranchID,
				"total_cost":    order.TotalCost,
				"status":        order.Status,
				"remark":        order.Remark,
				"cancelled_at":  order.CancelledAt,
				"cancel_reason": order.CancelReason,
				"version":       order.Version,
				"updated_at":    time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return lockFailure(tx, &models.PurchaseOrderModel{}, order.ID)
		}

		return saveOrderLines(tx, order)
	})
}

// Delete deletes a purchase order and its lines
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.PurchaseOrderLineModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.PurchaseOrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts purchase orders matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateOrderNumber generates a unique order number.
// Format: PO-YYYY-NNNNN (e.g., PO-2026-00001)
func (r *GormPurchaseOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, "purchase_orders", "order_number", "PO")
}

// saveOrderLines replaces the stored lines with the aggregate's lines
func saveOrderLines(tx *gorm.DB, order *procurement.PurchaseOrder) error {
	currentLineIDs := make([]uuid.UUID, len(order.Lines))
	for i, line := range order.Lines {
		currentLineIDs[i] = line.ID
	}

	if len(currentLineIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", order.ID, currentLineIDs).
			Delete(&models.PurchaseOrderLineModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&models.PurchaseOrderLineModel{}).Error; err != nil {
			return err
		}
	}

	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
		lineModel := models.PurchaseOrderLineModelFromDomain(&order.Lines[i])
		if err := tx.Save(lineModel).Error; err != nil {
			return err
		}
	}

	return nil
}

// applyFilter applies filter options to the query
func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, PurchaseOrderSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPurchaseOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR supplier_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
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

// lockFailure distinguishes a stale version from a missing row
func lockFailure(tx *gorm.DB, model interface{}, id uuid.UUID) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrConcurrencyConflict
}

var _ procurement.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
