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

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
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

// FindBySaleNumber finds a sale by its sale number
func (r *GormSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("sale_number = ?", saleNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	var saleModels []models.SaleModel

	query := r.db.WithContext(ctx).Model(&models.SaleModel{})
	query = r.applyFilter(query, filter)

	if err := query.Preload("Lines").Find(&saleModels).Error; err != nil {
		return nil, err
	}
	result := make([]sales.Sale, len(saleModels))
	for i, model := range saleModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// Save creates or updates a sale together with its lines
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.SaleModelFromDomain(sale)

		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}

		return saveSaleLines(tx, sale)
	})
}

// SaveWithLock updates the sale only if the stored version still matches
// expectedVersion
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SaleModel{}).
			Where("id = ? AND version = ?", sale.ID, expectedVersion).
			Updates(map[string]interface{}{
				"customer_id":   sale.CustomerID,
				"customer_name": sale.CustomerName,
				"subtotal":      sale.Subtotal,
				"discount":      sale.Discount,
				"shipping_cost": sale.ShippingCost,
				"vat":           sale.VAT,
				"grand_total":   sale.GrandTotal,
				"status":        sale.Status,
				"remark":        sale.Remark,
				"completed_at":  sale.CompletedAt,
				"cancelled_at":  sale.CancelledAt,
				"cancel_reason": sale.CancelReason,
				"version":       sale.Version,
				"updated_at":    time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return lockFailure(tx, &models.SaleModel{}, sale.ID)
		}

		return saveSaleLines(tx, sale)
	})
}

// Delete deletes a sale and its lines
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&models.SaleLineModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.SaleModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SaleModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateSaleNumber generates a unique sale number.
// Format: SL-YYYY-NNNNN (e.g., SL-2026-00001)
func (r *GormSaleRepository) GenerateSaleNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, "sales", "sale_number", "SL")
}

// saveSaleLines replaces the stored lines with the aggregate's lines
func saveSaleLines(tx *gorm.DB, sale *sales.Sale) error {
	currentLineIDs := make([]uuid.UUID, len(sale.Lines))
	for i, line := range sale.Lines {
		currentLineIDs[i] = line.ID
	}

	if len(currentLineIDs) > 0 {
		if err := tx.Where("sale_id = ? AND id NOT IN ?", sale.ID, currentLineIDs).
			Delete(&models.SaleLineModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("sale_id = ?", sale.ID).
			Delete(&models.SaleLineModel{}).Error; err != nil {
			return err
		}
	}

	for i := range sale.Lines {
		sale.Lines[i].SaleID = sale.ID
		lineModel := models.SaleLineModelFromDomain(&sale.Lines[i])
		if err := tx.Save(lineModel).Error; err != nil {
			return err
		}
	}

	return nil
}

// applyFilter applies filter options to the query
func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, SaleSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("sale_number ILIKE ? OR customer_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
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

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
