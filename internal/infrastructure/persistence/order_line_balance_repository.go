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

// GormOrderLineBalanceRepository implements OrderLineBalanceRepository using GORM
type GormOrderLineBalanceRepository struct {
	db *gorm.DB
}

// NewGormOrderLineBalanceRepository creates a new GormOrderLineBalanceRepository
func NewGormOrderLineBalanceRepository(db *gorm.DB) *GormOrderLineBalanceRepository {
	return &GormOrderLineBalanceRepository{db: db}
}

// FindByID finds a balance by its ID
func (r *GormOrderLineBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.OrderLineBalance, error) {
	var model models.OrderLineBalanceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs loads a set of balances keyed by ID. Missing IDs are simply
// absent from the map; the caller decides whether that is an error.
func (r *GormOrderLineBalanceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*procurement.OrderLineBalance, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*procurement.OrderLineBalance{}, nil
	}

	var balanceModels []models.OrderLineBalanceModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&balanceModels).Error; err != nil {
		return nil, err
	}

	balances := make(map[uuid.UUID]*procurement.OrderLineBalance, len(balanceModels))
	for i := range balanceModels {
		balances[balanceModels[i].ID] = balanceModels[i].ToDomain()
	}
	return balances, nil
}

// FindByOrderID finds all balances for a purchase order
func (r *GormOrderLineBalanceRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]procurement.OrderLineBalance, error) {
	var balanceModels []models.OrderLineBalanceModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&balanceModels).Error; err != nil {
		return nil, err
	}
	balances := make([]procurement.OrderLineBalance, len(balanceModels))
	for i, model := range balanceModels {
		balances[i] = *model.ToDomain()
	}
	return balances, nil
}

// FindByReceiptID finds all balances seeded from a goods receipt
func (r *GormOrderLineBalanceRepository) FindByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]procurement.OrderLineBalance, error) {
	var balanceModels []models.OrderLineBalanceModel
	if err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("created_at ASC").
		Find(&balanceModels).Error; err != nil {
		return nil, err
	}
	balances := make([]procurement.OrderLineBalance, len(balanceModels))
	for i, model := range balanceModels {
		balances[i] = *model.ToDomain()
	}
	return balances, nil
}

// Save creates or updates a balance
func (r *GormOrderLineBalanceRepository) Save(ctx context.Context, balance *procurement.OrderLineBalance) error {
	model := models.OrderLineBalanceModelFromDomain(balance)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock persists the balance only if the stored version matches
// expectedVersion, so two concurrent returns cannot both consume the same
// remainder.
func (r *GormOrderLineBalanceRepository) SaveWithLock(ctx context.Context, balance *procurement.OrderLineBalance, expectedVersion int) error {
	return applyBalanceWithLock(r.db.WithContext(ctx), balance, expectedVersion)
}

// applyBalanceWithLock runs the version-guarded balance update on the
// given DB handle. Shared with the purchase return repository so the same
// guard runs inside its transaction.
func applyBalanceWithLock(tx *gorm.DB, balance *procurement.OrderLineBalance, expectedVersion int) error {
	result := tx.Model(&models.OrderLineBalanceModel{}).
		Where("id = ? AND version = ?", balance.ID, expectedVersion).
		Updates(map[string]interface{}{
			"returned_quantity": balance.ReturnedQuantity,
			"returned_weight":   balance.ReturnedWeight,
			"version":           balance.Version,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return lockFailure(tx, &models.OrderLineBalanceModel{}, balance.ID)
	}
	return nil
}

var _ procurement.OrderLineBalanceRepository = (*GormOrderLineBalanceRepository)(nil)
