package pricing

import (
	"context"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MakingChargeRepository defines persistence for the making-charge table
type MakingChargeRepository interface {
	shared.Repository[MakingCharge]
	FindByStage(ctx context.Context, stageID uuid.UUID) ([]MakingCharge, error)
	// ExistsByKey checks for a duplicate (stage, cost type, unit, amount) entry
	ExistsByKey(ctx context.Context, stageID, costTypeID, unitID uuid.UUID, costAmount decimal.Decimal) (bool, error)
	SaveWithLock(ctx context.Context, mc *MakingCharge, expectedVersion int) error
}
