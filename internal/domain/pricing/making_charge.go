// Package pricing holds the making-charge price table: per stage and
// cost type, what a workshop charges to work a piece, normalized to a
// per-piece or per-gram amount regardless of the quoted unit.
package pricing

import (
	"time"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quoted units with a normalization rule. Unknown units pass through
// unchanged rather than failing, so new units can be quoted before the
// table learns about them.
const (
	UnitDozen   = "dozen"
	UnitTenGram = "ten-gram"
	UnitGram    = "gram"
	UnitPiece   = "piece"
)

// NormalizeCostAmount converts a quoted cost amount to the per-unit
// amount: dozen quotes divide by 12, ten-gram quotes divide by 10,
// everything else is already per unit.
func NormalizeCostAmount(unitName string, costAmount decimal.Decimal) decimal.Decimal {
	switch unitName {
	case UnitDozen:
		return costAmount.Div(decimal.NewFromInt(12))
	case UnitTenGram:
		return costAmount.Div(decimal.NewFromInt(10))
	default:
		return costAmount
	}
}

// MakingCharge is one row of the making-charge price table. Stage, cost
// type and unit names are snapshotted as text at creation time so later
// renames of the referenced records never rewrite quoted history.
type MakingCharge struct {
	shared.BaseAggregateRoot
	StageID          uuid.UUID
	StageName        string
	CostTypeID       uuid.UUID
	CostType         string
	UnitID           uuid.UUID
	UnitName         string
	CostAmount       decimal.Decimal
	NormalizedAmount decimal.Decimal
	Remark           string
	EffectiveFrom    time.Time
}

// NewMakingCharge creates a making charge entry with resolved text
// snapshots supplied by the caller
func NewMakingCharge(stageID uuid.UUID, stageName string, costTypeID uuid.UUID, costType string, unitID uuid.UUID, unitName string, costAmount decimal.Decimal) (*MakingCharge, error) {
	if stageID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAGE", "Stage ID cannot be empty")
	}
	if stageName == "" {
		return nil, shared.NewDomainError("INVALID_STAGE", "Stage name cannot be empty")
	}
	if costTypeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COST_TYPE", "Cost type ID cannot be empty")
	}
	if costType == "" {
		return nil, shared.NewDomainError("INVALID_COST_TYPE", "Cost type name cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if unitName == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit name cannot be empty")
	}
	if costAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Cost amount cannot be negative")
	}

	return &MakingCharge{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StageID:           stageID,
		StageName:         stageName,
		CostTypeID:        costTypeID,
		CostType:          costType,
		UnitID:            unitID,
		UnitName:          unitName,
		CostAmount:        costAmount,
		NormalizedAmount:  NormalizeCostAmount(unitName, costAmount),
		EffectiveFrom:     time.Now(),
	}, nil
}

// UpdateAmount replaces the quoted amount and re-normalizes
func (m *MakingCharge) UpdateAmount(costAmount decimal.Decimal) error {
	if costAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Cost amount cannot be negative")
	}

	m.CostAmount = costAmount
	m.NormalizedAmount = NormalizeCostAmount(m.UnitName, costAmount)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// SetRemark sets the entry remark
func (m *MakingCharge) SetRemark(remark string) {
	m.Remark = remark
	m.UpdatedAt = time.Now()
}

// SameKey reports whether another entry quotes the same
// (stage, cost type, unit, amount) tuple. Used for duplicate detection.
func (m *MakingCharge) SameKey(other *MakingCharge) bool {
	return m.StageID == other.StageID &&
		m.CostTypeID == other.CostTypeID &&
		m.UnitID == other.UnitID &&
		m.CostAmount.Equal(other.CostAmount)
}
