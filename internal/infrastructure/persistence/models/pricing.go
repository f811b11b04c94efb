package models

import (
	"time"

	"github.com/aurum/backoffice/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MakingChargeModel is the persistence model for the MakingCharge aggregate root.
type MakingChargeModel struct {
	AggregateModel
	StageID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	StageName        string          `gorm:"type:varchar(200);not null"`
	CostTypeID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CostType         string          `gorm:"type:varchar(200);not null"`
	UnitID           uuid.UUID       `gorm:"type:uuid;not null"`
	UnitName         string          `gorm:"type:varchar(50);not null"`
	CostAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NormalizedAmount decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	Remark           string          `gorm:"type:varchar(500)"`
	EffectiveFrom    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MakingChargeModel) TableName() string {
	return "making_charges"
}

// ToDomain converts the persistence model to a domain MakingCharge entity.
func (m *MakingChargeModel) ToDomain() *pricing.MakingCharge {
	return &pricing.MakingCharge{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		StageID:           m.StageID,
		StageName:         m.StageName,
		CostTypeID:        m.CostTypeID,
		CostType:          m.CostType,
		UnitID:            m.UnitID,
		UnitName:          m.UnitName,
		CostAmount:        m.CostAmount,
		NormalizedAmount:  m.NormalizedAmount,
		Remark:            m.Remark,
		EffectiveFrom:     m.EffectiveFrom,
	}
}

// FromDomain populates the persistence model from a domain MakingCharge entity.
func (m *MakingChargeModel) FromDomain(mc *pricing.MakingCharge) {
	m.FromDomainAggregateRoot(mc.BaseAggregateRoot)
	m.StageID = mc.StageID
	m.StageName = mc.StageName
	m.CostTypeID = mc.CostTypeID
	m.CostType = mc.CostType
	m.UnitID = mc.UnitID
	m.UnitName = mc.UnitName
	m.CostAmount = mc.CostAmount
	m.NormalizedAmount = mc.NormalizedAmount
	m.Remark = mc.Remark
	m.EffectiveFrom = mc.EffectiveFrom
}

// MakingChargeModelFromDomain creates a new persistence model from a domain MakingCharge entity.
func MakingChargeModelFromDomain(mc *pricing.MakingCharge) *MakingChargeModel {
	m := &MakingChargeModel{}
	m.FromDomain(mc)
	return m
}
