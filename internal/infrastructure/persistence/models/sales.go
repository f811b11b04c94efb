package models

import (
	"time"

	"github.com/aurum/backoffice/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	AggregateModel
	SaleNumber   string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID   *uuid.UUID       `gorm:"type:uuid;index"`
	CustomerName string           `gorm:"type:varchar(200)"`
	Lines        []SaleLineModel  `gorm:"foreignKey:SaleID;references:ID"`
	Subtotal     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Discount     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCost decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	VAT          decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status       sales.SaleStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Remark       string           `gorm:"type:text"`
	CompletedAt  *time.Time       `gorm:"index"`
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *sales.Sale {
	sale := &sales.Sale{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SaleNumber:        m.SaleNumber,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		Subtotal:          m.Subtotal,
		Discount:          m.Discount,
		ShippingCost:      m.ShippingCost,
		VAT:               m.VAT,
		GrandTotal:        m.GrandTotal,
		Status:            m.Status,
		Remark:            m.Remark,
		CompletedAt:       m.CompletedAt,
		CancelledAt:       m.CancelledAt,
		CancelReason:      m.CancelReason,
		Lines:             make([]sales.SaleLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		sale.Lines[i] = *line.ToDomain()
	}
	return sale
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.SaleNumber = s.SaleNumber
	m.CustomerID = s.CustomerID
	m.CustomerName = s.CustomerName
	m.Subtotal = s.Subtotal
	m.Discount = s.Discount
	m.ShippingCost = s.ShippingCost
	m.VAT = s.VAT
	m.GrandTotal = s.GrandTotal
	m.Status = s.Status
	m.Remark = s.Remark
	m.CompletedAt = s.CompletedAt
	m.CancelledAt = s.CancelledAt
	m.CancelReason = s.CancelReason
	m.Lines = make([]SaleLineModel, len(s.Lines))
	for i, line := range s.Lines {
		m.Lines[i] = *SaleLineModelFromDomain(&line)
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale entity.
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// SaleLineModel is the persistence model for the SaleLine entity.
type SaleLineModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName       string          `gorm:"type:varchar(200);not null"`
	ItemCode       string          `gorm:"type:varchar(50)"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PriceBeforeTax decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GSTRate        decimal.Decimal `gorm:"type:decimal(8,6);not null;default:0"`
	GSTAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	FinalTotal     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleLineModel) TableName() string {
	return "sale_lines"
}

// ToDomain converts the persistence model to a domain SaleLine entity.
func (m *SaleLineModel) ToDomain() *sales.SaleLine {
	return &sales.SaleLine{
		ID:             m.ID,
		SaleID:         m.SaleID,
		ItemID:         m.ItemID,
		ItemName:       m.ItemName,
		ItemCode:       m.ItemCode,
		Quantity:       m.Quantity,
		PriceBeforeTax: m.PriceBeforeTax,
		GSTRate:        m.GSTRate,
		GSTAmount:      m.GSTAmount,
		SellingTotal:   m.SellingTotal,
		FinalTotal:     m.FinalTotal,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// SaleLineModelFromDomain creates a new persistence model from a domain SaleLine entity.
func SaleLineModelFromDomain(l *sales.SaleLine) *SaleLineModel {
	return &SaleLineModel{
		ID:             l.ID,
		SaleID:         l.SaleID,
		ItemID:         l.ItemID,
		ItemName:       l.ItemName,
		ItemCode:       l.ItemCode,
		Quantity:       l.Quantity,
		PriceBeforeTax: l.PriceBeforeTax,
		GSTRate:        l.GSTRate,
		GSTAmount:      l.GSTAmount,
		SellingTotal:   l.SellingTotal,
		FinalTotal:     l.FinalTotal,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// SalesReturnModel is the persistence model for the SalesReturn aggregate root.
type SalesReturnModel struct {
	AggregateModel
	ReturnNumber string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	SaleID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	SaleNumber   string                 `gorm:"type:varchar(50);not null"`
	CustomerID   *uuid.UUID             `gorm:"type:uuid;index"`
	CustomerName string                 `gorm:"type:varchar(200)"`
	Lines        []SalesReturnLineModel `gorm:"foreignKey:ReturnID;references:ID"`
	RefundTotal  decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Status       sales.ReturnStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Remark       string                 `gorm:"type:text"`
	ApprovedBy   *uuid.UUID             `gorm:"type:uuid"`
	ApprovalNote string                 `gorm:"type:varchar(500)"`
	ApprovedAt   *time.Time
	RejectedAt   *time.Time
	CompletedAt  *time.Time
	RejectReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SalesReturnModel) TableName() string {
	return "sales_returns"
}

// ToDomain converts the persistence model to a domain SalesReturn entity.
func (m *SalesReturnModel) ToDomain() *sales.SalesReturn {
	sr := &sales.SalesReturn{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ReturnNumber:      m.ReturnNumber,
		SaleID:            m.SaleID,
		SaleNumber:        m.SaleNumber,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		RefundTotal:       m.RefundTotal,
		Status:            m.Status,
		Remark:            m.Remark,
		ApprovedBy:        m.ApprovedBy,
		ApprovalNote:      m.ApprovalNote,
		ApprovedAt:        m.ApprovedAt,
		RejectedAt:        m.RejectedAt,
		CompletedAt:       m.CompletedAt,
		RejectReason:      m.RejectReason,
		Lines:             make([]sales.SalesReturnLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		sr.Lines[i] = *line.ToDomain()
	}
	return sr
}

// FromDomain populates the persistence model from a domain SalesReturn entity.
func (m *SalesReturnModel) FromDomain(r *sales.SalesReturn) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ReturnNumber = r.ReturnNumber
	m.SaleID = r.SaleID
	m.SaleNumber = r.SaleNumber
	m.CustomerID = r.CustomerID
	m.CustomerName = r.CustomerName
	m.RefundTotal = r.RefundTotal
	m.Status = r.Status
	m.Remark = r.Remark
	m.ApprovedBy = r.ApprovedBy
	m.ApprovalNote = r.ApprovalNote
	m.ApprovedAt = r.ApprovedAt
	m.RejectedAt = r.RejectedAt
	m.CompletedAt = r.CompletedAt
	m.RejectReason = r.RejectReason
	m.Lines = make([]SalesReturnLineModel, len(r.Lines))
	for i, line := range r.Lines {
		m.Lines[i] = *SalesReturnLineModelFromDomain(&line)
	}
}

// SalesReturnModelFromDomain creates a new persistence model from a domain SalesReturn entity.
func SalesReturnModelFromDomain(r *sales.SalesReturn) *SalesReturnModel {
	m := &SalesReturnModel{}
	m.FromDomain(r)
	return m
}

// SalesReturnLineModel is the persistence model for the SalesReturnLine entity.
type SalesReturnLineModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleLineID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	OriginalQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReturnQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	FinalTotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RefundAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason           string          `gorm:"type:varchar(500)"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesReturnLineModel) TableName() string {
	return "sales_return_lines"
}

// ToDomain converts the persistence model to a domain SalesReturnLine entity.
func (m *SalesReturnLineModel) ToDomain() *sales.SalesReturnLine {
	return &sales.SalesReturnLine{
		ID:               m.ID,
		ReturnID:         m.ReturnID,
		SaleLineID:       m.SaleLineID,
		ItemID:           m.ItemID,
		ItemName:         m.ItemName,
		OriginalQuantity: m.OriginalQuantity,
		ReturnQuantity:   m.ReturnQuantity,
		FinalTotal:       m.FinalTotal,
		RefundAmount:     m.RefundAmount,
		Reason:           m.Reason,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// SalesReturnLineModelFromDomain creates a new persistence model from a domain SalesReturnLine entity.
func SalesReturnLineModelFromDomain(l *sales.SalesReturnLine) *SalesReturnLineModel {
	return &SalesReturnLineModel{
		ID:               l.ID,
		ReturnID:         l.ReturnID,
		SaleLineID:       l.SaleLineID,
		ItemID:           l.ItemID,
		ItemName:         l.ItemName,
		OriginalQuantity: l.OriginalQuantity,
		ReturnQuantity:   l.ReturnQuantity,
		FinalTotal:       l.FinalTotal,
		RefundAmount:     l.RefundAmount,
		Reason:           l.Reason,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}
