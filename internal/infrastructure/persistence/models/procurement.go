package models

import (
	"time"

	"github.com/aurum/backoffice/internal/domain/procurement"
	"github.com/aurum/backoffice/internal/domain/shared/costing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root.
type PurchaseOrderModel struct {
	AggregateModel
	OrderNumber  string                          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID   uuid.UUID                       `gorm:"type:uuid;not null;index"`
	SupplierName string                          `gorm:"type:varchar(200);not null"`
	BranchID     *uuid.UUID                      `gorm:"type:uuid;index"`
	Lines        []PurchaseOrderLineModel        `gorm:"foreignKey:OrderID;references:ID"`
	TotalCost    decimal.Decimal                 `gorm:"type:decimal(18,4);not null;default:0"`
	Status       procurement.PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'open'"`
	Remark       string                          `gorm:"type:text"`
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) ToDomain() *procurement.PurchaseOrder {
	order := &procurement.PurchaseOrder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		SupplierID:        m.SupplierID,
		SupplierName:      m.SupplierName,
		BranchID:          m.BranchID,
		TotalCost:         m.TotalCost,
		Status:            m.Status,
		Remark:            m.Remark,
		CancelledAt:       m.CancelledAt,
		CancelReason:      m.CancelReason,
		Lines:             make([]procurement.PurchaseOrderLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		order.Lines[i] = *line.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) FromDomain(o *procurement.PurchaseOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.SupplierID = o.SupplierID
	m.SupplierName = o.SupplierName
	m.BranchID = o.BranchID
	m.TotalCost = o.TotalCost
	m.Status = o.Status
	m.Remark = o.Remark
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
	m.Lines = make([]PurchaseOrderLineModel, len(o.Lines))
	for i, line := range o.Lines {
		m.Lines[i] = *PurchaseOrderLineModelFromDomain(&line)
	}
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder entity.
func PurchaseOrderModelFromDomain(o *procurement.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(o)
	return m
}

// PurchaseOrderLineModel is the persistence model for the PurchaseOrderLine entity.
type PurchaseOrderLineModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName        string          `gorm:"type:varchar(200);not null"`
	ItemCode        string          `gorm:"type:varchar(50)"`
	TrackBy         costing.TrackBy `gorm:"type:varchar(10);not null"`
	OrderedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OrderedWeight   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit            string          `gorm:"type:varchar(20);not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Remark          string          `gorm:"type:varchar(500)"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLineModel) TableName() string {
	return "purchase_order_lines"
}

// ToDomain converts the persistence model to a domain PurchaseOrderLine entity.
func (m *PurchaseOrderLineModel) ToDomain() *procurement.PurchaseOrderLine {
	return &procurement.PurchaseOrderLine{
		ID:              m.ID,
		OrderID:         m.OrderID,
		ItemID:          m.ItemID,
		ItemName:        m.ItemName,
		ItemCode:        m.ItemCode,
		TrackBy:         m.TrackBy,
		OrderedQuantity: m.OrderedQuantity,
		OrderedWeight:   m.OrderedWeight,
		Unit:            m.Unit,
		UnitCost:        m.UnitCost,
		LineTotal:       m.LineTotal,
		Remark:          m.Remark,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// PurchaseOrderLineModelFromDomain creates a new persistence model from a domain PurchaseOrderLine entity.
func PurchaseOrderLineModelFromDomain(l *procurement.PurchaseOrderLine) *PurchaseOrderLineModel {
	return &PurchaseOrderLineModel{
		ID:              l.ID,
		OrderID:         l.OrderID,
		ItemID:          l.ItemID,
		ItemName:        l.ItemName,
		ItemCode:        l.ItemCode,
		TrackBy:         l.TrackBy,
		OrderedQuantity: l.OrderedQuantity,
		OrderedWeight:   l.OrderedWeight,
		Unit:            l.Unit,
		UnitCost:        l.UnitCost,
		LineTotal:       l.LineTotal,
		Remark:          l.Remark,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// GoodsReceiptModel is the persistence model for the GoodsReceipt aggregate root.
type GoodsReceiptModel struct {
	AggregateModel
	ReceiptNumber string                         `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID       uuid.UUID                      `gorm:"type:uuid;not null;index"`
	OrderNumber   string                         `gorm:"type:varchar(50);not null"`
	SupplierID    uuid.UUID                      `gorm:"type:uuid;not null;index"`
	SupplierName  string                         `gorm:"type:varchar(200);not null"`
	Lines         []GoodsReceiptLineModel        `gorm:"foreignKey:ReceiptID;references:ID"`
	TotalCost     decimal.Decimal                `gorm:"type:decimal(18,4);not null;default:0"`
	Status        procurement.GoodsReceiptStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Remark        string                         `gorm:"type:text"`
	SubmittedAt   *time.Time                     `gorm:"index"`
	VoidedAt      *time.Time
	VoidReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (GoodsReceiptModel) TableName() string {
	return "goods_receipts"
}

// ToDomain converts the persistence model to a domain GoodsReceipt entity.
func (m *GoodsReceiptModel) ToDomain() *procurement.GoodsReceipt {
	receipt := &procurement.GoodsReceipt{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ReceiptNumber:     m.ReceiptNumber,
		OrderID:           m.OrderID,
		OrderNumber:       m.OrderNumber,
		SupplierID:        m.SupplierID,
		SupplierName:      m.SupplierName,
		TotalCost:         m.TotalCost,
		Status:            m.Status,
		Remark:            m.Remark,
		SubmittedAt:       m.SubmittedAt,
		VoidedAt:          m.VoidedAt,
		VoidReason:        m.VoidReason,
		Lines:             make([]procurement.GoodsReceiptLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		receipt.Lines[i] = *line.ToDomain()
	}
	return receipt
}

// FromDomain populates the persistence model from a domain GoodsReceipt entity.
func (m *GoodsReceiptModel) FromDomain(r *procurement.GoodsReceipt) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ReceiptNumber = r.ReceiptNumber
	m.OrderID = r.OrderID
	m.OrderNumber = r.OrderNumber
	m.SupplierID = r.SupplierID
	m.SupplierName = r.SupplierName
	m.TotalCost = r.TotalCost
	m.Status = r.Status
	m.Remark = r.Remark
	m.SubmittedAt = r.SubmittedAt
	m.VoidedAt = r.VoidedAt
	m.VoidReason = r.VoidReason
	m.Lines = make([]GoodsReceiptLineModel, len(r.Lines))
	for i, line := range r.Lines {
		m.Lines[i] = *GoodsReceiptLineModelFromDomain(&line)
	}
}

// GoodsReceiptModelFromDomain creates a new persistence model from a domain GoodsReceipt entity.
func GoodsReceiptModelFromDomain(r *procurement.GoodsReceipt) *GoodsReceiptModel {
	m := &GoodsReceiptModel{}
	m.FromDomain(r)
	return m
}

// GoodsReceiptLineModel is the persistence model for the GoodsReceiptLine entity.
type GoodsReceiptLineModel struct {
	ID               uuid.UUID                     `gorm:"type:uuid;primary_key"`
	ReceiptID        uuid.UUID                     `gorm:"type:uuid;not null;index"`
	OrderLineID      uuid.UUID                     `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID                     `gorm:"type:uuid;not null"`
	ItemName         string                        `gorm:"type:varchar(200);not null"`
	ItemCode         string                        `gorm:"type:varchar(50)"`
	TrackBy          costing.TrackBy               `gorm:"type:varchar(10);not null"`
	OrderedQuantity  decimal.Decimal               `gorm:"type:decimal(18,4);not null;default:0"`
	OrderedWeight    decimal.Decimal               `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedQuantity decimal.Decimal               `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedWeight   decimal.Decimal               `gorm:"type:decimal(18,4);not null;default:0"`
	Unit             string                        `gorm:"type:varchar(20);not null"`
	UnitCost         decimal.Decimal               `gorm:"type:decimal(18,4);not null"`
	LineTotal        decimal.Decimal               `gorm:"type:decimal(18,4);not null"`
	Status           procurement.ReceiptLineStatus `gorm:"type:varchar(20);not null"`
	Remark           string                        `gorm:"type:varchar(500)"`
	CreatedAt        time.Time                     `gorm:"not null"`
	UpdatedAt        time.Time                     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GoodsReceiptLineModel) TableName() string {
	return "goods_receipt_lines"
}

// ToDomain converts the persistence model to a domain GoodsReceiptLine entity.
func (m *GoodsReceiptLineModel) ToDomain() *procurement.GoodsReceiptLine {
	return &procurement.GoodsReceiptLine{
		ID:               m.ID,
		ReceiptID:        m.ReceiptID,
		OrderLineID:      m.OrderLineID,
		ItemID:           m.ItemID,
		ItemName:         m.ItemName,
		ItemCode:         m.ItemCode,
		TrackBy:          m.TrackBy,
		OrderedQuantity:  m.OrderedQuantity,
		OrderedWeight:    m.OrderedWeight,
		ReceivedQuantity: m.ReceivedQuantity,
		ReceivedWeight:   m.ReceivedWeight,
		Unit:             m.Unit,
		UnitCost:         m.UnitCost,
		LineTotal:        m.LineTotal,
		Status:           m.Status,
		Remark:           m.Remark,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// GoodsReceiptLineModelFromDomain creates a new persistence model from a domain GoodsReceiptLine entity.
func GoodsReceiptLineModelFromDomain(l *procurement.GoodsReceiptLine) *GoodsReceiptLineModel {
	return &GoodsReceiptLineModel{
		ID:               l.ID,
		ReceiptID:        l.ReceiptID,
		OrderLineID:      l.OrderLineID,
		ItemID:           l.ItemID,
		ItemName:         l.ItemName,
		ItemCode:         l.ItemCode,
		TrackBy:          l.TrackBy,
		OrderedQuantity:  l.OrderedQuantity,
		OrderedWeight:    l.OrderedWeight,
		ReceivedQuantity: l.ReceivedQuantity,
		ReceivedWeight:   l.ReceivedWeight,
		Unit:             l.Unit,
		UnitCost:         l.UnitCost,
		LineTotal:        l.LineTotal,
		Status:           l.Status,
		Remark:           l.Remark,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// OrderLineBalanceModel is the persistence model for the returnable balance ledger.
type OrderLineBalanceModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceiptLineID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ReceiptID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	TrackBy          costing.TrackBy `gorm:"type:varchar(10);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedWeight   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReturnedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReturnedWeight   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Version          int             `gorm:"not null;default:1"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineBalanceModel) TableName() string {
	return "order_line_balances"
}

// ToDomain converts the persistence model to a domain OrderLineBalance entity.
func (m *OrderLineBalanceModel) ToDomain() *procurement.OrderLineBalance {
	return &procurement.OrderLineBalance{
		ID:               m.ID,
		ReceiptLineID:    m.ReceiptLineID,
		ReceiptID:        m.ReceiptID,
		OrderID:          m.OrderID,
		ItemID:           m.ItemID,
		ItemName:         m.ItemName,
		TrackBy:          m.TrackBy,
		ReceivedQuantity: m.ReceivedQuantity,
		ReceivedWeight:   m.ReceivedWeight,
		ReturnedQuantity: m.ReturnedQuantity,
		ReturnedWeight:   m.ReturnedWeight,
		UnitCost:         m.UnitCost,
		Version:          m.Version,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// OrderLineBalanceModelFromDomain creates a new persistence model from a domain OrderLineBalance entity.
func OrderLineBalanceModelFromDomain(b *procurement.OrderLineBalance) *OrderLineBalanceModel {
	return &OrderLineBalanceModel{
		ID:               b.ID,
		ReceiptLineID:    b.ReceiptLineID,
		ReceiptID:        b.ReceiptID,
		OrderID:          b.OrderID,
		ItemID:           b.ItemID,
		ItemName:         b.ItemName,
		TrackBy:          b.TrackBy,
		ReceivedQuantity: b.ReceivedQuantity,
		ReceivedWeight:   b.ReceivedWeight,
		ReturnedQuantity: b.ReturnedQuantity,
		ReturnedWeight:   b.ReturnedWeight,
		UnitCost:         b.UnitCost,
		Version:          b.Version,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// PurchaseReturnModel is the persistence model for the PurchaseReturn aggregate root.
type PurchaseReturnModel struct {
	AggregateModel
	ReturnNumber string                    `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID      uuid.UUID                 `gorm:"type:uuid;not null;index"`
	SupplierID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	SupplierName string                    `gorm:"type:varchar(200);not null"`
	Lines        []PurchaseReturnLineModel `gorm:"foreignKey:ReturnID;references:ID"`
	RefundTotal  decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	Status       procurement.ReturnStatus  `gorm:"type:varchar(20);not null;default:'pending';index"`
	Remark       string                    `gorm:"type:text"`
	ApprovedBy   *uuid.UUID                `gorm:"type:uuid"`
	ApprovalNote string                    `gorm:"type:varchar(500)"`
	ApprovedAt   *time.Time
	RejectedAt   *time.Time
	CompletedAt  *time.Time
	RejectReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseReturnModel) TableName() string {
	return "purchase_returns"
}

// ToDomain converts the persistence model to a domain PurchaseReturn entity.
func (m *PurchaseReturnModel) ToDomain() *procurement.PurchaseReturn {
	pr := &procurement.PurchaseReturn{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ReturnNumber:      m.ReturnNumber,
		OrderID:           m.OrderID,
		SupplierID:        m.SupplierID,
		SupplierName:      m.SupplierName,
		RefundTotal:       m.RefundTotal,
		Status:            m.Status,
		Remark:            m.Remark,
		ApprovedBy:        m.ApprovedBy,
		ApprovalNote:      m.ApprovalNote,
		ApprovedAt:        m.ApprovedAt,
		RejectedAt:        m.RejectedAt,
		CompletedAt:       m.CompletedAt,
		RejectReason:      m.RejectReason,
		Lines:             make([]procurement.PurchaseReturnLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		pr.Lines[i] = *line.ToDomain()
	}
	return pr
}

// FromDomain populates the persistence model from a domain PurchaseReturn entity.
func (m *PurchaseReturnModel) FromDomain(r *procurement.PurchaseReturn) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ReturnNumber = r.ReturnNumber
	m.OrderID = r.OrderID
	m.SupplierID = r.SupplierID
	m.SupplierName = r.SupplierName
	m.RefundTotal = r.RefundTotal
	m.Status = r.Status
	m.Remark = r.Remark
	m.ApprovedBy = r.ApprovedBy
	m.ApprovalNote = r.ApprovalNote
	m.ApprovedAt = r.ApprovedAt
	m.RejectedAt = r.RejectedAt
	m.CompletedAt = r.CompletedAt
	m.RejectReason = r.RejectReason
	m.Lines = make([]PurchaseReturnLineModel, len(r.Lines))
	for i, line := range r.Lines {
		m.Lines[i] = *PurchaseReturnLineModelFromDomain(&line)
	}
}

// PurchaseReturnModelFromDomain creates a new persistence model from a domain PurchaseReturn entity.
func PurchaseReturnModelFromDomain(r *procurement.PurchaseReturn) *PurchaseReturnModel {
	m := &PurchaseReturnModel{}
	m.FromDomain(r)
	return m
}

// PurchaseReturnLineModel is the persistence model for the PurchaseReturnLine entity.
type PurchaseReturnLineModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	BalanceID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReceiptLineID  uuid.UUID       `gorm:"type:uuid;not null"`
	ItemID         uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName       string          `gorm:"type:varchar(200);not null"`
	TrackBy        costing.TrackBy `gorm:"type:varchar(10);not null"`
	ReturnQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReturnWeight   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RefundAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason         string          `gorm:"type:varchar(500);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseReturnLineModel) TableName() string {
	return "purchase_return_lines"
}

// ToDomain converts the persistence model to a domain PurchaseReturnLine entity.
func (m *PurchaseReturnLineModel) ToDomain() *procurement.PurchaseReturnLine {
	return &procurement.PurchaseReturnLine{
		ID:             m.ID,
		ReturnID:       m.ReturnID,
		BalanceID:      m.BalanceID,
		ReceiptLineID:  m.ReceiptLineID,
		ItemID:         m.ItemID,
		ItemName:       m.ItemName,
		TrackBy:        m.TrackBy,
		ReturnQuantity: m.ReturnQuantity,
		ReturnWeight:   m.ReturnWeight,
		UnitCost:       m.UnitCost,
		RefundAmount:   m.RefundAmount,
		Reason:         m.Reason,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// PurchaseReturnLineModelFromDomain creates a new persistence model from a domain PurchaseReturnLine entity.
func PurchaseReturnLineModelFromDomain(l *procurement.PurchaseReturnLine) *PurchaseReturnLineModel {
	return &PurchaseReturnLineModel{
		ID:             l.ID,
		ReturnID:       l.ReturnID,
		BalanceID:      l.BalanceID,
		ReceiptLineID:  l.ReceiptLineID,
		ItemID:         l.ItemID,
		ItemName:       l.ItemName,
		TrackBy:        l.TrackBy,
		ReturnQuantity: l.ReturnQuantity,
		ReturnWeight:   l.ReturnWeight,
		UnitCost:       l.UnitCost,
		RefundAmount:   l.RefundAmount,
		Reason:         l.Reason,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
