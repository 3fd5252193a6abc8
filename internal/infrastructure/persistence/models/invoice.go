package models

import (
	"time"

	"github.com/coldpitch/backend/internal/domain/invoice"
	"github.com/coldpitch/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice domain entity.
// Line items live in a jsonb column; LineItems carries its own
// Valuer/Scanner so GORM stores it directly.
type InvoiceModel struct {
	AggregateModel
	Number        string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID      *uuid.UUID            `gorm:"type:uuid;index"`
	ClientName    string                `gorm:"type:varchar(200);not null"`
	ClientEmail   string                `gorm:"type:varchar(200)"`
	IssueDate     time.Time             `gorm:"type:timestamptz;not null"`
	DueDate       time.Time             `gorm:"type:timestamptz;not null;index"`
	Items         invoice.LineItems     `gorm:"type:jsonb;not null;default:'[]'"`
	Currency      valueobject.Currency  `gorm:"type:varchar(3);not null;default:'NGN'"`
	Discount      decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate       decimal.Decimal       `gorm:"type:decimal(8,4);not null;default:0"`
	Subtotal      decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount     decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Total         decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Status        invoice.Status        `gorm:"type:varchar(20);not null;default:'Draft';index"`
	PaymentStatus invoice.PaymentStatus `gorm:"type:varchar(20);not null;default:'Unpaid'"`
	AmountPaid    decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	PaidDate      *time.Time            `gorm:"type:timestamptz"`
	Notes         string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *invoice.Invoice {
	return &invoice.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		ClientID:          m.ClientID,
		ClientName:        m.ClientName,
		ClientEmail:       m.ClientEmail,
		IssueDate:         m.IssueDate,
		DueDate:           m.DueDate,
		Items:             m.Items,
		Currency:          m.Currency,
		Discount:          m.Discount,
		TaxRate:           m.TaxRate,
		Subtotal:          m.Subtotal,
		TaxAmount:         m.TaxAmount,
		Total:             m.Total,
		Status:            m.Status,
		PaymentStatus:     m.PaymentStatus,
		AmountPaid:        m.AmountPaid,
		PaidDate:          m.PaidDate,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *invoice.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.Number = inv.Number
	m.ClientID = inv.ClientID
	m.ClientName = inv.ClientName
	m.ClientEmail = inv.ClientEmail
	m.IssueDate = inv.IssueDate
	m.DueDate = inv.DueDate
	m.Items = inv.Items
	m.Currency = inv.Currency
	m.Discount = inv.Discount
	m.TaxRate = inv.TaxRate
	m.Subtotal = inv.Subtotal
	m.TaxAmount = inv.TaxAmount
	m.Total = inv.Total
	m.Status = inv.Status
	m.PaymentStatus = inv.PaymentStatus
	m.AmountPaid = inv.AmountPaid
	m.PaidDate = inv.PaidDate
	m.Notes = inv.Notes
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(inv *invoice.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}
