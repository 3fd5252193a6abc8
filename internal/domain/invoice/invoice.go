package invoice

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of an invoice
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusSent      Status = "Sent"
	StatusPaid      Status = "Paid"
	StatusOverdue   Status = "Overdue"
	StatusCancelled Status = "Cancelled"
)

// PaymentStatus represents how much of the invoice has been settled
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "Unpaid"
	PaymentPartial PaymentStatus = "Partial"
	PaymentPaid    PaymentStatus = "Paid"
)

// LineItem is a single billable line on an invoice.
// Amount is always Quantity x UnitPrice, computed at construction.
type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewLineItem creates a line item with its amount derived from quantity and price
func NewLineItem(description string, quantity, unitPrice decimal.Decimal) (LineItem, error) {
	if strings.TrimSpace(description) == "" {
		return LineItem{}, shared.NewDomainError("INVALID_ITEM", "Line item description is required")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return LineItem{}, shared.NewDomainError("INVALID_ITEM", "Line item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, shared.NewDomainError("INVALID_ITEM", "Line item unit price cannot be negative")
	}
	return LineItem{
		ID:          uuid.New(),
		Description: strings.TrimSpace(description),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
	}, nil
}

// LineItems is a collection of line items stored as JSONB
type LineItems []LineItem

// Value implements driver.Valuer for JSONB storage
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(LineItems{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan LineItems: unsupported type")
	}

	if len(bytes) == 0 {
		*l = LineItems{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Invoice is the aggregate root for client billing
type Invoice struct {
	shared.BaseAggregateRoot
	Number        string
	ClientID      *uuid.UUID
	ClientName    string
	ClientEmail   string
	IssueDate     time.Time
	DueDate       time.Time
	Items         LineItems
	Currency      valueobject.Currency
	Discount      decimal.Decimal
	TaxRate       decimal.Decimal
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	Status        Status
	PaymentStatus PaymentStatus
	AmountPaid    decimal.Decimal
	PaidDate      *time.Time
	Notes         string
}

// NewInvoice creates a new draft invoice with computed totals
func NewInvoice(number, clientName, clientEmail string, clientID *uuid.UUID, issueDate, dueDate time.Time, items []LineItem, discount, taxRate decimal.Decimal, actorID uuid.UUID) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number is required")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client name is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Invoice must have at least one line item")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if taxRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	if dueDate.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before issue date")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		ClientID:          clientID,
		ClientName:        clientName,
		ClientEmail:       clientEmail,
		IssueDate:         issueDate,
		DueDate:           dueDate,
		Items:             items,
		Currency:          valueobject.DefaultCurrency,
		Discount:          discount,
		TaxRate:           taxRate,
		Status:            StatusDraft,
		PaymentStatus:     PaymentUnpaid,
		AmountPaid:        decimal.Zero,
	}
	inv.recalculateTotals()

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv, actorID))

	return inv, nil
}

// UpdateItems replaces the line items and recomputes totals
func (inv *Invoice) UpdateItems(items []LineItem, actorID uuid.UUID) error {
	if inv.isTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit invoice in %s status", inv.Status))
	}
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Invoice must have at least one line item")
	}

	inv.Items = items
	inv.recalculateTotals()
	inv.refreshPaymentStatus()
	inv.touch()

	inv.AddDomainEvent(NewInvoiceUpdatedEvent(inv, actorID))

	return nil
}

// UpdatePricing updates the discount and tax rate and recomputes totals
func (inv *Invoice) UpdatePricing(discount, taxRate decimal.Decimal, actorID uuid.UUID) error {
	if inv.isTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit invoice in %s status", inv.Status))
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if taxRate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	inv.Discount = discount
	inv.TaxRate = taxRate
	inv.recalculateTotals()
	inv.refreshPaymentStatus()
	inv.touch()

	inv.AddDomainEvent(NewInvoiceUpdatedEvent(inv, actorID))

	return nil
}

// RecordPayment applies a payment to the invoice.
// The invoice becomes fully paid when the accumulated amount covers the
// total; PaidDate is stamped the first time that happens and never moves.
func (inv *Invoice) RecordPayment(amount decimal.Decimal, actorID uuid.UUID) error {
	if inv.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot record payment on a cancelled invoice")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	inv.AmountPaid = inv.AmountPaid.Add(amount)
	inv.refreshPaymentStatus()
	inv.touch()

	if inv.PaymentStatus == PaymentPaid {
		inv.AddDomainEvent(NewInvoicePaidEvent(inv, actorID))
	} else {
		inv.AddDomainEvent(NewInvoicePartiallyPaidEvent(inv, amount, actorID))
	}

	return nil
}

// MarkSent marks a draft invoice as sent to the client
func (inv *Invoice) MarkSent(actorID uuid.UUID) error {
	if inv.Status != StatusDraft && inv.Status != StatusOverdue {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send invoice in %s status", inv.Status))
	}
	oldStatus := inv.Status
	inv.Status = StatusSent
	inv.touch()
	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, oldStatus, StatusSent, actorID))
	return nil
}

// MarkOverdue flags an unpaid invoice past its due date
func (inv *Invoice) MarkOverdue(asOf time.Time) error {
	if inv.isTerminal() || inv.Status == StatusOverdue {
		return nil
	}
	if !asOf.After(inv.DueDate) {
		return shared.NewDomainError("INVALID_STATE", "Invoice is not past its due date")
	}
	oldStatus := inv.Status
	inv.Status = StatusOverdue
	inv.touch()
	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, oldStatus, StatusOverdue, uuid.Nil))
	return nil
}

// Cancel cancels an invoice that has not been paid
func (inv *Invoice) Cancel(actorID uuid.UUID) error {
	if inv.Status == StatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid invoices cannot be cancelled")
	}
	if inv.Status == StatusCancelled {
		return nil
	}
	oldStatus := inv.Status
	inv.Status = StatusCancelled
	inv.touch()
	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, oldStatus, StatusCancelled, actorID))
	return nil
}

// MarkDeleted records the deletion event before the aggregate is removed
func (inv *Invoice) MarkDeleted(actorID uuid.UUID) {
	inv.AddDomainEvent(NewInvoiceDeletedEvent(inv, actorID))
}

// Outstanding returns the amount still owed; never negative
func (inv *Invoice) Outstanding() decimal.Decimal {
	out := inv.Total.Sub(inv.AmountPaid)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// IsFullyPaid reports whether the accumulated payments cover the total
func (inv *Invoice) IsFullyPaid() bool {
	return inv.AmountPaid.GreaterThanOrEqual(inv.Total)
}

// recalculateTotals recomputes subtotal, tax and total from items,
// discount and tax rate. The discount applies before tax; all figures
// are rounded to 2 decimal places.
func (inv *Invoice) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	afterDiscount := subtotal.Sub(inv.Discount)
	tax := afterDiscount.Mul(inv.TaxRate).Div(decimal.NewFromInt(100))

	inv.Subtotal = subtotal.Round(2)
	inv.TaxAmount = tax.Round(2)
	inv.Total = afterDiscount.Add(tax).Round(2)
}

// refreshPaymentStatus re-derives the payment status from AmountPaid.
// Invoice status is forced to Paid only on full settlement, and PaidDate
// is written exactly once.
func (inv *Invoice) refreshPaymentStatus() {
	switch {
	case inv.AmountPaid.GreaterThanOrEqual(inv.Total):
		inv.PaymentStatus = PaymentPaid
		inv.Status = StatusPaid
		if inv.PaidDate == nil {
			now := time.Now()
			inv.PaidDate = &now
		}
	case inv.AmountPaid.IsPositive():
		inv.PaymentStatus = PaymentPartial
	default:
		inv.PaymentStatus = PaymentUnpaid
	}
}

func (inv *Invoice) isTerminal() bool {
	return inv.Status == StatusPaid || inv.Status == StatusCancelled
}

func (inv *Invoice) touch() {
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}
