package invoice

import (
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceCreated       = "InvoiceCreated"
	EventTypeInvoiceUpdated       = "InvoiceUpdated"
	EventTypeInvoiceStatusChanged = "InvoiceStatusChanged"
	EventTypeInvoicePartiallyPaid = "InvoicePartiallyPaid"
	EventTypeInvoicePaid          = "InvoicePaid"
	EventTypeInvoiceDeleted       = "InvoiceDeleted"
)

// InvoiceCreatedEvent is published when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	Number     string          `json:"number"`
	ClientName string          `json:"client_name"`
	Total      decimal.Decimal `json:"total"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice, actorID uuid.UUID) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID, actorID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		ClientName:      inv.ClientName,
		Total:           inv.Total,
	}
}

// InvoiceUpdatedEvent is published when invoice content or pricing changes
type InvoiceUpdatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Number    string          `json:"number"`
	Total     decimal.Decimal `json:"total"`
}

// NewInvoiceUpdatedEvent creates a new InvoiceUpdatedEvent
func NewInvoiceUpdatedEvent(inv *Invoice, actorID uuid.UUID) *InvoiceUpdatedEvent {
	return &InvoiceUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceUpdated, AggregateTypeInvoice, inv.ID, actorID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		Total:           inv.Total,
	}
}

// InvoiceStatusChangedEvent is published when an invoice's status changes
type InvoiceStatusChangedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID `json:"invoice_id"`
	Number    string    `json:"number"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
}

// NewInvoiceStatusChangedEvent creates a new InvoiceStatusChangedEvent
func NewInvoiceStatusChangedEvent(inv *Invoice, oldStatus, newStatus Status, actorID uuid.UUID) *InvoiceStatusChangedEvent {
	return &InvoiceStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceStatusChanged, AggregateTypeInvoice, inv.ID, actorID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// InvoicePartiallyPaidEvent is published when a payment leaves a balance
type InvoicePartiallyPaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Number      string          `json:"number"`
	Amount      decimal.Decimal `json:"amount"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// NewInvoicePartiallyPaidEvent creates a new InvoicePartiallyPaidEvent
func NewInvoicePartiallyPaidEvent(inv *Invoice, amount decimal.Decimal, actorID uuid.UUID) *InvoicePartiallyPaidEvent {
	return &InvoicePartiallyPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePartiallyPaid, AggregateTypeInvoice, inv.ID, actorID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		Amount:          amount,
		AmountPaid:      inv.AmountPaid,
		Outstanding:     inv.Outstanding(),
	}
}

// InvoicePaidEvent is published when an invoice becomes fully paid
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	Number     string          `json:"number"`
	Total      decimal.Decimal `json:"total"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice, actorID uuid.UUID) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, inv.ID, actorID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		Total:           inv.Total,
		AmountPaid:      inv.AmountPaid,
	}
}

// InvoiceDeletedEvent is published when an invoice is deleted
type InvoiceDeletedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID `json:"invoice_id"`
	Number    string    `json:"number"`
}

// NewInvoiceDeletedEvent creates a new InvoiceDeletedEvent
func NewInvoiceDeletedEvent(inv *Invoice, actorID uuid.UUID) *InvoiceDeletedEvent {
	return &InvoiceDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceDeleted, AggregateTypeInvoice, inv.ID, actorID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
	}
}
