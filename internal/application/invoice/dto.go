package invoice

import (
	"time"

	"github.com/coldpitch/backend/internal/domain/invoice"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemRequest is a single billable line in a create/update request
type LineItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceRequest is the request to create an invoice.
// The invoice number is generated server-side.
type CreateInvoiceRequest struct {
	ClientID    *uuid.UUID        `json:"client_id,omitempty"`
	ClientName  string            `json:"client_name" binding:"required"`
	ClientEmail string            `json:"client_email,omitempty"`
	IssueDate   time.Time         `json:"issue_date" binding:"required"`
	DueDate     time.Time         `json:"due_date" binding:"required"`
	Items       []LineItemRequest `json:"items" binding:"required,min=1"`
	Discount    decimal.Decimal   `json:"discount"`
	TaxRate     decimal.Decimal   `json:"tax_rate"`
	Notes       string            `json:"notes,omitempty"`
}

// UpdateInvoiceRequest replaces the editable parts of an invoice
type UpdateInvoiceRequest struct {
	Items    []LineItemRequest `json:"items" binding:"required,min=1"`
	Discount decimal.Decimal   `json:"discount"`
	TaxRate  decimal.Decimal   `json:"tax_rate"`
	Notes    string            `json:"notes,omitempty"`
}

// RecordPaymentRequest applies a payment to an invoice
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ListFilter carries list query parameters
type ListFilter struct {
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
	OrderBy       string `form:"order_by"`
	OrderDir      string `form:"order_dir"`
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
}

// LineItemResponse is a line item in API responses
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse is the full invoice representation
type InvoiceResponse struct {
	ID            uuid.UUID          `json:"id"`
	Number        string             `json:"number"`
	ClientID      *uuid.UUID         `json:"client_id,omitempty"`
	ClientName    string             `json:"client_name"`
	ClientEmail   string             `json:"client_email,omitempty"`
	IssueDate     time.Time          `json:"issue_date"`
	DueDate       time.Time          `json:"due_date"`
	Items         []LineItemResponse `json:"items"`
	Currency      string             `json:"currency"`
	Discount      decimal.Decimal    `json:"discount"`
	TaxRate       decimal.Decimal    `json:"tax_rate"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxAmount     decimal.Decimal    `json:"tax_amount"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	AmountPaid    decimal.Decimal    `json:"amount_paid"`
	Outstanding   decimal.Decimal    `json:"outstanding"`
	PaidDate      *time.Time         `json:"paid_date,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice to its response DTO
func ToInvoiceResponse(inv *invoice.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = LineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		ClientID:      inv.ClientID,
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Items:         items,
		Currency:      string(inv.Currency),
		Discount:      inv.Discount,
		TaxRate:       inv.TaxRate,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		Status:        string(inv.Status),
		PaymentStatus: string(inv.PaymentStatus),
		AmountPaid:    inv.AmountPaid,
		Outstanding:   inv.Outstanding(),
		PaidDate:      inv.PaidDate,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// OverdueSweepResult reports the outcome of an overdue sweep
type OverdueSweepResult struct {
	Flagged int      `json:"flagged"`
	Numbers []string `json:"numbers,omitempty"`
}
