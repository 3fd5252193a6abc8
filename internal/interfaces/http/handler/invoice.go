package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	invoiceapp "github.com/coldpitch/backend/internal/application/invoice"
	"github.com/coldpitch/backend/internal/interfaces/http/middleware"
)

// InvoiceHandler handles invoicing endpoints
type InvoiceHandler struct {
	BaseHandler
	service *invoiceapp.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(service *invoiceapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// Create creates a draft invoice. The number is assigned server-side.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoiceapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.CreateInvoice(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByNumber returns an invoice by its human-readable number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Invoice number is required")
		return
	}

	resp, err := h.service.GetInvoiceByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces a draft invoice's line items and terms
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req invoiceapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateInvoice(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RecordPayment applies a payment to an invoice
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req invoiceapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.RecordPayment(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkSent marks an invoice as sent to the client
func (h *InvoiceHandler) MarkSent(c *gin.Context) {
	h.transition(c, h.service.MarkSent)
}

// Cancel cancels an invoice
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.CancelInvoice)
}

// Delete removes a draft invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.service.DeleteInvoice(c.Request.Context(), id, actorID(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List returns a filtered, paginated page of invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter invoiceapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.service.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListByClient returns all invoices billed to one client
func (h *InvoiceHandler) ListByClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	items, err := h.service.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// DownloadPDF renders the invoice as a PDF attachment
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	pdf, filename, err := h.service.GeneratePDF(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// transition runs a status transition identified by the id path param
func (h *InvoiceHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*invoiceapp.InvoiceResponse, error)) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := fn(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
