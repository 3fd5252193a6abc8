package invoice

import (
	"context"
	"sync"
	"time"

	"github.com/coldpitch/backend/internal/domain/invoice"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PDFRenderer turns rendered invoice HTML into a PDF document
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// InvoiceService handles invoice application logic
type InvoiceService struct {
	invoiceRepo invoice.Repository
	eventBus    shared.EventPublisher
	pdfRenderer PDFRenderer
	logger      *zap.Logger

	// numberMu serializes number generation so concurrent creates in
	// one process never hand out the same sequence.
	numberMu sync.Mutex
}

// NewInvoiceService creates a new InvoiceService.
// pdfRenderer may be nil when PDF generation is not configured.
func NewInvoiceService(
	invoiceRepo invoice.Repository,
	eventBus shared.EventPublisher,
	pdfRenderer PDFRenderer,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		eventBus:    eventBus,
		pdfRenderer: pdfRenderer,
		logger:      logger,
	}
}

// CreateInvoice creates a draft invoice with a generated number
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest, actorID uuid.UUID) (*InvoiceResponse, error) {
	items, err := buildLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.nextNumber(ctx, req.IssueDate.Year())
	if err != nil {
		return nil, err
	}

	inv, err := invoice.NewInvoice(number, req.ClientName, req.ClientEmail, req.ClientID,
		req.IssueDate, req.DueDate, items, req.Discount, req.TaxRate, actorID)
	if err != nil {
		return nil, err
	}
	inv.Notes = req.Notes

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

func (s *InvoiceService) nextNumber(ctx context.Context, year int) (string, error) {
	s.numberMu.Lock()
	defer s.numberMu.Unlock()

	last, err := s.invoiceRepo.LastNumberForYear(ctx, year)
	if err != nil {
		return "", err
	}
	return invoice.NextNumber(year, last), nil
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// GetInvoiceByNumber retrieves an invoice by its number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// UpdateInvoice replaces the editable parts of an invoice
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest, actorID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := buildLineItems(req.Items)
	if err != nil {
		return nil, err
	}
	if err := inv.UpdateItems(items, actorID); err != nil {
		return nil, err
	}
	if err := inv.UpdatePricing(req.Discount, req.TaxRate, actorID); err != nil {
		return nil, err
	}
	inv.Notes = req.Notes

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// RecordPayment applies a payment to an invoice
func (s *InvoiceService) RecordPayment(ctx context.Context, id uuid.UUID, req RecordPaymentRequest, actorID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := inv.RecordPayment(req.Amount, actorID); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// MarkSent marks an invoice as sent to the client
func (s *InvoiceService) MarkSent(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, id, func(inv *invoice.Invoice) error { return inv.MarkSent(actorID) })
}

// CancelInvoice cancels an unpaid invoice
func (s *InvoiceService) CancelInvoice(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, id, func(inv *invoice.Invoice) error { return inv.Cancel(actorID) })
}

// DeleteInvoice deletes an invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	inv.MarkDeleted(actorID)

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvents(ctx, inv)
	return nil
}

// ListInvoices lists invoices matching the filter
func (s *InvoiceService) ListInvoices(ctx context.Context, filter ListFilter) (*shared.Paginated[InvoiceResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.PaymentStatus != "" {
		f.Filters["payment_status"] = filter.PaymentStatus
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		items[i] = ToInvoiceResponse(&invoices[i])
	}

	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// ListByClient lists invoices for a client
func (s *InvoiceService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindByClient(ctx, clientID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	items := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		items[i] = ToInvoiceResponse(&invoices[i])
	}
	return items, nil
}

// SweepOverdue flags every unpaid invoice past its due date as of now.
// Invoices that cannot be flagged are skipped, not fatal.
func (s *InvoiceService) SweepOverdue(ctx context.Context, asOf time.Time) (*OverdueSweepResult, error) {
	due, err := s.invoiceRepo.FindDueBefore(ctx, asOf)
	if err != nil {
		return nil, err
	}

	result := &OverdueSweepResult{}
	for i := range due {
		inv := &due[i]
		if err := inv.MarkOverdue(asOf); err != nil {
			continue
		}
		if inv.Status != invoice.StatusOverdue {
			continue
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
			s.logger.Warn("failed to flag overdue invoice",
				zap.String("number", inv.Number),
				zap.Error(err))
			continue
		}
		s.publishEvents(ctx, inv)
		result.Flagged++
		result.Numbers = append(result.Numbers, inv.Number)
	}

	return result, nil
}

// GeneratePDF renders the invoice as a PDF document
func (s *InvoiceService) GeneratePDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	if s.pdfRenderer == nil {
		return nil, "", shared.NewDomainError("PDF_UNAVAILABLE", "PDF generation is not configured")
	}

	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	html, err := renderInvoiceHTML(inv)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.pdfRenderer.RenderHTML(ctx, html)
	if err != nil {
		return nil, "", err
	}

	return pdf, inv.Number + ".pdf", nil
}

func (s *InvoiceService) transition(ctx context.Context, id uuid.UUID, fn func(*invoice.Invoice) error) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(inv); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, inv)

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

func buildLineItems(reqs []LineItemRequest) ([]invoice.LineItem, error) {
	items := make([]invoice.LineItem, 0, len(reqs))
	for _, r := range reqs {
		item, err := invoice.NewLineItem(r.Description, r.Quantity, r.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *InvoiceService) publishEvents(ctx context.Context, inv *invoice.Invoice) {
	if s.eventBus == nil {
		return
	}
	for _, event := range inv.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	inv.ClearDomainEvents()
}
