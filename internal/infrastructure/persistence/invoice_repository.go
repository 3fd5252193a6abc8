package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coldpitch/backend/internal/domain/invoice"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements invoice.Repository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by its number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]invoice.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	return toDomainInvoices(invoiceModels), nil
}

// FindByClient finds invoices for a client
func (r *GormInvoiceRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]invoice.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
			Where("client_id = ?", clientID),
		filter,
	)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	return toDomainInvoices(invoiceModels), nil
}

// FindDueBefore finds unpaid, non-cancelled invoices due before the given time
func (r *GormInvoiceRepository) FindDueBefore(ctx context.Context, cutoff time.Time) ([]invoice.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("due_date < ? AND payment_status <> ? AND status NOT IN ?",
			cutoff, invoice.PaymentPaid, []invoice.Status{invoice.StatusPaid, invoice.StatusCancelled}).
		Order("due_date ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	return toDomainInvoices(invoiceModels), nil
}

// LastNumberForYear returns the highest invoice number issued in a year,
// or empty string when none exists
func (r *GormInvoiceRepository) LastNumberForYear(ctx context.Context, year int) (string, error) {
	var number string
	err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("number").
		Where("number LIKE ?", fmt.Sprintf("INV-%d-%%", year)).
		Order("number DESC").
		Limit(1).
		Scan(&number).Error
	if err != nil {
		return "", err
	}
	return number, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	model := models.InvoiceModelFromDomain(inv)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves an invoice with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, inv *invoice.Invoice) error {
	model := models.InvoiceModelFromDomain(inv)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", inv.ID, inv.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The invoice record has been modified by another transaction")
	}
	return nil
}

// Delete deletes an invoice
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, InvoiceSortFields, "issue_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR client_name ILIKE ? OR client_email ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "due_before":
			query = query.Where("due_date < ?", value)
		case "due_after":
			query = query.Where("due_date >= ?", value)
		}
	}

	return query
}

func toDomainInvoices(invoiceModels []models.InvoiceModel) []invoice.Invoice {
	invoices := make([]invoice.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices
}

// Ensure GormInvoiceRepository implements invoice.Repository
var _ invoice.Repository = (*GormInvoiceRepository)(nil)
