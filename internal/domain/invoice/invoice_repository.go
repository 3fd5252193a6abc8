package invoice

import (
	"context"
	"time"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for invoice persistence
type Repository interface {
	// FindByID finds an invoice by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by its number
	FindByNumber(ctx context.Context, number string) (*Invoice, error)

	// FindAll finds all invoices matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// FindByClient finds invoices for a client
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindDueBefore finds unpaid, non-cancelled invoices due before the given time
	FindDueBefore(ctx context.Context, cutoff time.Time) ([]Invoice, error)

	// LastNumberForYear returns the highest invoice number issued in a year,
	// or empty string when none exists
	LastNumberForYear(ctx context.Context, year int) (string, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, inv *Invoice) error

	// SaveWithLock saves an invoice with optimistic locking (version check)
	SaveWithLock(ctx context.Context, inv *Invoice) error

	// Delete deletes an invoice
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
