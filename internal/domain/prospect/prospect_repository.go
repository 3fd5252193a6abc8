package prospect

import (
	"context"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for prospect persistence
type Repository interface {
	// FindByID finds a prospect by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Prospect, error)

	// FindByEmail finds a prospect by email address
	FindByEmail(ctx context.Context, email string) (*Prospect, error)

	// FindByIDs finds multiple prospects by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Prospect, error)

	// FindAll finds all prospects matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Prospect, error)

	// FindByStatus finds prospects in a funnel status
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Prospect, error)

	// Save creates or updates a prospect
	Save(ctx context.Context, p *Prospect) error

	// SaveWithLock saves a prospect with optimistic locking (version check)
	SaveWithLock(ctx context.Context, p *Prospect) error

	// SaveBatch creates or updates multiple prospects
	SaveBatch(ctx context.Context, prospects []*Prospect) error

	// Delete deletes a prospect
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts prospects matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts prospects in a funnel status
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// ExistsByEmail checks if a prospect with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
