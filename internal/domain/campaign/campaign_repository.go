package campaign

import (
	"context"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for campaign persistence
type Repository interface {
	// FindByID finds a campaign by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Campaign, error)

	// FindAll finds all campaigns matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Campaign, error)

	// FindByStatus finds campaigns in a lifecycle status
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Campaign, error)

	// Save creates or updates a campaign
	Save(ctx context.Context, c *Campaign) error

	// SaveWithLock saves a campaign with optimistic locking (version check)
	SaveWithLock(ctx context.Context, c *Campaign) error

	// Delete deletes a campaign
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts campaigns matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
