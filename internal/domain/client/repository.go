package client

import (
	"context"
	"time"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindAll finds all clients matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, c *Client) error

	// SaveWithLock saves a client with optimistic locking (version check)
	SaveWithLock(ctx context.Context, c *Client) error

	// Delete deletes a client
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts clients matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	// FindByID finds a project by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// FindAll finds all projects matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Project, error)

	// FindByClient finds all projects for a client
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Project, error)

	// FindRenewingBetween finds active projects whose next renewal falls in the window
	FindRenewingBetween(ctx context.Context, from, to time.Time) ([]Project, error)

	// FindActive finds all active projects
	FindActive(ctx context.Context) ([]Project, error)

	// Save creates or updates a project
	Save(ctx context.Context, p *Project) error

	// SaveWithLock saves a project with optimistic locking (version check)
	SaveWithLock(ctx context.Context, p *Project) error

	// Delete deletes a project
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts projects matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
