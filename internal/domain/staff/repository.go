package staff

import (
	"context"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for staff persistence
type Repository interface {
	// FindByID finds a staff member by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Staff, error)

	// FindByEmail finds a staff member by email
	FindByEmail(ctx context.Context, email string) (*Staff, error)

	// FindByAuthUserID finds the staff member linked to an auth user
	FindByAuthUserID(ctx context.Context, authUserID uuid.UUID) (*Staff, error)

	// FindAll finds all staff matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Staff, error)

	// Save creates or updates a staff member
	Save(ctx context.Context, s *Staff) error

	// SaveWithLock saves a staff member with optimistic locking (version check)
	SaveWithLock(ctx context.Context, s *Staff) error

	// Delete deletes a staff member
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts staff matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// AuthUserRepository defines the interface for auth user persistence
type AuthUserRepository interface {
	// FindByID finds an auth user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*AuthUser, error)

	// FindByEmail finds an auth user by email
	FindByEmail(ctx context.Context, email string) (*AuthUser, error)

	// Save creates or updates an auth user
	Save(ctx context.Context, u *AuthUser) error

	// Delete deletes an auth user
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByEmail checks whether an auth user exists for the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
