package staff

import (
	"strings"
	"time"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AuthUser holds the login credentials for a staff member.
// It is a separate aggregate so credentials can be created and removed
// without touching the staff profile.
type AuthUser struct {
	shared.BaseAggregateRoot
	Email        string
	PasswordHash string
	LastLoginAt  *time.Time
}

// NewAuthUser creates a new auth user with an already-hashed password.
// Hashing happens in the infrastructure layer; an empty hash is refused
// so no account can ever exist without a real credential.
func NewAuthUser(email, passwordHash string) (*AuthUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash is required")
	}

	return &AuthUser{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
	}, nil
}

// ChangePassword replaces the stored password hash
func (u *AuthUser) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash is required")
	}
	u.PasswordHash = passwordHash
	u.touch()
	return nil
}

// RecordLogin stamps the last successful login
func (u *AuthUser) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.touch()
}

// MarkDeleted records the deletion event before the aggregate is removed
func (u *AuthUser) MarkDeleted(actorID uuid.UUID) {
	u.AddDomainEvent(NewAuthUserDeletedEvent(u, actorID))
}

func (u *AuthUser) touch() {
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}
