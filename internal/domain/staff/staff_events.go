package staff

import (
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeStaff    = "Staff"
	AggregateTypeAuthUser = "AuthUser"
)

// Event type constants
const (
	EventTypeStaffCreated       = "StaffCreated"
	EventTypeStaffUpdated       = "StaffUpdated"
	EventTypeStaffStatusChanged = "StaffStatusChanged"
	EventTypeStaffAuthDetached  = "StaffAuthDetached"
	EventTypeStaffDeleted       = "StaffDeleted"
	EventTypeAuthUserDeleted    = "AuthUserDeleted"
	EventTypeCredentialsSent    = "CredentialsSent"
)

// StaffCreatedEvent is published when a new staff member is created
type StaffCreatedEvent struct {
	shared.BaseDomainEvent
	StaffID uuid.UUID `json:"staff_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Role    Role      `json:"role"`
}

// NewStaffCreatedEvent creates a new StaffCreatedEvent
func NewStaffCreatedEvent(s *Staff, actorID uuid.UUID) *StaffCreatedEvent {
	return &StaffCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStaffCreated, AggregateTypeStaff, s.ID, actorID),
		StaffID:         s.ID,
		Name:            s.Name,
		Email:           s.Email,
		Role:            s.Role,
	}
}

// StaffUpdatedEvent is published when a staff profile changes
type StaffUpdatedEvent struct {
	shared.BaseDomainEvent
	StaffID uuid.UUID `json:"staff_id"`
	Name    string    `json:"name"`
	Role    Role      `json:"role"`
}

// NewStaffUpdatedEvent creates a new StaffUpdatedEvent
func NewStaffUpdatedEvent(s *Staff, actorID uuid.UUID) *StaffUpdatedEvent {
	return &StaffUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStaffUpdated, AggregateTypeStaff, s.ID, actorID),
		StaffID:         s.ID,
		Name:            s.Name,
		Role:            s.Role,
	}
}

// StaffStatusChangedEvent is published when a staff member is suspended or activated
type StaffStatusChangedEvent struct {
	shared.BaseDomainEvent
	StaffID   uuid.UUID `json:"staff_id"`
	Name      string    `json:"name"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
}

// NewStaffStatusChangedEvent creates a new StaffStatusChangedEvent
func NewStaffStatusChangedEvent(s *Staff, oldStatus, newStatus Status, actorID uuid.UUID) *StaffStatusChangedEvent {
	return &StaffStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStaffStatusChanged, AggregateTypeStaff, s.ID, actorID),
		StaffID:         s.ID,
		Name:            s.Name,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// StaffAuthDetachedEvent is published when credentials are removed from a profile
type StaffAuthDetachedEvent struct {
	shared.BaseDomainEvent
	StaffID uuid.UUID `json:"staff_id"`
	Name    string    `json:"name"`
}

// NewStaffAuthDetachedEvent creates a new StaffAuthDetachedEvent
func NewStaffAuthDetachedEvent(s *Staff, actorID uuid.UUID) *StaffAuthDetachedEvent {
	return &StaffAuthDetachedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStaffAuthDetached, AggregateTypeStaff, s.ID, actorID),
		StaffID:         s.ID,
		Name:            s.Name,
	}
}

// StaffDeletedEvent is published when a staff profile is deleted
type StaffDeletedEvent struct {
	shared.BaseDomainEvent
	StaffID uuid.UUID `json:"staff_id"`
	Name    string    `json:"name"`
}

// NewStaffDeletedEvent creates a new StaffDeletedEvent
func NewStaffDeletedEvent(s *Staff, actorID uuid.UUID) *StaffDeletedEvent {
	return &StaffDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStaffDeleted, AggregateTypeStaff, s.ID, actorID),
		StaffID:         s.ID,
		Name:            s.Name,
	}
}

// AuthUserDeletedEvent is published when an auth user is removed
type AuthUserDeletedEvent struct {
	shared.BaseDomainEvent
	AuthUserID uuid.UUID `json:"auth_user_id"`
	Email      string    `json:"email"`
}

// NewAuthUserDeletedEvent creates a new AuthUserDeletedEvent
func NewAuthUserDeletedEvent(u *AuthUser, actorID uuid.UUID) *AuthUserDeletedEvent {
	return &AuthUserDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAuthUserDeleted, AggregateTypeAuthUser, u.ID, actorID),
		AuthUserID:      u.ID,
		Email:           u.Email,
	}
}
