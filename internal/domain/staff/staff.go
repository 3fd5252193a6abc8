package staff

import (
	"regexp"
	"strings"
	"time"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role represents a staff member's role
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleAgent   Role = "Agent"
)

// Status represents a staff member's account status
type Status string

const (
	StatusActive    Status = "Active"
	StatusSuspended Status = "Suspended"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Staff is the aggregate root for a team member working the CRM
type Staff struct {
	shared.BaseAggregateRoot
	Name            string
	Email           string
	Role            Role
	Status          Status
	DutyDays        []string
	LoginTimes      []time.Time
	TotalLeadsAdded int
	// AuthUserID links the staff profile to its login credentials.
	// Nil when credentials have been removed; the profile survives.
	AuthUserID *uuid.UUID
}

// NewStaff creates a new active staff member
func NewStaff(name, email string, role Role, actorID uuid.UUID) (*Staff, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Staff name is required")
	}
	if !emailRegex.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}

	s := &Staff{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Role:              role,
		Status:            StatusActive,
		DutyDays:          []string{},
		LoginTimes:        []time.Time{},
	}

	s.AddDomainEvent(NewStaffCreatedEvent(s, actorID))

	return s, nil
}

// Update updates the staff member's profile
func (s *Staff) Update(name string, role Role, dutyDays []string, actorID uuid.UUID) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Staff name is required")
	}
	if err := validateRole(role); err != nil {
		return err
	}

	s.Name = strings.TrimSpace(name)
	s.Role = role
	s.DutyDays = dutyDays
	s.touch()

	s.AddDomainEvent(NewStaffUpdatedEvent(s, actorID))

	return nil
}

// LinkAuthUser attaches login credentials to the staff profile
func (s *Staff) LinkAuthUser(authUserID uuid.UUID) {
	s.AuthUserID = &authUserID
	s.touch()
}

// DetachAuthUser removes the credentials link, keeping the profile.
// Used when an auth user is deleted by an administrator.
func (s *Staff) DetachAuthUser(actorID uuid.UUID) {
	if s.AuthUserID == nil {
		return
	}
	s.AuthUserID = nil
	s.touch()
	s.AddDomainEvent(NewStaffAuthDetachedEvent(s, actorID))
}

// RecordLogin stamps a successful login. Only the most recent logins
// are retained.
func (s *Staff) RecordLogin(at time.Time) {
	const keep = 20
	s.LoginTimes = append(s.LoginTimes, at)
	if len(s.LoginTimes) > keep {
		s.LoginTimes = s.LoginTimes[len(s.LoginTimes)-keep:]
	}
	s.touch()
}

// IncrementLeadsAdded credits the staff member with a new lead
func (s *Staff) IncrementLeadsAdded() {
	s.TotalLeadsAdded++
	s.touch()
}

// Suspend blocks the staff member from logging in
func (s *Staff) Suspend(actorID uuid.UUID) error {
	if s.Status == StatusSuspended {
		return nil
	}
	s.Status = StatusSuspended
	s.touch()
	s.AddDomainEvent(NewStaffStatusChangedEvent(s, StatusActive, StatusSuspended, actorID))
	return nil
}

// Activate restores a suspended staff member
func (s *Staff) Activate(actorID uuid.UUID) error {
	if s.Status == StatusActive {
		return nil
	}
	s.Status = StatusActive
	s.touch()
	s.AddDomainEvent(NewStaffStatusChangedEvent(s, StatusSuspended, StatusActive, actorID))
	return nil
}

// IsAdmin reports whether the staff member has the admin role
func (s *Staff) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanLogin reports whether the staff member may authenticate
func (s *Staff) CanLogin() bool {
	return s.Status == StatusActive && s.AuthUserID != nil
}

// MarkDeleted records the deletion event before the aggregate is removed
func (s *Staff) MarkDeleted(actorID uuid.UUID) {
	s.AddDomainEvent(NewStaffDeletedEvent(s, actorID))
}

func (s *Staff) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

func validateRole(role Role) error {
	switch role {
	case RoleAdmin, RoleManager, RoleAgent:
		return nil
	}
	return shared.NewDomainError("INVALID_ROLE", "Invalid staff role")
}
