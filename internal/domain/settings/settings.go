package settings

import (
	"context"
	"time"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Profile holds the workspace's business identity
type Profile struct {
	BusinessName string `json:"business_name"`
	SenderName   string `json:"sender_name"`
	SenderEmail  string `json:"sender_email"`
	LoginURL     string `json:"login_url"`
}

// Notifications holds notification toggles
type Notifications struct {
	EmailOnReply    bool `json:"email_on_reply"`
	EmailOnPayment  bool `json:"email_on_payment"`
	RenewalReminder bool `json:"renewal_reminder"`
}

// Team holds team defaults
type Team struct {
	DefaultRole      string `json:"default_role"`
	ApprovalRequired bool   `json:"approval_required"`
}

// Settings is the single workspace settings document
type Settings struct {
	shared.BaseAggregateRoot
	Profile       Profile
	Notifications Notifications
	Team          Team
}

// Default returns the settings used before anything is configured
func Default() *Settings {
	return &Settings{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Notifications: Notifications{
			RenewalReminder: true,
		},
		Team: Team{
			DefaultRole: "Agent",
		},
	}
}

// UpdateProfile replaces the business profile
func (s *Settings) UpdateProfile(p Profile, actorID uuid.UUID) {
	s.Profile = p
	s.touch()
}

// UpdateNotifications replaces the notification toggles
func (s *Settings) UpdateNotifications(n Notifications, actorID uuid.UUID) {
	s.Notifications = n
	s.touch()
}

// UpdateTeam replaces the team defaults
func (s *Settings) UpdateTeam(t Team, actorID uuid.UUID) {
	s.Team = t
	s.touch()
}

func (s *Settings) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Repository defines the interface for settings persistence.
// There is exactly one settings row per deployment.
type Repository interface {
	// Get loads the settings document, or nil when none has been saved
	Get(ctx context.Context) (*Settings, error)

	// Save creates or updates the settings document
	Save(ctx context.Context, s *Settings) error
}
