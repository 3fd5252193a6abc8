package settings

import (
	"context"

	"github.com/coldpitch/backend/internal/domain/settings"
	"github.com/google/uuid"
)

// UpdateProfileRequest replaces the business profile
type UpdateProfileRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	SenderName   string `json:"sender_name,omitempty"`
	SenderEmail  string `json:"sender_email,omitempty"`
	LoginURL     string `json:"login_url,omitempty"`
}

// UpdateNotificationsRequest replaces the notification toggles
type UpdateNotificationsRequest struct {
	EmailOnReply    bool `json:"email_on_reply"`
	EmailOnPayment  bool `json:"email_on_payment"`
	RenewalReminder bool `json:"renewal_reminder"`
}

// UpdateTeamRequest replaces the team defaults
type UpdateTeamRequest struct {
	DefaultRole      string `json:"default_role" binding:"required"`
	ApprovalRequired bool   `json:"approval_required"`
}

// SettingsResponse is the full settings document
type SettingsResponse struct {
	Profile       settings.Profile       `json:"profile"`
	Notifications settings.Notifications `json:"notifications"`
	Team          settings.Team          `json:"team"`
}

func toResponse(s *settings.Settings) *SettingsResponse {
	return &SettingsResponse{
		Profile:       s.Profile,
		Notifications: s.Notifications,
		Team:          s.Team,
	}
}

// SettingsService handles workspace settings use cases
type SettingsService struct {
	repo settings.Repository
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo settings.Repository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetSettings loads the settings document, falling back to defaults
// when nothing has been configured yet.
func (s *SettingsService) GetSettings(ctx context.Context) (*SettingsResponse, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return toResponse(doc), nil
}

// UpdateProfile replaces the business profile
func (s *SettingsService) UpdateProfile(ctx context.Context, req UpdateProfileRequest, actorID uuid.UUID) (*SettingsResponse, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	doc.UpdateProfile(settings.Profile{
		BusinessName: req.BusinessName,
		SenderName:   req.SenderName,
		SenderEmail:  req.SenderEmail,
		LoginURL:     req.LoginURL,
	}, actorID)

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}
	return toResponse(doc), nil
}

// UpdateNotifications replaces the notification toggles
func (s *SettingsService) UpdateNotifications(ctx context.Context, req UpdateNotificationsRequest, actorID uuid.UUID) (*SettingsResponse, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	doc.UpdateNotifications(settings.Notifications{
		EmailOnReply:    req.EmailOnReply,
		EmailOnPayment:  req.EmailOnPayment,
		RenewalReminder: req.RenewalReminder,
	}, actorID)

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}
	return toResponse(doc), nil
}

// UpdateTeam replaces the team defaults
func (s *SettingsService) UpdateTeam(ctx context.Context, req UpdateTeamRequest, actorID uuid.UUID) (*SettingsResponse, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	doc.UpdateTeam(settings.Team{
		DefaultRole:      req.DefaultRole,
		ApprovalRequired: req.ApprovalRequired,
	}, actorID)

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}
	return toResponse(doc), nil
}

func (s *SettingsService) load(ctx context.Context) (*settings.Settings, error) {
	doc, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = settings.Default()
	}
	return doc, nil
}
