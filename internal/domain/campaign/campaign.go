package campaign

import (
	"strings"
	"time"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the lifecycle status of a campaign
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusActive    Status = "Active"
	StatusPaused    Status = "Paused"
	StatusCompleted Status = "Completed"
)

// Campaign is the aggregate root for an email outreach campaign
type Campaign struct {
	shared.BaseAggregateRoot
	Name           string
	Subject        string
	Body           string
	Status         Status
	SentCount      int
	OpenCount      int
	ReplyCount     int
	ConvertedCount int
	SentAt         *time.Time
}

// Stats holds derived campaign performance rates
type Stats struct {
	Sent           int     `json:"sent"`
	Opened         int     `json:"opened"`
	Replied        int     `json:"replied"`
	Converted      int     `json:"converted"`
	OpenRate       float64 `json:"open_rate"`
	ReplyRate      float64 `json:"reply_rate"`
	ConversionRate float64 `json:"conversion_rate"`
}

// NewCampaign creates a new campaign in draft status
func NewCampaign(name, subject, body string, actorID uuid.UUID) (*Campaign, error) {
	if err := validateCampaignName(name); err != nil {
		return nil, err
	}

	c := &Campaign{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Subject:           subject,
		Body:              body,
		Status:            StatusDraft,
	}

	c.AddDomainEvent(NewCampaignCreatedEvent(c, actorID))

	return c, nil
}

// Update updates the campaign's content
func (c *Campaign) Update(name, subject, body string, actorID uuid.UUID) error {
	if err := validateCampaignName(name); err != nil {
		return err
	}
	if c.Status == StatusCompleted {
		return shared.NewDomainError("CAMPAIGN_COMPLETED", "Completed campaigns cannot be edited")
	}

	c.Name = strings.TrimSpace(name)
	c.Subject = subject
	c.Body = body
	c.touch()

	c.AddDomainEvent(NewCampaignUpdatedEvent(c, actorID))

	return nil
}

// CanSend reports whether the campaign may dispatch emails.
// Only draft and active campaigns are sendable.
func (c *Campaign) CanSend() bool {
	return c.Status == StatusDraft || c.Status == StatusActive
}

// RecordBatchSent applies the outcome of a bulk send to the campaign.
// The campaign becomes active and SentAt is stamped on the first send only.
func (c *Campaign) RecordBatchSent(sent, failed int, actorID uuid.UUID) error {
	if !c.CanSend() {
		return shared.NewDomainError("CAMPAIGN_NOT_SENDABLE", "Campaign must be in Draft or Active status to send")
	}

	c.SentCount += sent
	c.Status = StatusActive
	if sent > 0 && c.SentAt == nil {
		now := time.Now()
		c.SentAt = &now
	}
	c.touch()

	c.AddDomainEvent(NewCampaignBatchSentEvent(c, sent, failed, actorID))

	return nil
}

// RecordOpen increments the open counter
func (c *Campaign) RecordOpen() {
	c.OpenCount++
	c.touch()
}

// RecordReply increments the reply counter
func (c *Campaign) RecordReply() {
	c.ReplyCount++
	c.touch()
}

// RecordConversion increments the conversion counter
func (c *Campaign) RecordConversion() {
	c.ConvertedCount++
	c.touch()
}

// Pause pauses an active campaign
func (c *Campaign) Pause(actorID uuid.UUID) error {
	if c.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active campaigns can be paused")
	}
	c.changeStatus(StatusPaused, actorID)
	return nil
}

// Resume reactivates a paused campaign
func (c *Campaign) Resume(actorID uuid.UUID) error {
	if c.Status != StatusPaused {
		return shared.NewDomainError("INVALID_STATE", "Only paused campaigns can be resumed")
	}
	c.changeStatus(StatusActive, actorID)
	return nil
}

// Complete marks a campaign as finished
func (c *Campaign) Complete(actorID uuid.UUID) error {
	if c.Status == StatusCompleted {
		return nil
	}
	c.changeStatus(StatusCompleted, actorID)
	return nil
}

// MarkDeleted records the deletion event before the aggregate is removed
func (c *Campaign) MarkDeleted(actorID uuid.UUID) {
	c.AddDomainEvent(NewCampaignDeletedEvent(c, actorID))
}

// ComputeStats derives performance rates from the counters.
// All rates are zero when nothing has been sent.
func (c *Campaign) ComputeStats() Stats {
	s := Stats{
		Sent:      c.SentCount,
		Opened:    c.OpenCount,
		Replied:   c.ReplyCount,
		Converted: c.ConvertedCount,
	}
	if c.SentCount > 0 {
		sent := float64(c.SentCount)
		s.OpenRate = float64(c.OpenCount) / sent
		s.ReplyRate = float64(c.ReplyCount) / sent
		s.ConversionRate = float64(c.ConvertedCount) / sent
	}
	return s
}

func (c *Campaign) changeStatus(status Status, actorID uuid.UUID) {
	oldStatus := c.Status
	c.Status = status
	c.touch()
	c.AddDomainEvent(NewCampaignStatusChangedEvent(c, oldStatus, status, actorID))
}

func (c *Campaign) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

func validateCampaignName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Campaign name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Campaign name cannot exceed 200 characters")
	}
	return nil
}
