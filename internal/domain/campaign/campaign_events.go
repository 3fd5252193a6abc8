package campaign

import (
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCampaign = "Campaign"

// Event type constants
const (
	EventTypeCampaignCreated       = "CampaignCreated"
	EventTypeCampaignUpdated       = "CampaignUpdated"
	EventTypeCampaignStatusChanged = "CampaignStatusChanged"
	EventTypeCampaignBatchSent     = "CampaignBatchSent"
	EventTypeCampaignDeleted       = "CampaignDeleted"
)

// CampaignCreatedEvent is published when a new campaign is created
type CampaignCreatedEvent struct {
	shared.BaseDomainEvent
	CampaignID uuid.UUID `json:"campaign_id"`
	Name       string    `json:"name"`
}

// NewCampaignCreatedEvent creates a new CampaignCreatedEvent
func NewCampaignCreatedEvent(c *Campaign, actorID uuid.UUID) *CampaignCreatedEvent {
	return &CampaignCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCampaignCreated, AggregateTypeCampaign, c.ID, actorID),
		CampaignID:      c.ID,
		Name:            c.Name,
	}
}

// CampaignUpdatedEvent is published when a campaign's content changes
type CampaignUpdatedEvent struct {
	shared.BaseDomainEvent
	CampaignID uuid.UUID `json:"campaign_id"`
	Name       string    `json:"name"`
}

// NewCampaignUpdatedEvent creates a new CampaignUpdatedEvent
func NewCampaignUpdatedEvent(c *Campaign, actorID uuid.UUID) *CampaignUpdatedEvent {
	return &CampaignUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCampaignUpdated, AggregateTypeCampaign, c.ID, actorID),
		CampaignID:      c.ID,
		Name:            c.Name,
	}
}

// CampaignStatusChangedEvent is published when a campaign's status changes
type CampaignStatusChangedEvent struct {
	shared.BaseDomainEvent
	CampaignID uuid.UUID `json:"campaign_id"`
	Name       string    `json:"name"`
	OldStatus  Status    `json:"old_status"`
	NewStatus  Status    `json:"new_status"`
}

// NewCampaignStatusChangedEvent creates a new CampaignStatusChangedEvent
func NewCampaignStatusChangedEvent(c *Campaign, oldStatus, newStatus Status, actorID uuid.UUID) *CampaignStatusChangedEvent {
	return &CampaignStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCampaignStatusChanged, AggregateTypeCampaign, c.ID, actorID),
		CampaignID:      c.ID,
		Name:            c.Name,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// CampaignBatchSentEvent is published after a bulk send batch completes
type CampaignBatchSentEvent struct {
	shared.BaseDomainEvent
	CampaignID uuid.UUID `json:"campaign_id"`
	Name       string    `json:"name"`
	Sent       int       `json:"sent"`
	Failed     int       `json:"failed"`
}

// NewCampaignBatchSentEvent creates a new CampaignBatchSentEvent
func NewCampaignBatchSentEvent(c *Campaign, sent, failed int, actorID uuid.UUID) *CampaignBatchSentEvent {
	return &CampaignBatchSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCampaignBatchSent, AggregateTypeCampaign, c.ID, actorID),
		CampaignID:      c.ID,
		Name:            c.Name,
		Sent:            sent,
		Failed:          failed,
	}
}

// CampaignDeletedEvent is published when a campaign is deleted
type CampaignDeletedEvent struct {
	shared.BaseDomainEvent
	CampaignID uuid.UUID `json:"campaign_id"`
	Name       string    `json:"name"`
}

// NewCampaignDeletedEvent creates a new CampaignDeletedEvent
func NewCampaignDeletedEvent(c *Campaign, actorID uuid.UUID) *CampaignDeletedEvent {
	return &CampaignDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCampaignDeleted, AggregateTypeCampaign, c.ID, actorID),
		CampaignID:      c.ID,
		Name:            c.Name,
	}
}
