package prospect

import (
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProspect = "Prospect"

// Event type constants
const (
	EventTypeProspectCreated       = "ProspectCreated"
	EventTypeProspectUpdated       = "ProspectUpdated"
	EventTypeProspectStatusChanged = "ProspectStatusChanged"
	EventTypeProspectDeleted       = "ProspectDeleted"
)

// ProspectCreatedEvent is published when a new prospect is created
type ProspectCreatedEvent struct {
	shared.BaseDomainEvent
	ProspectID uuid.UUID `json:"prospect_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Company    string    `json:"company,omitempty"`
	Source     string    `json:"source,omitempty"`
}

// NewProspectCreatedEvent creates a new ProspectCreatedEvent
func NewProspectCreatedEvent(p *Prospect, actorID uuid.UUID) *ProspectCreatedEvent {
	return &ProspectCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProspectCreated, AggregateTypeProspect, p.ID, actorID),
		ProspectID:      p.ID,
		Name:            p.Name,
		Email:           p.Email,
		Company:         p.Company,
		Source:          p.Source,
	}
}

// ProspectUpdatedEvent is published when a prospect's profile is updated
type ProspectUpdatedEvent struct {
	shared.BaseDomainEvent
	ProspectID uuid.UUID `json:"prospect_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
}

// NewProspectUpdatedEvent creates a new ProspectUpdatedEvent
func NewProspectUpdatedEvent(p *Prospect, actorID uuid.UUID) *ProspectUpdatedEvent {
	return &ProspectUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProspectUpdated, AggregateTypeProspect, p.ID, actorID),
		ProspectID:      p.ID,
		Name:            p.Name,
		Email:           p.Email,
	}
}

// ProspectStatusChangedEvent is published when a prospect moves in the funnel
type ProspectStatusChangedEvent struct {
	shared.BaseDomainEvent
	ProspectID uuid.UUID `json:"prospect_id"`
	Name       string    `json:"name"`
	OldStatus  Status    `json:"old_status"`
	NewStatus  Status    `json:"new_status"`
}

// NewProspectStatusChangedEvent creates a new ProspectStatusChangedEvent
func NewProspectStatusChangedEvent(p *Prospect, oldStatus, newStatus Status, actorID uuid.UUID) *ProspectStatusChangedEvent {
	return &ProspectStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProspectStatusChanged, AggregateTypeProspect, p.ID, actorID),
		ProspectID:      p.ID,
		Name:            p.Name,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// ProspectDeletedEvent is published when a prospect is deleted
type ProspectDeletedEvent struct {
	shared.BaseDomainEvent
	ProspectID uuid.UUID `json:"prospect_id"`
	Name       string    `json:"name"`
}

// NewProspectDeletedEvent creates a new ProspectDeletedEvent
func NewProspectDeletedEvent(p *Prospect, actorID uuid.UUID) *ProspectDeletedEvent {
	return &ProspectDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProspectDeleted, AggregateTypeProspect, p.ID, actorID),
		ProspectID:      p.ID,
		Name:            p.Name,
	}
}
