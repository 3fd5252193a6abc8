package client

import (
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeClient  = "Client"
	AggregateTypeProject = "Project"
)

// Event type constants
const (
	EventTypeClientCreated       = "ClientCreated"
	EventTypeClientUpdated       = "ClientUpdated"
	EventTypeClientStatusChanged = "ClientStatusChanged"
	EventTypeClientDeleted       = "ClientDeleted"
	EventTypeProjectCreated      = "ProjectCreated"
	EventTypeProjectDeactivated  = "ProjectDeactivated"
	EventTypeProjectDeleted      = "ProjectDeleted"
	EventTypeRenewalPaid         = "RenewalPaid"
)

// ClientCreatedEvent is published when a new client is created
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
}

// NewClientCreatedEvent creates a new ClientCreatedEvent
func NewClientCreatedEvent(c *Client, actorID uuid.UUID) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCreated, AggregateTypeClient, c.ID, actorID),
		ClientID:        c.ID,
		Name:            c.Name,
	}
}

// ClientUpdatedEvent is published when a client's profile is updated
type ClientUpdatedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
}

// NewClientUpdatedEvent creates a new ClientUpdatedEvent
func NewClientUpdatedEvent(c *Client, actorID uuid.UUID) *ClientUpdatedEvent {
	return &ClientUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientUpdated, AggregateTypeClient, c.ID, actorID),
		ClientID:        c.ID,
		Name:            c.Name,
	}
}

// ClientStatusChangedEvent is published when a client's status changes
type ClientStatusChangedEvent struct {
	shared.BaseDomainEvent
	ClientID  uuid.UUID `json:"client_id"`
	Name      string    `json:"name"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
}

// NewClientStatusChangedEvent creates a new ClientStatusChangedEvent
func NewClientStatusChangedEvent(c *Client, oldStatus, newStatus Status, actorID uuid.UUID) *ClientStatusChangedEvent {
	return &ClientStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientStatusChanged, AggregateTypeClient, c.ID, actorID),
		ClientID:        c.ID,
		Name:            c.Name,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// ClientDeletedEvent is published when a client is deleted
type ClientDeletedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
}

// NewClientDeletedEvent creates a new ClientDeletedEvent
func NewClientDeletedEvent(c *Client, actorID uuid.UUID) *ClientDeletedEvent {
	return &ClientDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientDeleted, AggregateTypeClient, c.ID, actorID),
		ClientID:        c.ID,
		Name:            c.Name,
	}
}

// ProjectCreatedEvent is published when a new project is created
type ProjectCreatedEvent struct {
	shared.BaseDomainEvent
	ProjectID  uuid.UUID `json:"project_id"`
	ClientID   uuid.UUID `json:"client_id"`
	Name       string    `json:"name"`
	ClientName string    `json:"client_name"`
}

// NewProjectCreatedEvent creates a new ProjectCreatedEvent
func NewProjectCreatedEvent(p *Project, actorID uuid.UUID) *ProjectCreatedEvent {
	return &ProjectCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectCreated, AggregateTypeProject, p.ID, actorID),
		ProjectID:       p.ID,
		ClientID:        p.ClientID,
		Name:            p.Name,
		ClientName:      p.ClientName,
	}
}

// ProjectDeactivatedEvent is published when a project is stopped
type ProjectDeactivatedEvent struct {
	shared.BaseDomainEvent
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
}

// NewProjectDeactivatedEvent creates a new ProjectDeactivatedEvent
func NewProjectDeactivatedEvent(p *Project, actorID uuid.UUID) *ProjectDeactivatedEvent {
	return &ProjectDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectDeactivated, AggregateTypeProject, p.ID, actorID),
		ProjectID:       p.ID,
		Name:            p.Name,
	}
}

// ProjectDeletedEvent is published when a project is deleted
type ProjectDeletedEvent struct {
	shared.BaseDomainEvent
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
}

// NewProjectDeletedEvent creates a new ProjectDeletedEvent
func NewProjectDeletedEvent(p *Project, actorID uuid.UUID) *ProjectDeletedEvent {
	return &ProjectDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectDeleted, AggregateTypeProject, p.ID, actorID),
		ProjectID:       p.ID,
		Name:            p.Name,
	}
}

// RenewalPaidEvent is published when a renewal period is settled
type RenewalPaidEvent struct {
	shared.BaseDomainEvent
	ProjectID   uuid.UUID `json:"project_id"`
	Name        string    `json:"name"`
	ClientName  string    `json:"client_name"`
	NextRenewal string    `json:"next_renewal,omitempty"`
}

// NewRenewalPaidEvent creates a new RenewalPaidEvent
func NewRenewalPaidEvent(p *Project, actorID uuid.UUID) *RenewalPaidEvent {
	evt := &RenewalPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRenewalPaid, AggregateTypeProject, p.ID, actorID),
		ProjectID:       p.ID,
		Name:            p.Name,
		ClientName:      p.ClientName,
	}
	if p.NextRenewal != nil {
		evt.NextRenewal = p.NextRenewal.Format("2006-01-02")
	}
	return evt
}
