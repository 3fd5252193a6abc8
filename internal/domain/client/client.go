package client

import (
	"strings"
	"time"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the status of a client relationship
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Client is the aggregate root for a converted, paying customer
type Client struct {
	shared.BaseAggregateRoot
	Name    string
	Email   string
	Phone   string
	Company string
	Status  Status
	Notes   string
}

// NewClient creates a new active client
func NewClient(name, email, phone, company string, actorID uuid.UUID) (*Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name is required")
	}

	c := &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Phone:             phone,
		Company:           company,
		Status:            StatusActive,
	}

	c.AddDomainEvent(NewClientCreatedEvent(c, actorID))

	return c, nil
}

// Update updates the client's profile fields
func (c *Client) Update(name, email, phone, company, notes string, actorID uuid.UUID) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name is required")
	}

	c.Name = strings.TrimSpace(name)
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Phone = phone
	c.Company = company
	c.Notes = notes
	c.touch()

	c.AddDomainEvent(NewClientUpdatedEvent(c, actorID))

	return nil
}

// Deactivate marks the client relationship as inactive
func (c *Client) Deactivate(actorID uuid.UUID) {
	if c.Status == StatusInactive {
		return
	}
	c.Status = StatusInactive
	c.touch()
	c.AddDomainEvent(NewClientStatusChangedEvent(c, StatusActive, StatusInactive, actorID))
}

// Reactivate marks the client relationship as active again
func (c *Client) Reactivate(actorID uuid.UUID) {
	if c.Status == StatusActive {
		return
	}
	c.Status = StatusActive
	c.touch()
	c.AddDomainEvent(NewClientStatusChangedEvent(c, StatusInactive, StatusActive, actorID))
}

// MarkDeleted records the deletion event before the aggregate is removed
func (c *Client) MarkDeleted(actorID uuid.UUID) {
	c.AddDomainEvent(NewClientDeletedEvent(c, actorID))
}

func (c *Client) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
