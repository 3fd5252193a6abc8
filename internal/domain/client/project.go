package client

import (
	"strings"
	"time"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// RenewalCycle represents how often a project renews
type RenewalCycle string

const (
	CycleMonthly   RenewalCycle = "Monthly"
	CycleQuarterly RenewalCycle = "Quarterly"
	CycleYearly    RenewalCycle = "Yearly"
	CycleNone      RenewalCycle = "None"
)

// RenewalStatus represents the payment state of the current renewal period
type RenewalStatus string

const (
	RenewalPending RenewalStatus = "Pending"
	RenewalPaid    RenewalStatus = "Paid"
	RenewalOverdue RenewalStatus = "Overdue"
)

// Project is the aggregate root for recurring client work
type Project struct {
	shared.BaseAggregateRoot
	ClientID      uuid.UUID
	ClientName    string
	Name          string
	Amount        valueobject.Money
	StartDate     time.Time
	Cycle         RenewalCycle
	NextRenewal   *time.Time
	RenewalStatus RenewalStatus
	Active        bool
}

// NewProject creates a new active project. For renewing cycles the first
// renewal date is one cycle after the start date.
func NewProject(clientID uuid.UUID, clientName, name string, amount valueobject.Money, startDate time.Time, cycle RenewalCycle, actorID uuid.UUID) (*Project, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Project amount cannot be negative")
	}
	if err := validateCycle(cycle); err != nil {
		return nil, err
	}

	p := &Project{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		ClientName:        clientName,
		Name:              strings.TrimSpace(name),
		Amount:            amount,
		StartDate:         startDate,
		Cycle:             cycle,
		RenewalStatus:     RenewalPending,
		Active:            true,
	}
	if cycle != CycleNone {
		next := advanceByCycle(startDate, cycle)
		p.NextRenewal = &next
	}

	p.AddDomainEvent(NewProjectCreatedEvent(p, actorID))

	return p, nil
}

// Update updates the project's details
func (p *Project) Update(name string, amount valueobject.Money, cycle RenewalCycle, actorID uuid.UUID) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Project name is required")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Project amount cannot be negative")
	}
	if err := validateCycle(cycle); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Amount = amount
	if cycle != p.Cycle {
		p.Cycle = cycle
		if cycle == CycleNone {
			p.NextRenewal = nil
		} else {
			base := time.Now()
			if p.NextRenewal != nil {
				base = *p.NextRenewal
			}
			next := advanceByCycle(base, cycle)
			p.NextRenewal = &next
		}
	}
	p.touch()

	return nil
}

// MarkRenewalPaid settles the current renewal period and schedules the next one
func (p *Project) MarkRenewalPaid(actorID uuid.UUID) error {
	if p.Cycle == CycleNone || p.NextRenewal == nil {
		return shared.NewDomainError("NO_RENEWAL", "Project does not renew")
	}
	if !p.Active {
		return shared.NewDomainError("INVALID_STATE", "Inactive projects cannot be renewed")
	}

	p.RenewalStatus = RenewalPaid
	next := advanceByCycle(*p.NextRenewal, p.Cycle)
	p.NextRenewal = &next
	p.touch()

	p.AddDomainEvent(NewRenewalPaidEvent(p, actorID))

	return nil
}

// MarkRenewalOverdue flags a renewal whose date has passed without payment
func (p *Project) MarkRenewalOverdue(asOf time.Time) {
	if p.Cycle == CycleNone || p.NextRenewal == nil || !p.Active {
		return
	}
	if asOf.After(*p.NextRenewal) && p.RenewalStatus != RenewalPaid {
		p.RenewalStatus = RenewalOverdue
		p.touch()
	}
}

// RenewsWithin reports whether the next renewal falls inside the window
func (p *Project) RenewsWithin(from time.Time, window time.Duration) bool {
	if p.NextRenewal == nil || !p.Active {
		return false
	}
	return !p.NextRenewal.Before(from) && p.NextRenewal.Before(from.Add(window))
}

// Deactivate stops the project and its renewals
func (p *Project) Deactivate(actorID uuid.UUID) {
	if !p.Active {
		return
	}
	p.Active = false
	p.touch()
	p.AddDomainEvent(NewProjectDeactivatedEvent(p, actorID))
}

// MarkDeleted records the deletion event before the aggregate is removed
func (p *Project) MarkDeleted(actorID uuid.UUID) {
	p.AddDomainEvent(NewProjectDeletedEvent(p, actorID))
}

func (p *Project) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func advanceByCycle(t time.Time, cycle RenewalCycle) time.Time {
	switch cycle {
	case CycleMonthly:
		return t.AddDate(0, 1, 0)
	case CycleQuarterly:
		return t.AddDate(0, 3, 0)
	case CycleYearly:
		return t.AddDate(1, 0, 0)
	}
	return t
}

func validateCycle(cycle RenewalCycle) error {
	switch cycle {
	case CycleMonthly, CycleQuarterly, CycleYearly, CycleNone:
		return nil
	}
	return shared.NewDomainError("INVALID_CYCLE", "Invalid renewal cycle")
}
