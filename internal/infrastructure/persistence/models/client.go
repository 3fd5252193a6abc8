package models

import (
	"time"

	"github.com/coldpitch/backend/internal/domain/client"
	"github.com/coldpitch/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ClientModel is the persistence model for the Client domain entity.
type ClientModel struct {
	AggregateModel
	Name    string        `gorm:"type:varchar(200);not null"`
	Email   string        `gorm:"type:varchar(200);index"`
	Phone   string        `gorm:"type:varchar(50)"`
	Company string        `gorm:"type:varchar(200)"`
	Status  client.Status `gorm:"type:varchar(20);not null;default:'Active';index"`
	Notes   string        `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *client.Client {
	return &client.Client{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Company:           m.Company,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *client.Client) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Company = c.Company
	m.Status = c.Status
	m.Notes = c.Notes
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity.
func ClientModelFromDomain(c *client.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// ProjectModel is the persistence model for the Project domain entity.
// Amount maps straight to a decimal column through Money's Valuer/Scanner;
// the currency is workspace-wide so only the amount is stored.
type ProjectModel struct {
	AggregateModel
	ClientID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	ClientName    string               `gorm:"type:varchar(200)"`
	Name          string               `gorm:"type:varchar(200);not null"`
	Amount        valueobject.Money    `gorm:"type:decimal(18,4);not null;default:0"`
	StartDate     time.Time            `gorm:"type:timestamptz;not null"`
	Cycle         client.RenewalCycle  `gorm:"type:varchar(20);not null;default:'None'"`
	NextRenewal   *time.Time           `gorm:"type:timestamptz;index"`
	RenewalStatus client.RenewalStatus `gorm:"type:varchar(20);not null;default:'Pending'"`
	Active        bool                 `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project entity.
func (m *ProjectModel) ToDomain() *client.Project {
	return &client.Project{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ClientID:          m.ClientID,
		ClientName:        m.ClientName,
		Name:              m.Name,
		Amount:            m.Amount,
		StartDate:         m.StartDate,
		Cycle:             m.Cycle,
		NextRenewal:       m.NextRenewal,
		RenewalStatus:     m.RenewalStatus,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Project entity.
func (m *ProjectModel) FromDomain(p *client.Project) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.ClientID = p.ClientID
	m.ClientName = p.ClientName
	m.Name = p.Name
	m.Amount = p.Amount
	m.StartDate = p.StartDate
	m.Cycle = p.Cycle
	m.NextRenewal = p.NextRenewal
	m.RenewalStatus = p.RenewalStatus
	m.Active = p.Active
}

// ProjectModelFromDomain creates a new persistence model from a domain Project entity.
func ProjectModelFromDomain(p *client.Project) *ProjectModel {
	m := &ProjectModel{}
	m.FromDomain(p)
	return m
}
