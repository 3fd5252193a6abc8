package models

import (
	"time"

	"github.com/coldpitch/backend/internal/domain/prospect"
)

// ProspectModel is the persistence model for the Prospect domain entity.
type ProspectModel struct {
	AggregateModel
	Name           string                `gorm:"type:varchar(200);not null"`
	Email          string                `gorm:"type:varchar(200);index"`
	Phone          string                `gorm:"type:varchar(50)"`
	Whatsapp       string                `gorm:"type:varchar(50)"`
	Company        string                `gorm:"type:varchar(200)"`
	Role           string                `gorm:"type:varchar(100)"`
	Website        string                `gorm:"type:varchar(200)"`
	Country        string                `gorm:"type:varchar(100)"`
	State          string                `gorm:"type:varchar(100)"`
	Niche          string                `gorm:"type:varchar(100)"`
	HasSocials     bool                  `gorm:"not null;default:false"`
	SocialsJSON    string                `gorm:"column:socials;type:jsonb;default:'{}'"`
	ModeOfReachout prospect.ReachoutMode `gorm:"type:varchar(20);not null;default:'Email'"`
	Status         prospect.Status       `gorm:"type:varchar(20);not null;default:'New';index"`
	TagsJSON       string                `gorm:"column:tags;type:jsonb;default:'[]'"`
	Source         string                `gorm:"type:varchar(200)"`
	GeneratedPitch string                `gorm:"type:text"`
	DateAdded      time.Time             `gorm:"not null"`
	LastActivity   time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProspectModel) TableName() string {
	return "prospects"
}

// ToDomain converts the persistence model to a domain Prospect entity.
func (m *ProspectModel) ToDomain() *prospect.Prospect {
	p := &prospect.Prospect{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Whatsapp:          m.Whatsapp,
		Company:           m.Company,
		Role:              m.Role,
		Website:           m.Website,
		Country:           m.Country,
		State:             m.State,
		Niche:             m.Niche,
		HasSocials:        m.HasSocials,
		ModeOfReachout:    m.ModeOfReachout,
		Status:            m.Status,
		Tags:              []string{},
		Source:            m.Source,
		GeneratedPitch:    m.GeneratedPitch,
		DateAdded:         m.DateAdded,
		LastActivity:      m.LastActivity,
	}

	unmarshalColumn(m.SocialsJSON, &p.Socials)
	unmarshalColumn(m.TagsJSON, &p.Tags)

	return p
}

// FromDomain populates the persistence model from a domain Prospect entity.
func (m *ProspectModel) FromDomain(p *prospect.Prospect) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Email = p.Email
	m.Phone = p.Phone
	m.Whatsapp = p.Whatsapp
	m.Company = p.Company
	m.Role = p.Role
	m.Website = p.Website
	m.Country = p.Country
	m.State = p.State
	m.Niche = p.Niche
	m.HasSocials = p.HasSocials
	m.SocialsJSON = marshalColumn(p.Socials, "{}")
	m.ModeOfReachout = p.ModeOfReachout
	m.Status = p.Status
	m.TagsJSON = marshalColumn(p.Tags, "[]")
	m.Source = p.Source
	m.GeneratedPitch = p.GeneratedPitch
	m.DateAdded = p.DateAdded
	m.LastActivity = p.LastActivity
}

// ProspectModelFromDomain creates a new persistence model from a domain Prospect entity.
func ProspectModelFromDomain(p *prospect.Prospect) *ProspectModel {
	m := &ProspectModel{}
	m.FromDomain(p)
	return m
}
