package models

import (
	"time"

	"github.com/coldpitch/backend/internal/domain/campaign"
)

// CampaignModel is the persistence model for the Campaign domain entity.
type CampaignModel struct {
	AggregateModel
	Name           string          `gorm:"type:varchar(200);not null"`
	Subject        string          `gorm:"type:varchar(500)"`
	Body           string          `gorm:"type:text"`
	Status         campaign.Status `gorm:"type:varchar(20);not null;default:'Draft';index"`
	SentCount      int             `gorm:"not null;default:0"`
	OpenCount      int             `gorm:"not null;default:0"`
	ReplyCount     int             `gorm:"not null;default:0"`
	ConvertedCount int             `gorm:"not null;default:0"`
	SentAt         *time.Time
}

// TableName returns the table name for GORM
func (CampaignModel) TableName() string {
	return "campaigns"
}

// ToDomain converts the persistence model to a domain Campaign entity.
func (m *CampaignModel) ToDomain() *campaign.Campaign {
	return &campaign.Campaign{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Subject:           m.Subject,
		Body:              m.Body,
		Status:            m.Status,
		SentCount:         m.SentCount,
		OpenCount:         m.OpenCount,
		ReplyCount:        m.ReplyCount,
		ConvertedCount:    m.ConvertedCount,
		SentAt:            m.SentAt,
	}
}

// FromDomain populates the persistence model from a domain Campaign entity.
func (m *CampaignModel) FromDomain(c *campaign.Campaign) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Subject = c.Subject
	m.Body = c.Body
	m.Status = c.Status
	m.SentCount = c.SentCount
	m.OpenCount = c.OpenCount
	m.ReplyCount = c.ReplyCount
	m.ConvertedCount = c.ConvertedCount
	m.SentAt = c.SentAt
}

// CampaignModelFromDomain creates a new persistence model from a domain Campaign entity.
func CampaignModelFromDomain(c *campaign.Campaign) *CampaignModel {
	m := &CampaignModel{}
	m.FromDomain(c)
	return m
}
