package models

import (
	"github.com/coldpitch/backend/internal/domain/settings"
)

// SettingsModel is the persistence model for the workspace settings document.
// Each section is its own jsonb column so new fields never need a migration.
type SettingsModel struct {
	AggregateModel
	ProfileJSON       string `gorm:"column:profile;type:jsonb;default:'{}'"`
	NotificationsJSON string `gorm:"column:notifications;type:jsonb;default:'{}'"`
	TeamJSON          string `gorm:"column:team;type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (SettingsModel) TableName() string {
	return "workspace_settings"
}

// ToDomain converts the persistence model to the domain Settings document.
func (m *SettingsModel) ToDomain() *settings.Settings {
	s := &settings.Settings{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
	}

	unmarshalColumn(m.ProfileJSON, &s.Profile)
	unmarshalColumn(m.NotificationsJSON, &s.Notifications)
	unmarshalColumn(m.TeamJSON, &s.Team)

	return s
}

// FromDomain populates the persistence model from the domain Settings document.
func (m *SettingsModel) FromDomain(s *settings.Settings) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.ProfileJSON = marshalColumn(s.Profile, "{}")
	m.NotificationsJSON = marshalColumn(s.Notifications, "{}")
	m.TeamJSON = marshalColumn(s.Team, "{}")
}

// SettingsModelFromDomain creates a new persistence model from the domain Settings document.
func SettingsModelFromDomain(s *settings.Settings) *SettingsModel {
	m := &SettingsModel{}
	m.FromDomain(s)
	return m
}
