package models

import (
	"time"

	"github.com/coldpitch/backend/internal/domain/staff"
	"github.com/google/uuid"
)

// StaffModel is the persistence model for the Staff domain entity.
type StaffModel struct {
	AggregateModel
	Name            string       `gorm:"type:varchar(200);not null"`
	Email           string       `gorm:"type:varchar(200);not null;uniqueIndex"`
	Role            staff.Role   `gorm:"type:varchar(20);not null;default:'Agent'"`
	Status          staff.Status `gorm:"type:varchar(20);not null;default:'Active';index"`
	DutyDaysJSON    string       `gorm:"column:duty_days;type:jsonb;default:'[]'"`
	LoginTimesJSON  string       `gorm:"column:login_times;type:jsonb;default:'[]'"`
	TotalLeadsAdded int          `gorm:"not null;default:0"`
	AuthUserID      *uuid.UUID   `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (StaffModel) TableName() string {
	return "staff"
}

// ToDomain converts the persistence model to a domain Staff entity.
func (m *StaffModel) ToDomain() *staff.Staff {
	s := &staff.Staff{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		Role:              m.Role,
		Status:            m.Status,
		DutyDays:          []string{},
		LoginTimes:        []time.Time{},
		TotalLeadsAdded:   m.TotalLeadsAdded,
		AuthUserID:        m.AuthUserID,
	}

	unmarshalColumn(m.DutyDaysJSON, &s.DutyDays)
	unmarshalColumn(m.LoginTimesJSON, &s.LoginTimes)

	return s
}

// FromDomain populates the persistence model from a domain Staff entity.
func (m *StaffModel) FromDomain(s *staff.Staff) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Email = s.Email
	m.Role = s.Role
	m.Status = s.Status
	m.DutyDaysJSON = marshalColumn(s.DutyDays, "[]")
	m.LoginTimesJSON = marshalColumn(s.LoginTimes, "[]")
	m.TotalLeadsAdded = s.TotalLeadsAdded
	m.AuthUserID = s.AuthUserID
}

// StaffModelFromDomain creates a new persistence model from a domain Staff entity.
func StaffModelFromDomain(s *staff.Staff) *StaffModel {
	m := &StaffModel{}
	m.FromDomain(s)
	return m
}

// AuthUserModel is the persistence model for the AuthUser domain entity.
type AuthUserModel struct {
	AggregateModel
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(200);not null"`
	LastLoginAt  *time.Time `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (AuthUserModel) TableName() string {
	return "auth_users"
}

// ToDomain converts the persistence model to a domain AuthUser entity.
func (m *AuthUserModel) ToDomain() *staff.AuthUser {
	return &staff.AuthUser{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain AuthUser entity.
func (m *AuthUserModel) FromDomain(u *staff.AuthUser) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.LastLoginAt = u.LastLoginAt
}

// AuthUserModelFromDomain creates a new persistence model from a domain AuthUser entity.
func AuthUserModelFromDomain(u *staff.AuthUser) *AuthUserModel {
	m := &AuthUserModel{}
	m.FromDomain(u)
	return m
}
