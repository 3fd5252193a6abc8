package models

import (
	"time"

	"github.com/coldpitch/backend/internal/domain/activity"
	"github.com/google/uuid"
)

// ActivityLogModel is the persistence model for audit trail entries.
// Entries are append-only so there is no version or updated timestamp.
type ActivityLogModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	StaffID    uuid.UUID `gorm:"type:uuid;index"`
	StaffName  string    `gorm:"type:varchar(200)"`
	Action     string    `gorm:"type:varchar(100);not null;index"`
	TargetType string    `gorm:"type:varchar(50);index"`
	TargetID   uuid.UUID `gorm:"type:uuid;index"`
	Detail     string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null;index"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts the persistence model to a domain Log entry.
func (m *ActivityLogModel) ToDomain() *activity.Log {
	return &activity.Log{
		ID:         m.ID,
		StaffID:    m.StaffID,
		StaffName:  m.StaffName,
		Action:     m.Action,
		TargetType: m.TargetType,
		TargetID:   m.TargetID,
		Detail:     m.Detail,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Log entry.
func (m *ActivityLogModel) FromDomain(l *activity.Log) {
	m.ID = l.ID
	m.StaffID = l.StaffID
	m.StaffName = l.StaffName
	m.Action = l.Action
	m.TargetType = l.TargetType
	m.TargetID = l.TargetID
	m.Detail = l.Detail
	m.CreatedAt = l.CreatedAt
}

// ActivityLogModelFromDomain creates a new persistence model from a domain Log entry.
func ActivityLogModelFromDomain(l *activity.Log) *ActivityLogModel {
	m := &ActivityLogModel{}
	m.FromDomain(l)
	return m
}
