package activity

import (
	"context"
	"time"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Log is a single audit trail entry. Entries are immutable once written.
type Log struct {
	ID         uuid.UUID
	StaffID    uuid.UUID
	StaffName  string
	Action     string
	TargetType string
	TargetID   uuid.UUID
	Detail     string
	CreatedAt  time.Time
}

// NewLog creates an audit entry
func NewLog(staffID uuid.UUID, staffName, action, targetType string, targetID uuid.UUID, detail string) *Log {
	return &Log{
		ID:         uuid.New(),
		StaffID:    staffID,
		StaffName:  staffName,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
}

// Repository defines the interface for activity log persistence
type Repository interface {
	// Append writes a log entry
	Append(ctx context.Context, entry *Log) error

	// FindAll finds entries matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Log, error)

	// FindByStaff finds entries written by a staff member
	FindByStaff(ctx context.Context, staffID uuid.UUID, filter shared.Filter) ([]Log, error)

	// Count counts entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// DeleteOlderThan prunes entries older than the cutoff
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
