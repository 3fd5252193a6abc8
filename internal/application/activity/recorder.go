package activity

import (
	"context"
	"encoding/json"

	"github.com/coldpitch/backend/internal/domain/activity"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/domain/staff"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder subscribes to domain events and appends audit entries.
// Recording is best-effort: a failed write is logged and dropped, it
// never propagates back into the operation that raised the event.
type Recorder struct {
	repo      activity.Repository
	staffRepo staff.Repository
	logger    *zap.Logger
}

// NewRecorder creates a new activity recorder
func NewRecorder(repo activity.Repository, staffRepo staff.Repository, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{repo: repo, staffRepo: staffRepo, logger: logger}
}

// EventTypes returns an empty slice so the recorder receives all events
func (r *Recorder) EventTypes() []string {
	return nil
}

// Handle writes one audit entry per domain event
func (r *Recorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	staffName := "System"
	actorID := event.ActorID()
	if actorID != uuid.Nil && r.staffRepo != nil {
		if member, err := r.staffRepo.FindByID(ctx, actorID); err == nil && member != nil {
			staffName = member.Name
		}
	}

	entry := activity.NewLog(
		actorID,
		staffName,
		event.EventType(),
		event.AggregateType(),
		event.AggregateID(),
		eventDetail(event),
	)

	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Warn("Failed to append activity log entry",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err))
	}

	// never fail the publishing side
	return nil
}

// eventDetail serializes the event payload for the audit trail.
// Credentials-related events are stored without their payload.
func eventDetail(event shared.DomainEvent) string {
	switch event.EventType() {
	case staff.EventTypeAuthUserDeleted, staff.EventTypeCredentialsSent:
		return ""
	}
	data, err := json.Marshal(event)
	if err != nil {
		return ""
	}
	return string(data)
}
