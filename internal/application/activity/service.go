package activity

import (
	"context"
	"time"

	"github.com/coldpitch/backend/internal/domain/activity"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ListFilter carries list query parameters
type ListFilter struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	Action     string `form:"action"`
	TargetType string `form:"target_type"`
}

// LogResponse is a single audit trail entry
type LogResponse struct {
	ID         uuid.UUID `json:"id"`
	StaffID    uuid.UUID `json:"staff_id"`
	StaffName  string    `json:"staff_name"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toLogResponse(l *activity.Log) LogResponse {
	return LogResponse{
		ID:         l.ID,
		StaffID:    l.StaffID,
		StaffName:  l.StaffName,
		Action:     l.Action,
		TargetType: l.TargetType,
		TargetID:   l.TargetID,
		Detail:     l.Detail,
		CreatedAt:  l.CreatedAt,
	}
}

// ActivityService answers audit trail queries
type ActivityService struct {
	repo activity.Repository
}

// NewActivityService creates a new activity query service
func NewActivityService(repo activity.Repository) *ActivityService {
	return &ActivityService{repo: repo}
}

// ListActivity lists audit entries, newest first
func (s *ActivityService) ListActivity(ctx context.Context, filter ListFilter) (*shared.Paginated[LogResponse], error) {
	f := s.buildFilter(filter)

	entries, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(toResponses(entries), total, f.Page, f.PageSize)
	return &page, nil
}

// ListStaffActivity lists audit entries for one staff member
func (s *ActivityService) ListStaffActivity(ctx context.Context, staffID uuid.UUID, filter ListFilter) (*shared.Paginated[LogResponse], error) {
	f := s.buildFilter(filter)

	entries, err := s.repo.FindByStaff(ctx, staffID, f)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(toResponses(entries), int64(len(entries)), f.Page, f.PageSize)
	return &page, nil
}

// PruneOlderThan removes audit entries past the retention cutoff
func (s *ActivityService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, cutoff)
}

func (s *ActivityService) buildFilter(filter ListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.Action != "" {
		f.Filters["action"] = filter.Action
	}
	if filter.TargetType != "" {
		f.Filters["target_type"] = filter.TargetType
	}
	return f
}

func toResponses(entries []activity.Log) []LogResponse {
	items := make([]LogResponse, len(entries))
	for i := range entries {
		items[i] = toLogResponse(&entries[i])
	}
	return items
}
