package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/coldpitch/backend/internal/domain/activity"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormActivityLogRepository implements activity.Repository using GORM.
// The table is append-only; entries are only ever removed by retention pruning.
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Append writes a log entry
func (r *GormActivityLogRepository) Append(ctx context.Context, entry *activity.Log) error {
	model := models.ActivityLogModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindAll finds entries matching the filter
func (r *GormActivityLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]activity.Log, error) {
	var logModels []models.ActivityLogModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ActivityLogModel{}), filter)

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}

	return toDomainLogs(logModels), nil
}

// FindByStaff finds entries written by a staff member
func (r *GormActivityLogRepository) FindByStaff(ctx context.Context, staffID uuid.UUID, filter shared.Filter) ([]activity.Log, error) {
	var logModels []models.ActivityLogModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ActivityLogModel{}).
			Where("staff_id = ?", staffID),
		filter,
	)

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}

	return toDomainLogs(logModels), nil
}

// Count counts entries matching the filter
func (r *GormActivityLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ActivityLogModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteOlderThan prunes entries older than the cutoff
func (r *GormActivityLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.ActivityLogModel{}, "created_at < ?", cutoff)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// applyFilter applies filter options to the query
func (r *GormActivityLogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, ActivityLogSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormActivityLogRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("staff_name ILIKE ? OR action ILIKE ?", searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "action":
			query = query.Where("action = ?", value)
		case "target_type":
			query = query.Where("target_type = ?", value)
		case "target_id":
			query = query.Where("target_id = ?", value)
		case "since":
			query = query.Where("created_at >= ?", value)
		}
	}

	return query
}

func toDomainLogs(logModels []models.ActivityLogModel) []activity.Log {
	logs := make([]activity.Log, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs
}

// Ensure GormActivityLogRepository implements activity.Repository
var _ activity.Repository = (*GormActivityLogRepository)(nil)
