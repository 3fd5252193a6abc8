package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coldpitch/backend/internal/domain/client"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProjectRepository implements client.ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by its ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all projects matching the filter
func (r *GormProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]client.Project, error) {
	var projectModels []models.ProjectModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProjectModel{}), filter)

	if err := query.Find(&projectModels).Error; err != nil {
		return nil, err
	}

	return toDomainProjects(projectModels), nil
}

// FindByClient finds all projects for a client
func (r *GormProjectRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]client.Project, error) {
	var projectModels []models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&projectModels).Error; err != nil {
		return nil, err
	}

	return toDomainProjects(projectModels), nil
}

// FindRenewingBetween finds active projects whose next renewal falls in the window
func (r *GormProjectRepository) FindRenewingBetween(ctx context.Context, from, to time.Time) ([]client.Project, error) {
	var projectModels []models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("active = ? AND next_renewal IS NOT NULL AND next_renewal >= ? AND next_renewal < ?",
			true, from, to).
		Order("next_renewal ASC").
		Find(&projectModels).Error; err != nil {
		return nil, err
	}

	return toDomainProjects(projectModels), nil
}

// FindActive finds all active projects
func (r *GormProjectRepository) FindActive(ctx context.Context) ([]client.Project, error) {
	var projectModels []models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&projectModels).Error; err != nil {
		return nil, err
	}

	return toDomainProjects(projectModels), nil
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, p *client.Project) error {
	model := models.ProjectModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a project with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormProjectRepository) SaveWithLock(ctx context.Context, p *client.Project) error {
	model := models.ProjectModelFromDomain(p)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", p.ID, p.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The project record has been modified by another transaction")
	}
	return nil
}

// Delete deletes a project
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProjectModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts projects matching the filter
func (r *GormProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProjectModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormProjectRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, ProjectSortFields, "created_at")
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
func (r *GormProjectRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR client_name ILIKE ?", searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "cycle":
			query = query.Where("cycle = ?", value)
		case "renewal_status":
			query = query.Where("renewal_status = ?", value)
		case "active":
			query = query.Where("active = ?", value == true)
		}
	}

	return query
}

func toDomainProjects(projectModels []models.ProjectModel) []client.Project {
	projects := make([]client.Project, len(projectModels))
	for i, model := range projectModels {
		projects[i] = *model.ToDomain()
	}
	return projects
}

// Ensure GormProjectRepository implements client.ProjectRepository
var _ client.ProjectRepository = (*GormProjectRepository)(nil)
