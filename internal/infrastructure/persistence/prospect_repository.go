package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coldpitch/backend/internal/domain/prospect"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProspectRepository implements prospect.Repository using GORM
type GormProspectRepository struct {
	db *gorm.DB
}

// NewGormProspectRepository creates a new GormProspectRepository
func NewGormProspectRepository(db *gorm.DB) *GormProspectRepository {
	return &GormProspectRepository{db: db}
}

// FindByID finds a prospect by its ID
func (r *GormProspectRepository) FindByID(ctx context.Context, id uuid.UUID) (*prospect.Prospect, error) {
	var model models.ProspectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a prospect by email address
func (r *GormProspectRepository) FindByEmail(ctx context.Context, email string) (*prospect.Prospect, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.ProspectModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple prospects by their IDs
func (r *GormProspectRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]prospect.Prospect, error) {
	if len(ids) == 0 {
		return []prospect.Prospect{}, nil
	}

	var prospectModels []models.ProspectModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&prospectModels).Error; err != nil {
		return nil, err
	}

	return toDomainProspects(prospectModels), nil
}

// FindAll finds all prospects matching the filter
func (r *GormProspectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]prospect.Prospect, error) {
	var prospectModels []models.ProspectModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProspectModel{}), filter)

	if err := query.Find(&prospectModels).Error; err != nil {
		return nil, err
	}

	return toDomainProspects(prospectModels), nil
}

// FindByStatus finds prospects in a funnel status
func (r *GormProspectRepository) FindByStatus(ctx context.Context, status prospect.Status, filter shared.Filter) ([]prospect.Prospect, error) {
	var prospectModels []models.ProspectModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ProspectModel{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&prospectModels).Error; err != nil {
		return nil, err
	}

	return toDomainProspects(prospectModels), nil
}

// Save creates or updates a prospect
func (r *GormProspectRepository) Save(ctx context.Context, p *prospect.Prospect) error {
	model := models.ProspectModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a prospect with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormProspectRepository) SaveWithLock(ctx context.Context, p *prospect.Prospect) error {
	model := models.ProspectModelFromDomain(p)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", p.ID, p.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The prospect record has been modified by another transaction")
	}
	return nil
}

// SaveBatch creates or updates multiple prospects
func (r *GormProspectRepository) SaveBatch(ctx context.Context, prospects []*prospect.Prospect) error {
	if len(prospects) == 0 {
		return nil
	}
	prospectModels := make([]*models.ProspectModel, len(prospects))
	for i, p := range prospects {
		prospectModels[i] = models.ProspectModelFromDomain(p)
	}
	return r.db.WithContext(ctx).Save(prospectModels).Error
}

// Delete deletes a prospect
func (r *GormProspectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProspectModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts prospects matching the filter
func (r *GormProspectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProspectModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts prospects in a funnel status
func (r *GormProspectRepository) CountByStatus(ctx context.Context, status prospect.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProspectModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByEmail checks if a prospect with the given email exists
func (r *GormProspectRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProspectModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormProspectRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, ProspectSortFields, "date_added")
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
func (r *GormProspectRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR company ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "niche":
			query = query.Where("niche = ?", value)
		case "country":
			query = query.Where("country = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		case "mode_of_reachout":
			query = query.Where("mode_of_reachout = ?", value)
		case "has_socials":
			query = query.Where("has_socials = ?", value == true)
		}
	}

	return query
}

func toDomainProspects(prospectModels []models.ProspectModel) []prospect.Prospect {
	prospects := make([]prospect.Prospect, len(prospectModels))
	for i, model := range prospectModels {
		prospects[i] = *model.ToDomain()
	}
	return prospects
}

// Ensure GormProspectRepository implements prospect.Repository
var _ prospect.Repository = (*GormProspectRepository)(nil)
