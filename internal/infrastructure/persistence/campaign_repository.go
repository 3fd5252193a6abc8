package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/coldpitch/backend/internal/domain/campaign"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCampaignRepository implements campaign.Repository using GORM
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewGormCampaignRepository creates a new GormCampaignRepository
func NewGormCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// FindByID finds a campaign by its ID
func (r *GormCampaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	var model models.CampaignModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all campaigns matching the filter
func (r *GormCampaignRepository) FindAll(ctx context.Context, filter shared.Filter) ([]campaign.Campaign, error) {
	var campaignModels []models.CampaignModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CampaignModel{}), filter)

	if err := query.Find(&campaignModels).Error; err != nil {
		return nil, err
	}

	return toDomainCampaigns(campaignModels), nil
}

// FindByStatus finds campaigns in a lifecycle status
func (r *GormCampaignRepository) FindByStatus(ctx context.Context, status campaign.Status, filter shared.Filter) ([]campaign.Campaign, error) {
	var campaignModels []models.CampaignModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CampaignModel{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&campaignModels).Error; err != nil {
		return nil, err
	}

	return toDomainCampaigns(campaignModels), nil
}

// Save creates or updates a campaign
func (r *GormCampaignRepository) Save(ctx context.Context, c *campaign.Campaign) error {
	model := models.CampaignModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a campaign with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormCampaignRepository) SaveWithLock(ctx context.Context, c *campaign.Campaign) error {
	model := models.CampaignModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The campaign record has been modified by another transaction")
	}
	return nil
}

// Delete deletes a campaign
func (r *GormCampaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CampaignModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts campaigns matching the filter
func (r *GormCampaignRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CampaignModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCampaignRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, CampaignSortFields, "created_at")
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
func (r *GormCampaignRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR subject ILIKE ?", searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

func toDomainCampaigns(campaignModels []models.CampaignModel) []campaign.Campaign {
	campaigns := make([]campaign.Campaign, len(campaignModels))
	for i, model := range campaignModels {
		campaigns[i] = *model.ToDomain()
	}
	return campaigns
}

// Ensure GormCampaignRepository implements campaign.Repository
var _ campaign.Repository = (*GormCampaignRepository)(nil)
