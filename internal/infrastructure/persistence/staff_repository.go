package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/domain/staff"
	"github.com/coldpitch/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStaffRepository implements staff.Repository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// FindByID finds a staff member by ID
func (r *GormStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a staff member by email
func (r *GormStaffRepository) FindByEmail(ctx context.Context, email string) (*staff.Staff, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.StaffModel
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

// FindByAuthUserID finds the staff member linked to an auth user
func (r *GormStaffRepository) FindByAuthUserID(ctx context.Context, authUserID uuid.UUID) (*staff.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).
		Where("auth_user_id = ?", authUserID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all staff matching the filter
func (r *GormStaffRepository) FindAll(ctx context.Context, filter shared.Filter) ([]staff.Staff, error) {
	var staffModels []models.StaffModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StaffModel{}), filter)

	if err := query.Find(&staffModels).Error; err != nil {
		return nil, err
	}

	members := make([]staff.Staff, len(staffModels))
	for i, model := range staffModels {
		members[i] = *model.ToDomain()
	}
	return members, nil
}

// Save creates or updates a staff member
func (r *GormStaffRepository) Save(ctx context.Context, s *staff.Staff) error {
	model := models.StaffModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a staff member with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormStaffRepository) SaveWithLock(ctx context.Context, s *staff.Staff) error {
	model := models.StaffModelFromDomain(s)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", s.ID, s.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The staff record has been modified by another transaction")
	}
	return nil
}

// Delete deletes a staff member
func (r *GormStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StaffModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts staff matching the filter
func (r *GormStaffRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.StaffModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormStaffRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, StaffSortFields, "name")
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
func (r *GormStaffRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "role":
			query = query.Where("role = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "has_credentials":
			if value == true {
				query = query.Where("auth_user_id IS NOT NULL")
			} else {
				query = query.Where("auth_user_id IS NULL")
			}
		}
	}

	return query
}

// Ensure GormStaffRepository implements staff.Repository
var _ staff.Repository = (*GormStaffRepository)(nil)
