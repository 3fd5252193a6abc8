package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/domain/staff"
	"github.com/coldpitch/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuthUserRepository implements staff.AuthUserRepository using GORM
type GormAuthUserRepository struct {
	db *gorm.DB
}

// NewGormAuthUserRepository creates a new GormAuthUserRepository
func NewGormAuthUserRepository(db *gorm.DB) *GormAuthUserRepository {
	return &GormAuthUserRepository{db: db}
}

// FindByID finds an auth user by ID
func (r *GormAuthUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.AuthUser, error) {
	var model models.AuthUserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an auth user by email
func (r *GormAuthUserRepository) FindByEmail(ctx context.Context, email string) (*staff.AuthUser, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.AuthUserModel
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

// Save creates or updates an auth user
func (r *GormAuthUserRepository) Save(ctx context.Context, u *staff.AuthUser) error {
	model := models.AuthUserModelFromDomain(u)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an auth user
func (r *GormAuthUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AuthUserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByEmail checks whether an auth user exists for the email
func (r *GormAuthUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AuthUserModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormAuthUserRepository implements staff.AuthUserRepository
var _ staff.AuthUserRepository = (*GormAuthUserRepository)(nil)
