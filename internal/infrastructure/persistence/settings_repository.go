package persistence

import (
	"context"
	"errors"

	"github.com/coldpitch/backend/internal/domain/settings"
	"github.com/coldpitch/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSettingsRepository implements settings.Repository using GORM.
// The table holds at most one row; Get returns nil when it is empty so
// the application layer can fall back to defaults.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get loads the settings document, or nil when none has been saved
func (r *GormSettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	var model models.SettingsModel
	if err := r.db.WithContext(ctx).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the settings document
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	model := models.SettingsModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormSettingsRepository implements settings.Repository
var _ settings.Repository = (*GormSettingsRepository)(nil)
