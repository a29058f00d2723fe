package repository

import (
	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"gorm.io/gorm"
)

// settingRepository implements the SettingRepository interface on top of
// the in-memory copy kept by the models package
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository instance
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Get returns the settings loaded last
func (r *settingRepository) Get() (*models.AppSettings, error) {
	return models.GetAppSettings(), nil
}

// Reload re-reads the settings table, picking up rows written by migrations
// or other instances
func (r *settingRepository) Reload() (*models.AppSettings, error) {
	if err := models.LoadSettings(r.db); err != nil {
		return nil, err
	}
	return models.GetAppSettings(), nil
}

// Save validates and persists settings
func (r *settingRepository) Save(settings *models.AppSettings) error {
	return models.SaveSettings(r.db, settings)
}
