package models

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	SettingSiteTitle                 = "site_title"
	SettingCurrency                  = "currency"
	SettingMultiplierPricingEnabled  = "multiplier_pricing_enabled"
	SettingEligibilityCutoffsEnabled = "eligibility_cutoffs_enabled"
)

// Setting is a single key/value row of the settings table
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null" json:"type" validate:"required"` // string, boolean
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppSettings are the runtime settings editable by administrators
type AppSettings struct {
	SiteTitle                 string `json:"site_title" validate:"required,min=1,max=255"`
	Currency                  string `json:"currency" validate:"required,len=3,alpha"`
	MultiplierPricingEnabled  bool   `json:"multiplier_pricing_enabled"`
	EligibilityCutoffsEnabled bool   `json:"eligibility_cutoffs_enabled"`
}

var (
	appSettings *AppSettings
	settingsMu  sync.RWMutex
)

// DefaultAppSettings returns the settings used when the table is empty
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		SiteTitle:                 "Beitragsrunden",
		Currency:                  "CHF",
		MultiplierPricingEnabled:  true,
		EligibilityCutoffsEnabled: true,
	}
}

// GetAppSettings returns the settings loaded last, or the defaults
func GetAppSettings() *AppSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	if appSettings == nil {
		return DefaultAppSettings()
	}
	s := *appSettings
	return &s
}

// LoadSettings reads the settings table into memory
func LoadSettings(db *gorm.DB) error {
	loaded := DefaultAppSettings()

	var rows []Setting
	if err := db.Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for _, row := range rows {
		switch row.Key {
		case SettingSiteTitle:
			loaded.SiteTitle = row.Value
		case SettingCurrency:
			loaded.Currency = row.Value
		case SettingMultiplierPricingEnabled:
			loaded.MultiplierPricingEnabled = parseBool(row.Value, loaded.MultiplierPricingEnabled)
		case SettingEligibilityCutoffsEnabled:
			loaded.EligibilityCutoffsEnabled = parseBool(row.Value, loaded.EligibilityCutoffsEnabled)
		}
	}

	settingsMu.Lock()
	appSettings = loaded
	settingsMu.Unlock()
	return nil
}

// SaveSettings validates and persists the settings, then replaces the in-memory copy
func SaveSettings(db *gorm.DB, settings *AppSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	values := map[string]string{
		SettingSiteTitle:                 settings.SiteTitle,
		SettingCurrency:                  settings.Currency,
		SettingMultiplierPricingEnabled:  strconv.FormatBool(settings.MultiplierPricingEnabled),
		SettingEligibilityCutoffsEnabled: strconv.FormatBool(settings.EligibilityCutoffsEnabled),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			var row Setting
			err := tx.Where("setting_key = ?", key).First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				row = Setting{Key: key, Value: value, Type: settingType(key)}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to create setting %s: %w", key, err)
				}
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to query setting %s: %w", key, err)
			}
			row.Value = value
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("failed to update setting %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s := *settings
	settingsMu.Lock()
	appSettings = &s
	settingsMu.Unlock()
	return nil
}

func settingType(key string) string {
	switch key {
	case SettingMultiplierPricingEnabled, SettingEligibilityCutoffsEnabled:
		return "boolean"
	default:
		return "string"
	}
}

func parseBool(value string, def bool) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return b
}

// Validate validates the settings
func (s *AppSettings) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}
