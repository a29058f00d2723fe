package contribution

import (
	"github.com/ManuelReschke/juntagrico-contribution/app/models"
)

// Config toggles the optional pricing and eligibility features
type Config struct {
	// MultiplierPricing applies option multipliers when no condition matches.
	// When off, such parts are priced at their nominal price.
	MultiplierPricing bool
	// EligibilityCutoffs applies the round's creation and cancellation cutoffs.
	EligibilityCutoffs bool
	Currency           string
}

// DefaultConfig enables every feature
func DefaultConfig() Config {
	return Config{
		MultiplierPricing:  true,
		EligibilityCutoffs: true,
		Currency:           "CHF",
	}
}

// ConfigFromSettings maps the stored application settings
func ConfigFromSettings(s *models.AppSettings) Config {
	if s == nil {
		return DefaultConfig()
	}
	return Config{
		MultiplierPricing:  s.MultiplierPricingEnabled,
		EligibilityCutoffs: s.EligibilityCutoffsEnabled,
		Currency:           s.Currency,
	}
}

// ConfigProvider returns the configuration for one operation
type ConfigProvider func() Config

// SettingsConfig reads the current application settings
func SettingsConfig() Config {
	return ConfigFromSettings(models.GetAppSettings())
}

// StaticConfig always returns cfg
func StaticConfig(cfg Config) ConfigProvider {
	return func() Config { return cfg }
}
