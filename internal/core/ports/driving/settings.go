package driving

import "github.com/custodia-labs/sercha-ocr/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses and stores a single value by its config key.
	Set(key, value string) error

	// Keys returns every recognised config key in display order.
	Keys() []string

	// Validate checks if current settings are usable by the engines.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
