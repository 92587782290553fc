package driving

import "github.com/custodia-labs/finsim/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns current settings merged over defaults.
	Get() (domain.Settings, error)

	// Save validates and persists settings.
	Save(settings domain.Settings) error

	// Set updates a single setting by its config key, parsing value.
	Set(key, value string) error

	// Reset removes a single setting, restoring its default.
	Reset(key string) error

	// Keys returns all recognised setting keys.
	Keys() []string
}
