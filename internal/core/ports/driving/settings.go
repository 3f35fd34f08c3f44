package driving

import "github.com/custodia-labs/errcorpus/internal/core/domain"

// SettingsService resolves and stores application settings.
type SettingsService interface {
	// Get returns the effective settings: environment over file over defaults.
	Get() (*domain.AppSettings, error)

	// Set stores a single setting in the configuration file.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string
}
