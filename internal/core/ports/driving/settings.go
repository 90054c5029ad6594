package driving

import "github.com/custodia-labs/pardis/internal/core/domain"

// SettingsService reads and writes application settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (*domain.Settings, error)

	// Set validates and persists a single key.
	Set(key, value string) error

	// Values returns every known key with its effective value.
	Values() (map[string]string, error)

	// Path returns the configuration file path.
	Path() string
}
