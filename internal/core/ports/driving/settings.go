package driving

import "github.com/custodia-labs/invoicename/internal/core/domain"

// SettingsService resolves and persists application settings.
type SettingsService interface {
	// Resolve builds Settings with precedence flags > environment >
	// config file > built-in default. flags holds only explicitly set keys.
	Resolve(flags map[string]string) (domain.Settings, error)

	// Set validates and persists one key in the config file.
	Set(key, value string) error

	// Stored returns the values present in the config file.
	Stored() map[string]string

	// Path returns the config file path.
	Path() string
}
