package driven

// ConfigStore provides access to persisted configuration.
// Keys use dot notation; "extraction.workers" is the workers key of the
// [extraction] table.
type ConfigStore interface {
	// Get retrieves a value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Keys returns the stored keys, sorted.
	Keys() []string

	// Path returns the configuration file path, empty when not file backed.
	Path() string
}
