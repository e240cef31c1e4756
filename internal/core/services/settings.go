package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driven"
	"github.com/custodia-labs/invoicename/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// envNames lists the environment variables read for each key, in order of
// preference. The PDF_* names are the ones earlier releases documented.
var envNames = map[string][]string{
	domain.KeyInputPath:      {"INVOICENAME_INPUT_PATH", "PDF_INPUT_PATH"},
	domain.KeyOutputPath:     {"INVOICENAME_OUTPUT_PATH", "PDF_OUTPUT_PATH"},
	domain.KeyFilenameFormat: {"INVOICENAME_FILENAME_FORMAT", "PDF_FILENAME_FORMAT"},
	domain.KeyMaxNameLength:  {"INVOICENAME_NAME_MAXLEN", "PDF_CLIENT_NAME_MAXLEN"},
	domain.KeyLookAhead:      {"INVOICENAME_LOOKAHEAD"},
	domain.KeySuffixFallback: {"INVOICENAME_SUFFIX_FALLBACK"},
	domain.KeyWorkers:        {"INVOICENAME_WORKERS"},
	domain.KeyBackends:       {"INVOICENAME_BACKENDS"},
	domain.KeyPdftotextPath:  {"INVOICENAME_PDFTOTEXT"},
}

// EnvNames returns the environment variables consulted for key.
func EnvNames(key string) []string {
	return envNames[key]
}

// SettingsService resolves settings from flags, environment and the config
// store.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a settings service. A nil lookupEnv reads the
// process environment.
func NewSettingsService(configStore driven.ConfigStore, lookupEnv func(string) (string, bool)) *SettingsService {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   lookupEnv,
	}
}

// Resolve builds Settings with precedence flags > environment > config
// file > built-in default, then validates the result.
func (s *SettingsService) Resolve(flags map[string]string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	for _, key := range domain.SettingKeys() {
		if raw, ok := s.configStore.Get(key); ok {
			if err := apply(&settings, key, storedString(raw)); err != nil {
				return domain.Settings{}, fmt.Errorf("config file %s: %w", key, err)
			}
		}

		for _, name := range envNames[key] {
			if value, ok := s.lookupEnv(name); ok && strings.TrimSpace(value) != "" {
				if err := apply(&settings, key, value); err != nil {
					return domain.Settings{}, fmt.Errorf("environment %s: %w", name, err)
				}
				break
			}
		}

		if value, ok := flags[key]; ok {
			if err := apply(&settings, key, value); err != nil {
				return domain.Settings{}, fmt.Errorf("flag %s: %w", key, err)
			}
		}
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// Set validates value and persists it under key.
func (s *SettingsService) Set(key, value string) error {
	if !isSettingKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	scratch := domain.DefaultSettings()
	if err := apply(&scratch, key, value); err != nil {
		return err
	}
	if err := scratch.Validate(); err != nil {
		return err
	}

	var stored any
	switch key {
	case domain.KeyFilenameFormat:
		stored = scratch.FilenameFormat.String()
	case domain.KeyMaxNameLength:
		stored = scratch.MaxNameLength
	case domain.KeyLookAhead:
		stored = scratch.LookAhead
	case domain.KeyWorkers:
		stored = scratch.Workers
	case domain.KeySuffixFallback:
		stored = scratch.SuffixFallback
	case domain.KeyBackends:
		names := make([]string, 0, len(scratch.Backends))
		for _, b := range scratch.Backends {
			names = append(names, string(b))
		}
		stored = names
	default:
		stored = strings.TrimSpace(value)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("%w: save %s: %w", domain.ErrFilesystem, key, err)
	}
	return nil
}

// Stored returns the setting values present in the config store.
func (s *SettingsService) Stored() map[string]string {
	out := make(map[string]string)
	for _, key := range s.configStore.Keys() {
		if raw, ok := s.configStore.Get(key); ok {
			out[key] = storedString(raw)
		}
	}
	return out
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func isSettingKey(key string) bool {
	for _, k := range domain.SettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// apply parses value for key into settings.
func apply(settings *domain.Settings, key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case domain.KeyInputPath:
		settings.InputPath = value
	case domain.KeyOutputPath:
		settings.OutputPath = value
	case domain.KeyPdftotextPath:
		settings.PdftotextPath = value
	case domain.KeyFilenameFormat:
		format, err := domain.ParseFilenameFormat(value)
		if err != nil {
			return err
		}
		settings.FilenameFormat = format
	case domain.KeyMaxNameLength:
		n, err := parsePositive(value)
		if err != nil {
			return err
		}
		settings.MaxNameLength = n
	case domain.KeyWorkers:
		n, err := parsePositive(value)
		if err != nil {
			return err
		}
		settings.Workers = n
	case domain.KeyLookAhead:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %q is not a non-negative integer", domain.ErrInvalidInput, value)
		}
		settings.LookAhead = n
	case domain.KeySuffixFallback:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", domain.ErrInvalidInput, value)
		}
		settings.SuffixFallback = b
	case domain.KeyBackends:
		backends, err := domain.ParseBackends(value)
		if err != nil {
			return err
		}
		settings.Backends = backends
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return nil
}

func parsePositive(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive integer", domain.ErrInvalidInput, value)
	}
	return n, nil
}

// storedString renders a config store value the way it would be typed on
// the command line.
func storedString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}
