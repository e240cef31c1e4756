package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const unknownDescription = "Unknown"

// FilenameFormat defines how the proposed file name is assembled.
type FilenameFormat string

// Available filename formats.
const (
	// FormatSuffix appends the name to the original stem: "stem - NAME.ext".
	FormatSuffix FilenameFormat = "suffix"

	// FormatDateClient prefixes the issue date and name: "YYYYMMDD_NAME_stem.ext".
	FormatDateClient FilenameFormat = "date-client"

	// FormatClientDate prefixes the name and issue date: "NAME_YYYYMMDD_stem.ext".
	FormatClientDate FilenameFormat = "client-date"
)

// ParseFilenameFormat parses a format name. The legacy spellings
// YYYYMMDD_NOMBRE_CLIENTE and NOMBRE_CLIENTE_YYYYMMDD are accepted.
func ParseFilenameFormat(s string) (FilenameFormat, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "SUFFIX":
		return FormatSuffix, nil
	case "DATE-CLIENT", "YYYYMMDD_NOMBRE_CLIENTE":
		return FormatDateClient, nil
	case "CLIENT-DATE", "NOMBRE_CLIENTE_YYYYMMDD":
		return FormatClientDate, nil
	default:
		return "", fmt.Errorf("%w: filename format %q", ErrUnsupportedType, s)
	}
}

// IsValid returns true if the format is recognised.
func (f FilenameFormat) IsValid() bool {
	switch f {
	case FormatSuffix, FormatDateClient, FormatClientDate:
		return true
	default:
		return false
	}
}

// UsesDate returns true if the format embeds the issue date.
func (f FilenameFormat) UsesDate() bool {
	return f == FormatDateClient || f == FormatClientDate
}

// String returns the string representation.
func (f FilenameFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f FilenameFormat) Description() string {
	switch f {
	case FormatSuffix:
		return "Suffix (stem - NAME.ext)"
	case FormatDateClient:
		return "Date first (YYYYMMDD_NAME_stem.ext)"
	case FormatClientDate:
		return "Client first (NAME_YYYYMMDD_stem.ext)"
	default:
		return unknownDescription
	}
}

// Backend identifies a PDF text extraction backend.
type Backend string

// Available extraction backends, in default fallback order.
const (
	// BackendPdftotext shells out to poppler's pdftotext.
	BackendPdftotext Backend = "pdftotext"

	// BackendTextLayer reads the embedded text layer row by row in pure Go.
	BackendTextLayer Backend = "textlayer"

	// BackendContentStream decodes page content streams in pure Go.
	BackendContentStream Backend = "contentstream"
)

// AllBackends returns every backend in default fallback order.
func AllBackends() []Backend {
	return []Backend{BackendPdftotext, BackendTextLayer, BackendContentStream}
}

// IsValid returns true if the backend is recognised.
func (b Backend) IsValid() bool {
	switch b {
	case BackendPdftotext, BackendTextLayer, BackendContentStream:
		return true
	default:
		return false
	}
}

// ParseBackends parses a comma-separated backend list.
func ParseBackends(s string) ([]Backend, error) {
	var out []Backend
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		b := Backend(part)
		if !b.IsValid() {
			return nil, fmt.Errorf("%w: backend %q", ErrUnsupportedType, part)
		}
		out = append(out, b)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty backend list", ErrInvalidInput)
	}
	return out, nil
}

// Built-in defaults.
const (
	DefaultInputDir       = "facturas_pdf"
	DefaultMaxNameLength  = 80
	DefaultLookAheadLines = 12
	DefaultPdftotextPath  = "pdftotext"
)

// Settings is the explicit run configuration. It is resolved once at process
// start and passed down; nothing re-reads configuration mid-run.
type Settings struct {
	// InputPath is the directory scanned for invoices.
	InputPath string

	// OutputPath, when set, receives copies instead of renaming in place.
	OutputPath string

	// FilenameFormat selects how the proposed name is assembled.
	FilenameFormat FilenameFormat

	// MaxNameLength caps the sanitized name in bytes.
	MaxNameLength int

	// LookAhead is how many lines below an empty label are scanned.
	// Zero keeps captures on the label line only.
	LookAhead int

	// SuffixFallback picks a line with a corporate suffix when no label matches.
	SuffixFallback bool

	// Workers is the number of concurrent text extractions.
	Workers int

	// Backends is the ordered extraction fallback chain.
	Backends []Backend

	// PdftotextPath is the pdftotext binary name or path.
	PdftotextPath string
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		InputPath:      DefaultInputDir,
		FilenameFormat: FormatSuffix,
		MaxNameLength:  DefaultMaxNameLength,
		Workers:        1,
		Backends:       AllBackends(),
		PdftotextPath:  DefaultPdftotextPath,
	}
}

// CopyMode returns true when apply copies into OutputPath instead of renaming.
func (s Settings) CopyMode() bool {
	return s.OutputPath != ""
}

// SameDir reports whether a and b name the same directory once cleaned and
// made absolute.
func SameDir(a, b string) bool {
	return absPath(a) == absPath(b)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.InputPath) == "" {
		return fmt.Errorf("%w: input path is required", ErrInvalidInput)
	}
	if s.CopyMode() && SameDir(s.InputPath, s.OutputPath) {
		return fmt.Errorf("%w: output path must differ from input path", ErrInvalidInput)
	}
	if !s.FilenameFormat.IsValid() {
		return fmt.Errorf("%w: filename format %q", ErrUnsupportedType, s.FilenameFormat)
	}
	if s.MaxNameLength <= 0 {
		return fmt.Errorf("%w: max name length must be positive", ErrInvalidInput)
	}
	if s.LookAhead < 0 {
		return fmt.Errorf("%w: lookahead must not be negative", ErrInvalidInput)
	}
	if s.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalidInput)
	}
	if len(s.Backends) == 0 {
		return fmt.Errorf("%w: at least one backend is required", ErrInvalidInput)
	}
	for _, b := range s.Backends {
		if !b.IsValid() {
			return fmt.Errorf("%w: backend %q", ErrUnsupportedType, b)
		}
	}
	return nil
}

// Setting keys in dot notation, as stored in the config file. Keys under
// "extraction." live in the [extraction] table.
const (
	KeyInputPath      = "input_path"
	KeyOutputPath     = "output_path"
	KeyFilenameFormat = "filename_format"
	KeyMaxNameLength  = "max_name_length"
	KeyLookAhead      = "extraction.lookahead"
	KeySuffixFallback = "extraction.suffix_fallback"
	KeyWorkers        = "extraction.workers"
	KeyBackends       = "extraction.backends"
	KeyPdftotextPath  = "extraction.pdftotext_path"
)

// SettingKeys returns every setting key in display order.
func SettingKeys() []string {
	return []string{
		KeyInputPath, KeyOutputPath, KeyFilenameFormat, KeyMaxNameLength,
		KeyLookAhead, KeySuffixFallback, KeyWorkers, KeyBackends, KeyPdftotextPath,
	}
}
