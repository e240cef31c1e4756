// Package styles holds the colours shared by the review TUI and the
// coloured report lines of the batch command.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

// Theme is a colour palette. Success, Warning and Error double as the
// colours of the report status tags.
type Theme struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Bar        lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Bar:        lipgloss.Color("#181825"),
	}
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title     lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Cursor    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles derives styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	plain := lipgloss.NewStyle()
	return &Styles{
		theme:     theme,
		Title:     plain.Bold(true).Foreground(theme.Primary),
		Normal:    plain.Foreground(theme.Foreground),
		Muted:     plain.Foreground(theme.Muted),
		Cursor:    plain.Bold(true).Foreground(theme.Foreground),
		Error:     plain.Foreground(theme.Error),
		Success:   plain.Foreground(theme.Success),
		Warning:   plain.Foreground(theme.Warning),
		StatusBar: plain.Foreground(theme.Muted).Background(theme.Bar).Padding(0, 1),
		Help:      plain.Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// ForStatus returns the style of a status tag.
func (s *Styles) ForStatus(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusRenamed, domain.StatusCopied:
		return s.Success
	case domain.StatusPlanned:
		return s.Warning
	case domain.StatusUnchanged:
		return s.Muted
	case domain.StatusNotFound, domain.StatusExtractionFailed, domain.StatusRenameFailed:
		return s.Error
	default:
		return s.Normal
	}
}
