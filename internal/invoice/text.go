package invoice

import (
	"regexp"
	"strings"
)

var (
	reLineBreak     = regexp.MustCompile(`\r\n?|\f`)
	reTrailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
	reBlankLines    = regexp.MustCompile(`\n{2,}`)
)

// NormalizeText unifies line breaks and drops blank lines.
// Page separators (form feeds) become line breaks.
func NormalizeText(s string) string {
	if s == "" {
		return s
	}
	s = reLineBreak.ReplaceAllString(s, "\n")
	s = reTrailingSpace.ReplaceAllString(s, "")
	s = reBlankLines.ReplaceAllString(s, "\n")
	return strings.Trim(s, "\n")
}

// Lines splits normalized text into trimmed lines.
func Lines(text string) []string {
	text = NormalizeText(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}
