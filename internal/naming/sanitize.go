package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// separators are trimmed from both ends of a sanitized name.
const separators = " ._-"

// undecomposable maps letters that NFD leaves intact to ASCII.
var undecomposable = strings.NewReplacer(
	"ß", "SS", "ẞ", "SS",
	"æ", "AE", "Æ", "AE",
	"œ", "OE", "Œ", "OE",
	"ø", "O", "Ø", "O",
	"ł", "L", "Ł", "L",
	"đ", "D", "Đ", "D",
	"þ", "TH", "Þ", "TH",
	"ı", "I",
)

// StripDiacritics replaces accented letters with their unaccented ASCII base.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return undecomposable.Replace(out)
}

// allowed reports whether r may appear in a sanitized name.
func allowed(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '-', r == '.', r == '&', r == '_':
		return true
	default:
		return false
	}
}

// Sanitize turns a raw candidate into a filename-safe name of at most
// maxLen bytes. It reports false when nothing survives.
//
// Steps: strip diacritics, uppercase, collapse whitespace, drop everything
// outside the allow-list (letters, digits, space, - . & _), trim separators,
// cap at a word boundary.
func Sanitize(candidate string, maxLen int) (string, bool) {
	s := StripDiacritics(candidate)
	s = strings.ToUpper(s)
	s = collapseSpace(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if allowed(r) {
			return r
		}
		return -1
	}, s)
	s = collapseSpace(s)
	s = strings.Trim(s, separators)
	s = Truncate(s, maxLen)
	return s, s != ""
}

// Truncate caps s at maxLen bytes, cutting at the last space when the cut
// would split a word. A single word longer than maxLen is hard-cut.
// Separators left at either end are trimmed.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return strings.Trim(s, separators)
	}
	cut := s[:maxLen]
	if s[maxLen] != ' ' {
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.Trim(cut, separators)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
