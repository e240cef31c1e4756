package invoice

import (
	"regexp"
	"strings"
	"time"
)

// datePatterns are tried in order; the first valid calendar date wins.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)fecha\s*[:\-]?\s*(\d{2}/\d{2}/\d{4})`),
	regexp.MustCompile(`(?i)fecha\s*de\s*emisi[oó]n\s*[:\-]?\s*(\d{2}/\d{2}/\d{4})`),
	regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`),
	regexp.MustCompile(`\b(\d{2}/\d{2}/\d{2})\b`),
}

// IssueDate returns the invoice issue date as YYYYMMDD.
// Two-digit years are read as 20YY.
func IssueDate(text string) (string, bool) {
	for _, re := range datePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if d, ok := parseDate(m[1]); ok {
				return d, true
			}
		}
	}
	return "", false
}

func parseDate(s string) (string, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return "", false
	}
	if len(parts[2]) == 2 {
		parts[2] = "20" + parts[2]
	}
	t, err := time.Parse("02/01/2006", strings.Join(parts, "/"))
	if err != nil {
		return "", false
	}
	return t.Format("20060102"), true
}
