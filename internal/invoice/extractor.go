package invoice

import (
	"sort"
	"strings"
)

// Options tunes the extractor. The zero value captures names on the label
// line only.
type Options struct {
	// LookAhead is how many lines below an empty label are scanned for
	// the name. Zero disables the scan.
	LookAhead int

	// SuffixFallback picks the longest line carrying a corporate suffix
	// (SA, SRL, SAS, ...) when no label yields a name.
	SuffixFallback bool
}

// Extractor locates the client name in extracted invoice text.
type Extractor struct {
	opts Options
}

// NewExtractor creates an extractor with the given options.
func NewExtractor(opts Options) *Extractor {
	if opts.LookAhead < 0 {
		opts.LookAhead = 0
	}
	return &Extractor{opts: opts}
}

var defaultExtractor = NewExtractor(Options{})

// Extract locates the client name with default options.
func Extract(text string) (string, bool) {
	return defaultExtractor.Extract(text)
}

// Extract returns the raw text following the first recognized label, up to
// the next line break or field label. It reports false when no label is
// present or the capture is empty.
//
// With look-ahead enabled, an empty capture is followed by a scan of the
// lines below, and later occurrences of the same label are tried when the
// first one yields nothing.
func (e *Extractor) Extract(text string) (string, bool) {
	text = NormalizeText(text)

	for _, l := range nameLabels {
		locs := l.re.FindAllStringIndex(text, -1)
		if locs == nil {
			continue
		}
		if e.opts.LookAhead == 0 {
			locs = locs[:1]
		}

		for _, loc := range locs {
			if candidate, ok := e.capture(text[loc[1]:]); ok {
				return candidate, true
			}
		}
		return e.fallback(text)
	}

	return e.fallback(text)
}

// capture reads the name after one label occurrence.
func (e *Extractor) capture(rest string) (string, bool) {
	line, below, _ := strings.Cut(rest, "\n")
	if candidate := strings.TrimSpace(cutAtFieldLabel(line)); candidate != "" {
		return candidate, true
	}
	if e.opts.LookAhead > 0 {
		return e.scanBelow(below)
	}
	return "", false
}

// maxContinuation is how many lines may extend a name found by look-ahead.
const maxContinuation = 2

// scanBelow looks for a viable name in the lines following an empty label.
// Intermediate field labels and address-like lines are skipped. A name
// without a corporate suffix is extended with up to two continuation lines.
func (e *Extractor) scanBelow(below string) (string, bool) {
	if below == "" {
		return "", false
	}
	lines := strings.Split(below, "\n")

	for i, ln := range lines {
		if i >= e.opts.LookAhead {
			break
		}
		ln = strings.TrimSpace(ln)
		if ln == "" || hasFieldLabel(ln) || looksLikeAddress(ln) {
			continue
		}
		if isViable(ln) {
			return continueName(ln, lines[i+1:]), true
		}
	}
	return "", false
}

// continueName appends the lines that carry on a name split across lines.
// It stops at a field label, an address or a name that is already complete.
func continueName(name string, next []string) string {
	if reCorporateSuffix.MatchString(name) {
		return name
	}

	joined := 0
	for _, ln := range next {
		if joined == maxContinuation {
			break
		}
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		if hasFieldLabel(ln) || looksLikeAddress(ln) {
			break
		}
		name += " " + ln
		joined++
		if reCorporateSuffix.MatchString(ln) {
			break
		}
	}
	return name
}

// fallback returns the longest viable line carrying a corporate suffix.
func (e *Extractor) fallback(text string) (string, bool) {
	if !e.opts.SuffixFallback {
		return "", false
	}

	var candidates []string
	for _, ln := range strings.Split(text, "\n") {
		if !reCorporateSuffix.MatchString(ln) {
			continue
		}
		ln = strings.TrimSpace(cutAtFieldLabel(ln))
		if isViable(ln) {
			candidates = append(candidates, ln)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})
	return candidates[0], true
}
