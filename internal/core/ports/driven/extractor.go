package driven

import "context"

// TextExtractor turns a document into plain text.
// Failures wrap domain.ErrExtraction.
type TextExtractor interface {
	// Name identifies the extractor in logs and diagnostics.
	Name() string

	// Extract returns the text of every page, pages separated by newlines.
	Extract(ctx context.Context, path string) (string, error)
}
