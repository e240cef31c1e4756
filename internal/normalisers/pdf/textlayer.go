package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driven"
)

var _ driven.TextExtractor = (*TextLayer)(nil)

// TextLayer reads the embedded text layer row by row.
type TextLayer struct{}

// NewTextLayer creates the backend.
func NewTextLayer() *TextLayer {
	return &TextLayer{}
}

// Name returns the backend name.
func (t *TextLayer) Name() string {
	return string(domain.BackendTextLayer)
}

// Extract returns one line per text row, pages separated by a newline.
// The parser panics on some malformed files; that is reported as an
// extraction error.
func (t *TextLayer) Extract(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: textlayer: malformed pdf: %v", domain.ErrExtraction, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: textlayer: %w", domain.ErrExtraction, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("%w: textlayer: page %d: %w", domain.ErrExtraction, i, err)
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			sb.WriteString(joinWords(words))
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// joinWords concatenates text runs, inserting a space between runs that do
// not already carry one.
func joinWords(words []string) string {
	var sb strings.Builder
	for _, w := range words {
		if w == "" {
			continue
		}
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), " ") && !strings.HasPrefix(w, " ") {
			sb.WriteByte(' ')
		}
		sb.WriteString(w)
	}
	return strings.TrimSpace(sb.String())
}
