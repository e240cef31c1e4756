package pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driven"
)

var _ driven.TextExtractor = (*ContentStream)(nil)

// ContentStream decodes the text operators of each page content stream.
// It only understands simple font encodings, so it runs last in the chain.
type ContentStream struct{}

// NewContentStream creates the backend.
func NewContentStream() *ContentStream {
	return &ContentStream{}
}

// Name returns the backend name.
func (c *ContentStream) Name() string {
	return string(domain.BackendContentStream)
}

// Extract returns the text of every page, pages separated by a newline.
func (c *ContentStream) Extract(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: contentstream: malformed pdf: %v", domain.ErrExtraction, r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: contentstream: %w", domain.ErrExtraction, err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return "", fmt.Errorf("%w: contentstream: read: %w", domain.ErrExtraction, err)
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		r, err := pdfcpu.ExtractPageContent(pctx, pageNr)
		if err != nil {
			return "", fmt.Errorf("%w: contentstream: page %d: %w", domain.ErrExtraction, pageNr, err)
		}
		if r == nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("%w: contentstream: page %d: %w", domain.ErrExtraction, pageNr, err)
		}
		sb.WriteString(ParseContentStream(data))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
