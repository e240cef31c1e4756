package pdf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driven"
	"github.com/custodia-labs/invoicename/internal/logger"
)

var _ driven.TextExtractor = (*Chain)(nil)

// Chain tries each backend in order and returns the first non-empty text.
type Chain struct {
	backends []driven.TextExtractor
}

// NewChain creates a chain over the given backends.
func NewChain(backends ...driven.TextExtractor) *Chain {
	return &Chain{backends: backends}
}

// NewChainFromSettings builds the configured backend chain. pdftotext is
// left out when its binary cannot be found.
func NewChainFromSettings(s domain.Settings) *Chain {
	var backends []driven.TextExtractor
	for _, b := range s.Backends {
		switch b {
		case domain.BackendPdftotext:
			if err := CheckAvailable(s.PdftotextPath); err != nil {
				logger.Debug("skipping pdftotext backend: %v", err)
				continue
			}
			backends = append(backends, NewPdftotext(s.PdftotextPath))
		case domain.BackendTextLayer:
			backends = append(backends, NewTextLayer())
		case domain.BackendContentStream:
			backends = append(backends, NewContentStream())
		}
	}
	return NewChain(backends...)
}

// Name lists the backends in order.
func (c *Chain) Name() string {
	names := make([]string, 0, len(c.backends))
	for _, b := range c.backends {
		names = append(names, b.Name())
	}
	return strings.Join(names, ",")
}

// Backends returns the backends in fallback order.
func (c *Chain) Backends() []driven.TextExtractor {
	return c.backends
}

// Extract returns the first non-empty text. Empty text from every backend
// is not an error; the caller reports the name as not found. When no
// backend produced text and at least one failed, the failures are returned
// wrapped in domain.ErrExtraction.
func (c *Chain) Extract(ctx context.Context, path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filepath.Base(path))
	}
	if len(c.backends) == 0 {
		return "", fmt.Errorf("%w: no extraction backend available", domain.ErrExtraction)
	}

	var errs []error
	for _, b := range c.backends {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := b.Extract(ctx, path)
		if err != nil {
			logger.Debug("%s: backend %s failed: %v", filepath.Base(path), b.Name(), err)
			errs = append(errs, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			logger.Debug("%s: backend %s returned no text", filepath.Base(path), b.Name())
			continue
		}
		logger.Debug("%s: text from backend %s (%d bytes)", filepath.Base(path), b.Name(), len(text))
		return text, nil
	}

	if len(errs) == len(c.backends) {
		err := errors.Join(errs...)
		if errors.Is(err, domain.ErrExtraction) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrExtraction, err)
	}
	return "", nil
}
