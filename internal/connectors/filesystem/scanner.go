// Package filesystem lists and watches a local folder of invoice PDFs.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driven"
)

// Ensure Scanner implements the interface.
var _ driven.DocumentSource = (*Scanner)(nil)

// Scanner enumerates the PDF files directly inside a directory.
type Scanner struct{}

// NewScanner creates a scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// List returns the absolute paths of the PDFs in dir, sorted by name.
// Subdirectories and hidden files are skipped. A missing or unreadable
// directory is reported as domain.ErrInputDirectory.
func (s *Scanner) List(ctx context.Context, dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInputDirectory, dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInputDirectory, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s: not a directory", domain.ErrInputDirectory, dir)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInputDirectory, dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !IsPDF(entry.Name()) {
			continue
		}
		path := filepath.Join(abs, entry.Name())
		if !isRegularFile(path) {
			continue
		}
		paths = append(paths, path)
	}

	sort.Strings(paths)
	return paths, nil
}

// IsPDF reports whether name is a visible file with a .pdf extension in
// any letter case.
func IsPDF(name string) bool {
	base := filepath.Base(name)
	if isHidden(base) {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".pdf")
}

// isHidden checks if a base name is hidden (starts with dot).
func isHidden(base string) bool {
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

// isRegularFile follows symlinks.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
