package driving

import (
	"context"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

// RenameService extracts client names from invoices and renames the files.
type RenameService interface {
	// Run processes every invoice in opts.Dir. Each result is passed to sink
	// (when non-nil) as soon as it is final. Only an unavailable input
	// directory is returned as an error.
	Run(ctx context.Context, opts domain.RunOptions, sink func(domain.FileResult)) (*domain.BatchReport, error)

	// ProcessFile processes a single invoice.
	ProcessFile(ctx context.Context, path string, apply bool) domain.FileResult

	// ApplyPlan executes a previously previewed plan after re-checking
	// the destination.
	ApplyPlan(ctx context.Context, plan domain.RenamePlan) domain.FileResult

	// Inspect returns the diagnostic view of one invoice.
	Inspect(ctx context.Context, path string) (*domain.Inspection, error)
}
