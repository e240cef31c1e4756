// Package messages defines Bubbletea message types for the review TUI.
package messages

import (
	"github.com/custodia-labs/invoicename/internal/core/domain"
)

// PlansLoaded carries the dry-run report back to the model.
type PlansLoaded struct {
	Report *domain.BatchReport
	Err    error
}

// PlansApplied carries the outcome of applying the selected plans.
// Results are keyed by the row index they were applied from.
type PlansApplied struct {
	Results map[int]domain.FileResult
}

// Quit is sent to exit the application.
type Quit struct{}
