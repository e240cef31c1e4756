// Package tui provides the interactive review of rename plans.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/invoicename/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Rename previews and applies rename plans.
	Rename driving.RenameService
}

// NewPorts creates a new Ports aggregate.
func NewPorts(rename driving.RenameService) *Ports {
	return &Ports{Rename: rename}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Rename == nil {
		return ErrMissingRenameService
	}
	return nil
}
