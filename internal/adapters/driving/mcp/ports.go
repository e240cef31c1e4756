package mcp

import (
	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driving"
)

// Ports aggregates what the MCP server needs from the core.
type Ports struct {
	// Rename inspects invoices and computes dry-run plans.
	Rename driving.RenameService

	// Settings are the resolved settings; InputPath is the default
	// directory for previews and invoice resources.
	Settings domain.Settings
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Rename == nil {
		return ErrMissingRenameService
	}
	return nil
}
