// Package mcp provides an MCP (Model Context Protocol) server adapter for
// invoicename. It lets AI assistants read client names from invoices and
// preview renames without changing any file.
package mcp

import "errors"

// ErrMissingRenameService is returned when the rename service is not provided.
var ErrMissingRenameService = errors.New("mcp: rename service is required")
