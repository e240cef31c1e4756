package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for invoicename resources.
	uriScheme = "invoicename://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Resolved settings used for extraction and renaming",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "invoices/{name}",
		Name:        "invoice-text",
		Description: "Extracted text of an invoice in the input directory",
		MIMEType:    "text/plain",
	}, s.handleInvoiceTextResource)
}

// handleSettingsResource returns the resolved settings as JSON.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	st := s.ports.Settings

	backends := make([]string, len(st.Backends))
	for i, b := range st.Backends {
		backends[i] = string(b)
	}

	info := struct {
		InputPath      string   `json:"input_path"`
		OutputPath     string   `json:"output_path,omitempty"`
		FilenameFormat string   `json:"filename_format"`
		MaxNameLength  int      `json:"max_name_length"`
		LookAhead      int      `json:"lookahead"`
		SuffixFallback bool     `json:"suffix_fallback"`
		Workers        int      `json:"workers"`
		Backends       []string `json:"backends"`
	}{
		InputPath:      st.InputPath,
		OutputPath:     st.OutputPath,
		FilenameFormat: st.FilenameFormat.String(),
		MaxNameLength:  st.MaxNameLength,
		LookAhead:      st.LookAhead,
		SuffixFallback: st.SuffixFallback,
		Workers:        st.Workers,
		Backends:       backends,
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleInvoiceTextResource returns the extracted text of one invoice.
func (s *Server) handleInvoiceTextResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractInvoiceName(req.Params.URI)
	if name == "" || s.ports.Settings.InputPath == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	insp, err := s.ports.Rename.Inspect(ctx, filepath.Join(s.ports.Settings.InputPath, name))
	if err != nil {
		return nil, fmt.Errorf("reading invoice %s: %w", name, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     insp.Text,
		}},
	}, nil
}

// extractInvoiceName extracts the file name from a URI like
// invoicename://invoices/{name}. Names that would leave the input
// directory are rejected.
func extractInvoiceName(uri string) string {
	const prefix = uriScheme + "invoices/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ""
	}
	return name
}
