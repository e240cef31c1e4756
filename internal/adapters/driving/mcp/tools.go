package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

// ExtractInput is the input schema for the extract_client_name tool.
type ExtractInput struct {
	Path string `json:"path" jsonschema:"path of the invoice PDF"`
}

// ExtractOutput is the output schema for the extract_client_name tool.
type ExtractOutput struct {
	Path         string `json:"path"`
	Found        bool   `json:"found"`
	Name         string `json:"name,omitempty"`
	Candidate    string `json:"candidate,omitempty"`
	Layout       string `json:"layout"`
	IssueDate    string `json:"issue_date,omitempty"`
	Status       string `json:"status,omitempty"`
	ProposedName string `json:"proposed_name,omitempty"`
}

// PreviewInput is the input schema for the preview_renames tool.
type PreviewInput struct {
	Directory string `json:"directory,omitempty" jsonschema:"directory with invoice PDFs (defaults to the configured input path)"`
}

// PreviewOutput is the output schema for the preview_renames tool.
type PreviewOutput struct {
	RunID     string          `json:"run_id"`
	Directory string          `json:"directory"`
	Count     int             `json:"count"`
	Counts    map[string]int  `json:"counts"`
	Results   []PreviewResult `json:"results"`
}

// PreviewResult is the dry-run outcome of one file.
type PreviewResult struct {
	File         string `json:"file"`
	Status       string `json:"status"`
	ProposedName string `json:"proposed_name,omitempty"`
	Error        string `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_client_name",
		Description: "Read the client name from one AFIP invoice PDF without renaming it",
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "preview_renames",
		Description: "Dry-run the rename of every invoice PDF in a directory; no file is changed",
	}, s.handlePreview)
}

// handleExtract handles the extract_client_name tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	if input.Path == "" {
		return nil, ExtractOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	insp, err := s.ports.Rename.Inspect(ctx, input.Path)
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	output := ExtractOutput{
		Path:      insp.Path,
		Found:     insp.Found,
		Name:      insp.Name,
		Candidate: insp.Candidate,
		Layout:    insp.Layout.String(),
		IssueDate: insp.IssueDate,
	}
	if insp.Found {
		// Same dry-run plan a batch preview would show for this file.
		result := s.ports.Rename.ProcessFile(ctx, input.Path, false)
		output.Status = result.Status.String()
		if result.Plan != nil {
			output.ProposedName = result.Plan.ProposedName()
		}
	}
	return nil, output, nil
}

// handlePreview handles the preview_renames tool invocation.
func (s *Server) handlePreview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PreviewInput,
) (*mcp.CallToolResult, PreviewOutput, error) {
	dir := input.Directory
	if dir == "" {
		dir = s.ports.Settings.InputPath
	}
	if dir == "" {
		return nil, PreviewOutput{}, errors.New("no directory given and no input path configured")
	}

	report, err := s.ports.Rename.Run(ctx, domain.RunOptions{Dir: dir}, nil)
	if err != nil {
		return nil, PreviewOutput{}, err
	}

	output := PreviewOutput{
		RunID:     report.RunID,
		Directory: report.Dir,
		Count:     report.Total(),
		Counts:    make(map[string]int, len(report.Counts)),
		Results:   make([]PreviewResult, len(report.Results)),
	}
	for status, n := range report.Counts {
		output.Counts[status.String()] = n
	}
	for i, r := range report.Results {
		output.Results[i] = PreviewResult{
			File:   r.FileName(),
			Status: r.Status.String(),
		}
		if r.Plan != nil {
			output.Results[i].ProposedName = r.Plan.ProposedName()
		}
		if r.Err != nil {
			output.Results[i].Error = r.Err.Error()
		}
	}
	return nil, output, nil
}
