package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

func newTestServer(t *testing.T, rename *mockRenameService, settings domain.Settings) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Rename: rename, Settings: settings})
	require.NoError(t, err)
	return server
}

func TestServer_handleExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the client name and proposed file name", func(t *testing.T) {
		rename := &mockRenameService{
			inspection: &domain.Inspection{
				Layout:    domain.LayoutAFIP,
				Candidate: "Cs Tech Consulting SA",
				Name:      "CS TECH CONSULTING SA",
				IssueDate: "20250203",
				Found:     true,
			},
			processed: &domain.FileResult{
				Status: domain.StatusPlanned,
				Plan: &domain.RenamePlan{
					Source:      "/in/20282114055_011_00001_00000005.pdf",
					Destination: "/in/20282114055_011_00001_00000005 - CS TECH CONSULTING SA.pdf",
				},
			},
		}
		server := newTestServer(t, rename, domain.DefaultSettings())

		_, output, err := server.handleExtract(ctx, nil, ExtractInput{Path: "/in/20282114055_011_00001_00000005.pdf"})

		require.NoError(t, err)
		assert.True(t, output.Found)
		assert.Equal(t, "CS TECH CONSULTING SA", output.Name)
		assert.Equal(t, "Cs Tech Consulting SA", output.Candidate)
		assert.Equal(t, "afip", output.Layout)
		assert.Equal(t, "20250203", output.IssueDate)
		assert.Equal(t, "20282114055_011_00001_00000005 - CS TECH CONSULTING SA.pdf", output.ProposedName)
		assert.Equal(t, "planned", output.Status)
		assert.Equal(t, []bool{false}, rename.applied)
		assert.False(t, rename.appliedPlan)
	})

	t.Run("proposal follows the planner", func(t *testing.T) {
		rename := &mockRenameService{
			inspection: &domain.Inspection{Name: "ACME", Found: true},
			processed: &domain.FileResult{
				Status: domain.StatusPlanned,
				Plan: &domain.RenamePlan{
					Source:      "/in/f.pdf",
					Destination: "/out/20250203_ACME_f (2).pdf",
					Copy:        true,
				},
			},
		}
		server := newTestServer(t, rename, domain.DefaultSettings())

		_, output, err := server.handleExtract(ctx, nil, ExtractInput{Path: "/in/f.pdf"})

		require.NoError(t, err)
		assert.Equal(t, "20250203_ACME_f (2).pdf", output.ProposedName)
	})

	t.Run("already named file reports unchanged", func(t *testing.T) {
		plan := domain.RenamePlan{Source: "/in/a - ACME.pdf", Destination: "/in/a - ACME.pdf"}
		rename := &mockRenameService{
			inspection: &domain.Inspection{Name: "ACME", Found: true},
			processed:  &domain.FileResult{Status: domain.StatusUnchanged, Plan: &plan},
		}
		server := newTestServer(t, rename, domain.DefaultSettings())

		_, output, err := server.handleExtract(ctx, nil, ExtractInput{Path: plan.Source})

		require.NoError(t, err)
		assert.Equal(t, "unchanged", output.Status)
		assert.Equal(t, "a - ACME.pdf", output.ProposedName)
	})

	t.Run("name not found has no proposal", func(t *testing.T) {
		rename := &mockRenameService{inspection: &domain.Inspection{Layout: domain.LayoutUnknown}}
		server := newTestServer(t, rename, domain.DefaultSettings())

		_, output, err := server.handleExtract(ctx, nil, ExtractInput{Path: "/in/a.pdf"})

		require.NoError(t, err)
		assert.False(t, output.Found)
		assert.Empty(t, output.ProposedName)
		assert.Empty(t, rename.applied)
	})

	t.Run("path is required", func(t *testing.T) {
		server := newTestServer(t, &mockRenameService{}, domain.DefaultSettings())

		_, _, err := server.handleExtract(ctx, nil, ExtractInput{})

		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("extraction error is returned", func(t *testing.T) {
		rename := &mockRenameService{err: domain.ErrExtraction}
		server := newTestServer(t, rename, domain.DefaultSettings())

		_, _, err := server.handleExtract(ctx, nil, ExtractInput{Path: "/in/a.pdf"})

		require.ErrorIs(t, err, domain.ErrExtraction)
	})
}

func TestServer_handlePreview(t *testing.T) {
	ctx := context.Background()

	report := domain.NewBatchReport("run-1", "/in", false)
	plan := domain.RenamePlan{Source: "/in/a.pdf", Destination: "/in/a - ACME SA.pdf", Name: "ACME SA"}
	report.Add(domain.FileResult{Path: plan.Source, Status: domain.StatusPlanned, Plan: &plan})
	report.Add(domain.FileResult{Path: "/in/b.pdf", Status: domain.StatusNotFound, Err: domain.ErrNameNotFound})

	t.Run("defaults to the configured input path and never applies", func(t *testing.T) {
		rename := &mockRenameService{report: report}
		settings := domain.DefaultSettings()
		settings.InputPath = "/in"
		server := newTestServer(t, rename, settings)

		_, output, err := server.handlePreview(ctx, nil, PreviewInput{})

		require.NoError(t, err)
		require.Len(t, rename.runOpts, 1)
		assert.Equal(t, domain.RunOptions{Dir: "/in", Apply: false}, rename.runOpts[0])
		assert.Equal(t, "run-1", output.RunID)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, map[string]int{"planned": 1, "not_found": 1}, output.Counts)
		require.Len(t, output.Results, 2)
		assert.Equal(t, PreviewResult{File: "a.pdf", Status: "planned", ProposedName: "a - ACME SA.pdf"}, output.Results[0])
		assert.Equal(t, PreviewResult{File: "b.pdf", Status: "not_found", Error: "client name not found"}, output.Results[1])
	})

	t.Run("uses the given directory", func(t *testing.T) {
		rename := &mockRenameService{report: report}
		server := newTestServer(t, rename, domain.DefaultSettings())

		_, _, err := server.handlePreview(ctx, nil, PreviewInput{Directory: "/other"})

		require.NoError(t, err)
		assert.Equal(t, "/other", rename.runOpts[0].Dir)
	})

	t.Run("returns directory errors", func(t *testing.T) {
		rename := &mockRenameService{err: errors.Join(domain.ErrInputDirectory, errors.New("no such dir"))}
		server := newTestServer(t, rename, domain.DefaultSettings())

		_, _, err := server.handlePreview(ctx, nil, PreviewInput{Directory: "/missing"})

		require.ErrorIs(t, err, domain.ErrInputDirectory)
	})
}
