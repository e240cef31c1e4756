package mcp

import (
	"context"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

// mockRenameService is a mock implementation of driving.RenameService.
type mockRenameService struct {
	report      *domain.BatchReport
	inspection  *domain.Inspection
	err         error
	runOpts     []domain.RunOptions
	processed   *domain.FileResult
	inspected   []string
	appliedPlan bool
	applied     []bool
}

func (m *mockRenameService) Run(
	_ context.Context,
	opts domain.RunOptions,
	_ func(domain.FileResult),
) (*domain.BatchReport, error) {
	m.runOpts = append(m.runOpts, opts)
	return m.report, m.err
}

func (m *mockRenameService) ProcessFile(_ context.Context, path string, apply bool) domain.FileResult {
	m.applied = append(m.applied, apply)
	if m.processed == nil {
		return domain.FileResult{Path: path}
	}
	result := *m.processed
	result.Path = path
	return result
}

func (m *mockRenameService) ApplyPlan(_ context.Context, plan domain.RenamePlan) domain.FileResult {
	m.appliedPlan = true
	return domain.FileResult{Path: plan.Source}
}

func (m *mockRenameService) Inspect(_ context.Context, path string) (*domain.Inspection, error) {
	m.inspected = append(m.inspected, path)
	if m.err != nil {
		return nil, m.err
	}
	insp := *m.inspection
	insp.Path = path
	return &insp, nil
}
