package tui

import (
	"context"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

// MockRenameService implements driving.RenameService for testing.
type MockRenameService struct {
	RunFunc func(ctx context.Context, opts domain.RunOptions) (*domain.BatchReport, error)
	applied []domain.RenamePlan
}

func (m *MockRenameService) Run(
	ctx context.Context, opts domain.RunOptions, sink func(domain.FileResult),
) (*domain.BatchReport, error) {
	if m.RunFunc == nil {
		return domain.NewBatchReport("run", opts.Dir, opts.Apply), nil
	}
	report, err := m.RunFunc(ctx, opts)
	if err == nil && sink != nil {
		for _, r := range report.Results {
			sink(r)
		}
	}
	return report, err
}

func (m *MockRenameService) ProcessFile(_ context.Context, path string, _ bool) domain.FileResult {
	return domain.FileResult{Path: path, Status: domain.StatusNotFound, Err: domain.ErrNameNotFound}
}

func (m *MockRenameService) ApplyPlan(_ context.Context, plan domain.RenamePlan) domain.FileResult {
	m.applied = append(m.applied, plan)
	return domain.FileResult{Path: plan.Source, Status: domain.StatusRenamed, Plan: &plan}
}

func (m *MockRenameService) Inspect(_ context.Context, path string) (*domain.Inspection, error) {
	return &domain.Inspection{Path: path}, nil
}

func plannedResult(name, proposed string) domain.FileResult {
	plan := domain.RenamePlan{Source: "/in/" + name, Destination: "/in/" + proposed, Name: "ACME SA"}
	return domain.FileResult{Path: plan.Source, Status: domain.StatusPlanned, Plan: &plan}
}

// sampleReport holds two plans and one file without a name.
func sampleReport() *domain.BatchReport {
	report := domain.NewBatchReport("run", "/in", false)
	report.Add(plannedResult("a.pdf", "a - ACME SA.pdf"))
	report.Add(domain.FileResult{Path: "/in/b.pdf", Status: domain.StatusNotFound, Err: domain.ErrNameNotFound})
	report.Add(plannedResult("c.pdf", "c - ACME SA.pdf"))
	return report
}
