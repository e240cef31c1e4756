package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driven"
	"github.com/custodia-labs/invoicename/internal/core/ports/driving"
	"github.com/custodia-labs/invoicename/internal/invoice"
	"github.com/custodia-labs/invoicename/internal/logger"
	"github.com/custodia-labs/invoicename/internal/naming"
)

// Ensure RenameService implements the interface.
var _ driving.RenameService = (*RenameService)(nil)

// RenameService runs the read, extract, name, plan and act pipeline.
type RenameService struct {
	source    driven.DocumentSource
	extractor driven.TextExtractor
	fs        driven.FileSystem
	names     *invoice.Extractor
	settings  domain.Settings

	// mu serializes planning and acting so an occupancy check and the
	// rename that relies on it are never interleaved with another rename.
	mu sync.Mutex
}

// NewRenameService creates a rename service.
func NewRenameService(
	source driven.DocumentSource,
	extractor driven.TextExtractor,
	fs driven.FileSystem,
	settings domain.Settings,
) *RenameService {
	return &RenameService{
		source:    source,
		extractor: extractor,
		fs:        fs,
		names: invoice.NewExtractor(invoice.Options{
			LookAhead:      settings.LookAhead,
			SuffixFallback: settings.SuffixFallback,
		}),
		settings: settings,
	}
}

// extraction is the text of one file or the reason there is none.
type extraction struct {
	text string
	err  error
}

// Run processes every PDF in opts.Dir (the configured input path when
// empty). Text extraction runs on the configured number of workers; results
// are planned and acted on in file name order. A cancelled context stops
// the batch and returns the partial report with the context error.
func (s *RenameService) Run(
	ctx context.Context,
	opts domain.RunOptions,
	sink func(domain.FileResult),
) (*domain.BatchReport, error) {
	dir := opts.Dir
	if dir == "" {
		dir = s.settings.InputPath
	}

	paths, err := s.source.List(ctx, dir)
	if err != nil {
		if errors.Is(err, domain.ErrInputDirectory) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInputDirectory, err)
	}

	report := domain.NewBatchReport(uuid.NewString(), dir, opts.Apply)
	logger.Info("run %s: %d pdf files in %s (apply=%t)", report.RunID, len(paths), dir, opts.Apply)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	planner := s.newPlanner()
	texts := s.extractAll(ctx, paths)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = time.Now()
			return report, err
		}

		var ex extraction
		select {
		case ex = <-texts[i]:
		case <-ctx.Done():
			report.FinishedAt = time.Now()
			return report, ctx.Err()
		}

		result := s.finish(planner, path, ex, opts.Apply)
		report.Add(result)
		if sink != nil {
			sink(result)
		}
	}

	report.FinishedAt = time.Now()
	logger.Info("run %s: %d files, %d failures in %s",
		report.RunID, report.Total(), report.Failures(), report.FinishedAt.Sub(report.StartedAt))
	return report, nil
}

// ProcessFile processes a single invoice with its own planner.
func (s *RenameService) ProcessFile(ctx context.Context, path string, apply bool) domain.FileResult {
	text, err := s.extractor.Extract(ctx, path)
	return s.finish(s.newPlanner(), path, extraction{text: text, err: err}, apply)
}

// ApplyPlan executes a previously previewed plan. The filesystem re-checks
// the destination, so a plan that went stale fails instead of overwriting.
func (s *RenameService) ApplyPlan(_ context.Context, plan domain.RenamePlan) domain.FileResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if plan.IsNoop() {
		return domain.FileResult{Path: plan.Source, Status: domain.StatusUnchanged, Plan: &plan}
	}
	return s.act(plan)
}

// Inspect extracts and explains one invoice without touching it.
func (s *RenameService) Inspect(ctx context.Context, path string) (*domain.Inspection, error) {
	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	inspection := &domain.Inspection{
		Path:   path,
		Text:   invoice.NormalizeText(text),
		Layout: invoice.DetectLayout(text),
	}
	inspection.IssueDate, _ = invoice.IssueDate(text)

	candidate, ok := s.names.Extract(text)
	if !ok {
		return inspection, nil
	}
	inspection.Candidate = candidate
	inspection.Name, inspection.Found = naming.Sanitize(candidate, s.settings.MaxNameLength)
	return inspection, nil
}

func (s *RenameService) newPlanner() *naming.Planner {
	return naming.NewPlanner(s.settings.FilenameFormat, s.settings.OutputPath, s.fs.Occupied)
}

// extractAll starts the extraction workers. Each returned channel yields
// the extraction of the path at the same index.
func (s *RenameService) extractAll(ctx context.Context, paths []string) []chan extraction {
	out := make([]chan extraction, len(paths))
	for i := range out {
		out[i] = make(chan extraction, 1)
	}

	workers := s.settings.Workers
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				text, err := s.extractor.Extract(ctx, paths[i])
				out[i] <- extraction{text: text, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range paths {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// finish turns extracted text into a result, planning and, when apply is
// set, renaming under the service lock.
func (s *RenameService) finish(planner *naming.Planner, path string, ex extraction, apply bool) domain.FileResult {
	base := filepath.Base(path)

	if ex.err != nil {
		logger.Warn("%s: %v", base, ex.err)
		return domain.FileResult{Path: path, Status: domain.StatusExtractionFailed, Err: ex.err}
	}

	candidate, ok := s.names.Extract(ex.text)
	if !ok {
		logger.Debug("%s: no name label", base)
		return domain.FileResult{Path: path, Status: domain.StatusNotFound, Err: domain.ErrNameNotFound}
	}
	name, ok := naming.Sanitize(candidate, s.settings.MaxNameLength)
	if !ok {
		logger.Debug("%s: candidate %q sanitized to nothing", base, candidate)
		return domain.FileResult{Path: path, Status: domain.StatusNotFound, Err: domain.ErrNameNotFound}
	}

	var date string
	if s.settings.FilenameFormat.UsesDate() {
		date, _ = invoice.IssueDate(ex.text)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := planner.Plan(path, name, date)
	if err != nil {
		logger.Warn("%s: plan: %v", base, err)
		return domain.FileResult{Path: path, Status: domain.StatusRenameFailed, Err: err}
	}
	if plan.IsNoop() {
		return domain.FileResult{Path: path, Status: domain.StatusUnchanged, Plan: &plan}
	}
	if !apply {
		return domain.FileResult{Path: path, Status: domain.StatusPlanned, Plan: &plan}
	}
	return s.act(plan)
}

// act performs plan (caller must hold lock).
func (s *RenameService) act(plan domain.RenamePlan) domain.FileResult {
	result := domain.FileResult{Path: plan.Source, Plan: &plan}

	if plan.Copy {
		result.Err = s.fs.Copy(plan.Source, plan.Destination)
		result.Status = domain.StatusCopied
	} else {
		result.Err = s.fs.Rename(plan.Source, plan.Destination)
		result.Status = domain.StatusRenamed
	}

	if result.Err != nil {
		logger.Warn("%s: %v", plan.OriginalName(), result.Err)
		result.Status = domain.StatusRenameFailed
	}
	return result
}
