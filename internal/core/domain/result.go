package domain

import (
	"path/filepath"
	"time"
)

// Status is the outcome of processing one file.
type Status string

// File statuses.
const (
	StatusPlanned          Status = "planned"
	StatusRenamed          Status = "renamed"
	StatusCopied           Status = "copied"
	StatusUnchanged        Status = "unchanged"
	StatusNotFound         Status = "not_found"
	StatusExtractionFailed Status = "extraction_failed"
	StatusRenameFailed     Status = "rename_failed"
)

// AllStatuses returns every status in report order.
func AllStatuses() []Status {
	return []Status{
		StatusPlanned, StatusRenamed, StatusCopied, StatusUnchanged,
		StatusNotFound, StatusExtractionFailed, StatusRenameFailed,
	}
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// Tag returns the bracketed report tag for the status.
func (s Status) Tag(dryRun bool) string {
	switch s {
	case StatusPlanned:
		if dryRun {
			return "[DRY-RUN]"
		}
		return "[PLANNED]"
	case StatusRenamed:
		return "[RENAMED]"
	case StatusCopied:
		return "[COPIED]"
	case StatusUnchanged:
		return "[UNCHANGED]"
	case StatusNotFound:
		return "[NOT FOUND]"
	case StatusExtractionFailed:
		return "[SKIPPED]"
	case StatusRenameFailed:
		return "[FAILED]"
	default:
		return "[?]"
	}
}

// IsFailure returns true for statuses that left the file unprocessed.
func (s Status) IsFailure() bool {
	return s == StatusNotFound || s == StatusExtractionFailed || s == StatusRenameFailed
}

// FileResult is the outcome of one file.
type FileResult struct {
	// Path is the source path.
	Path string

	// Status is the outcome.
	Status Status

	// Plan is set for planned, renamed, copied and unchanged results,
	// and for rename failures.
	Plan *RenamePlan

	// Err describes the failure, if any.
	Err error
}

// FileName returns the base name of the source file.
func (r FileResult) FileName() string {
	if r.Plan != nil {
		return r.Plan.OriginalName()
	}
	return filepath.Base(r.Path)
}

// RunOptions controls one batch run.
type RunOptions struct {
	// Dir is the directory to scan.
	Dir string

	// Apply performs the renames; false is a dry-run.
	Apply bool
}

// BatchReport summarises one directory run.
type BatchReport struct {
	RunID      string
	Dir        string
	Apply      bool
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []FileResult
	Counts     map[Status]int
}

// NewBatchReport creates an empty report.
func NewBatchReport(runID, dir string, apply bool) *BatchReport {
	return &BatchReport{
		RunID:     runID,
		Dir:       dir,
		Apply:     apply,
		StartedAt: time.Now(),
		Counts:    make(map[Status]int),
	}
}

// Add records one result.
func (b *BatchReport) Add(r FileResult) {
	b.Results = append(b.Results, r)
	b.Counts[r.Status]++
}

// Total returns the number of files processed.
func (b *BatchReport) Total() int {
	return len(b.Results)
}

// Failures returns the number of files left unprocessed.
func (b *BatchReport) Failures() int {
	n := 0
	for s, c := range b.Counts {
		if s.IsFailure() {
			n += c
		}
	}
	return n
}

// Inspection is the diagnostic view of one document.
type Inspection struct {
	Path      string
	Text      string
	Layout    Layout
	Candidate string
	Name      string
	IssueDate string
	Found     bool
}
