package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/invoicename/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/invoicename/internal/core/domain"
)

// printer writes one line per file result and a closing summary.
type printer struct {
	mu     sync.Mutex
	w      io.Writer
	dryRun bool
	styles *styles.Styles
}

// newPrinter creates a printer. Tags are coloured only when w is a terminal.
func newPrinter(w io.Writer, dryRun bool) *printer {
	p := &printer{w: w, dryRun: dryRun}
	if isTerminal(w) {
		p.styles = styles.DefaultStyles()
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) result(r domain.FileResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tag := r.Status.Tag(p.dryRun)
	if p.styles != nil {
		tag = p.styles.ForStatus(r.Status).Render(tag)
	}
	fmt.Fprintf(p.w, "%s %s\n", tag, describeResult(r))
}

func (p *printer) summary(report *domain.BatchReport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.w, summaryLine(report))
	if p.dryRun && report.Counts[domain.StatusPlanned] > 0 {
		fmt.Fprintln(p.w, "Dry run: nothing was changed. Run again with --apply to rename.")
	}
}

// describeResult renders the part of a report line after the tag.
func describeResult(r domain.FileResult) string {
	name := r.FileName()
	switch r.Status {
	case domain.StatusPlanned, domain.StatusRenamed, domain.StatusCopied:
		return name + " -> " + r.Plan.ProposedName()
	case domain.StatusUnchanged:
		return name
	case domain.StatusNotFound:
		return name + ": " + domain.ErrNameNotFound.Error()
	case domain.StatusExtractionFailed, domain.StatusRenameFailed:
		if r.Err != nil {
			return name + ": " + r.Err.Error()
		}
		return name
	default:
		return name
	}
}

// summaryLabels are the status names used in the summary line.
var summaryLabels = map[domain.Status]string{
	domain.StatusPlanned:          "planned",
	domain.StatusRenamed:          "renamed",
	domain.StatusCopied:           "copied",
	domain.StatusUnchanged:        "unchanged",
	domain.StatusNotFound:         "not found",
	domain.StatusExtractionFailed: "skipped",
	domain.StatusRenameFailed:     "failed",
}

// summaryLine renders "N files: X planned, Y not found".
func summaryLine(report *domain.BatchReport) string {
	parts := make([]string, 0, len(summaryLabels))
	for _, s := range domain.AllStatuses() {
		if n := report.Counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, summaryLabels[s]))
		}
	}

	if len(parts) == 0 {
		return fmt.Sprintf("%d files", report.Total())
	}
	return fmt.Sprintf("%d files: %s", report.Total(), strings.Join(parts, ", "))
}

// printInspection writes the diagnostic view of one invoice.
func printInspection(cmd *cobra.Command, insp *domain.Inspection) {
	cmd.Printf("--- %s\n", insp.Path)
	cmd.Printf("Layout:    %s\n", insp.Layout.Description())
	cmd.Printf("Candidate: %s\n", orNone(insp.Candidate))
	cmd.Printf("Name:      %s\n", orNone(insp.Name))
	cmd.Printf("Date:      %s\n", orNone(insp.IssueDate))
	cmd.Printf("Lines:\n")
	lines := strings.Split(strings.TrimRight(insp.Text, "\n"), "\n")
	width := len(fmt.Sprint(len(lines)))
	for i, line := range lines {
		cmd.Printf("  %*d | %s\n", width, i+1, line)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
