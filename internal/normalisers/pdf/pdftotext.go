package pdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driven"
)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found: install poppler-utils")

// CommandRunner executes external commands.
// This interface allows mocking in tests.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, ErrPDFToolNotFound
	}
	return exec.CommandContext(ctx, name, args...).Output()
}

var _ driven.TextExtractor = (*Pdftotext)(nil)

// Pdftotext extracts text with poppler's pdftotext in reading-order mode.
type Pdftotext struct {
	binary string
	runner CommandRunner
}

// NewPdftotext creates a backend for the given binary path.
func NewPdftotext(binary string) *Pdftotext {
	return NewPdftotextWithRunner(binary, execRunner{})
}

// NewPdftotextWithRunner creates a backend with a custom runner.
func NewPdftotextWithRunner(binary string, runner CommandRunner) *Pdftotext {
	if binary == "" {
		binary = domain.DefaultPdftotextPath
	}
	return &Pdftotext{binary: binary, runner: runner}
}

// Name returns the backend name.
func (p *Pdftotext) Name() string {
	return string(domain.BackendPdftotext)
}

// Extract runs pdftotext and returns its stdout.
func (p *Pdftotext) Extract(ctx context.Context, path string) (string, error) {
	out, err := p.runner.Run(ctx, p.binary, "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", fmt.Errorf("%w: pdftotext failed: %w", domain.ErrExtraction, err)
	}
	return string(out), nil
}

// CheckAvailable returns nil if the binary is on PATH.
func CheckAvailable(binary string) error {
	if binary == "" {
		binary = domain.DefaultPdftotextPath
	}
	if _, err := exec.LookPath(binary); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific install instructions.
func InstallInstructions() string {
	return `pdftotext is part of poppler:
  macOS:         brew install poppler
  Ubuntu/Debian: apt install poppler-utils
  Fedora:        dnf install poppler-utils
  Windows:       choco install poppler`
}
