package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
	name   string
	args   []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

func TestPdftotext_Name(t *testing.T) {
	assert.Equal(t, "pdftotext", NewPdftotext("").Name())
}

func TestPdftotext_DefaultBinary(t *testing.T) {
	runner := &mockRunner{output: []byte("text")}
	p := NewPdftotextWithRunner("", runner)

	_, err := p.Extract(context.Background(), "/in/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdftotext", runner.name)
}

func TestPdftotext_Extract(t *testing.T) {
	runner := &mockRunner{output: []byte("Razón Social: ACME SA\n")}
	p := NewPdftotextWithRunner("/opt/poppler/bin/pdftotext", runner)

	text, err := p.Extract(context.Background(), "/in/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Razón Social: ACME SA\n", text)
	assert.Equal(t, "/opt/poppler/bin/pdftotext", runner.name)
	assert.Equal(t, []string{"-enc", "UTF-8", "-eol", "unix", "/in/a.pdf", "-"}, runner.args)
}

func TestPdftotext_RunnerError(t *testing.T) {
	runner := &mockRunner{err: errors.New("pdftotext crashed")}
	p := NewPdftotextWithRunner("pdftotext", runner)

	text, err := p.Extract(context.Background(), "/in/a.pdf")
	assert.Empty(t, text)
	assert.ErrorIs(t, err, domain.ErrExtraction)
	assert.Contains(t, err.Error(), "pdftotext failed")
}

func TestPdftotext_ToolMissing(t *testing.T) {
	runner := &mockRunner{err: ErrPDFToolNotFound}
	p := NewPdftotextWithRunner("pdftotext", runner)

	_, err := p.Extract(context.Background(), "/in/a.pdf")
	assert.ErrorIs(t, err, ErrPDFToolNotFound)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestCheckAvailable_Missing(t *testing.T) {
	assert.ErrorIs(t, CheckAvailable("/nonexistent/pdftotext-binary"), ErrPDFToolNotFound)
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}
