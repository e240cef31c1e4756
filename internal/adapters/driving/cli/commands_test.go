package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

func TestInspectCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("inspect")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestInspectCmd_PrintsDiagnostics(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.rename.inspection = &domain.Inspection{
		Text:      "FACTURA\nApellido y Nombre / Razón Social: Cs Tech Consulting SA\n",
		Layout:    domain.LayoutAFIP,
		Candidate: "Cs Tech Consulting SA",
		Name:      "CS TECH CONSULTING SA",
		IssueDate: "20250203",
		Found:     true,
	}
	ts.rename.processed = &domain.FileResult{
		Status: domain.StatusPlanned,
		Plan: &domain.RenamePlan{
			Source:      "/in/20282114055_011_00001_00000005.pdf",
			Destination: "/in/20282114055_011_00001_00000005 - CS TECH CONSULTING SA.pdf",
		},
	}

	out, err := execute("inspect", "/in/20282114055_011_00001_00000005.pdf")

	require.NoError(t, err)
	assert.Contains(t, out, "Layout:    AFIP (Apellido y Nombre / Razón Social)\n")
	assert.Contains(t, out, "Candidate: Cs Tech Consulting SA\n")
	assert.Contains(t, out, "Name:      CS TECH CONSULTING SA\n")
	assert.Contains(t, out, "Date:      20250203\n")
	assert.Contains(t, out, "  2 | Apellido y Nombre / Razón Social: Cs Tech Consulting SA\n")
	assert.Contains(t, out, "Proposed:  20282114055_011_00001_00000005 - CS TECH CONSULTING SA.pdf\n")
	assert.Equal(t, []bool{false}, ts.rename.applied)
}

func TestInspectCmd_AlreadyNamed(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.rename.inspection = &domain.Inspection{Name: "ACME", Found: true}

	out, err := execute("inspect", "/in/a - ACME.pdf")

	require.NoError(t, err)
	assert.Contains(t, out, "Proposed:  (already named)\n")
}

func TestInspectCmd_NotFound(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.rename.inspection = &domain.Inspection{Text: "sin etiqueta", Layout: domain.LayoutUnknown}

	out, err := execute("inspect", "/in/a.pdf")

	require.NoError(t, err)
	assert.Contains(t, out, "Candidate: (none)\n")
	assert.Contains(t, out, "Proposed:  (client name not found)\n")
}

func TestInspectCmd_ExtractionError(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.rename.inspectErr = domain.ErrExtraction

	_, err := execute("inspect", "/in/a.pdf")

	require.ErrorIs(t, err, domain.ErrExtraction)
}

func TestWatchCmd_PrintsResults(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.watch.results = []domain.FileResult{plannedResult("a.pdf", "a - ACME SA.pdf")}

	out, err := execute("watch")

	require.NoError(t, err)
	assert.Equal(t, "/in", ts.watch.dir)
	assert.False(t, ts.watch.apply)
	assert.Contains(t, out, "Watching /in for new invoices")
	assert.Contains(t, out, "[DRY-RUN] a.pdf -> a - ACME SA.pdf\n")
}

func TestWatchCmd_Apply(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("watch", "--aplicar", "--ruta", "/facturas")

	require.NoError(t, err)
	assert.True(t, ts.watch.apply)
	assert.Equal(t, "/facturas", ts.watch.dir)
}

func TestReviewCmd_RequiresRenameService(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	Configure(newSettingsService, func(domain.Settings) (*Services, error) {
		return &Services{Watch: ts.watch}, nil
	})

	_, err := execute("review")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rename service is required")
}

func TestMCPServeCmd_HasPortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_RequiresRenameService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	Configure(newSettingsService, func(domain.Settings) (*Services, error) {
		return &Services{}, nil
	})

	_, err := execute("mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rename service is required")
}
