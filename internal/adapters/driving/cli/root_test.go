package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

func sampleResults() []domain.FileResult {
	return []domain.FileResult{
		plannedResult("20282114055_011_00001_00000005.pdf", "20282114055_011_00001_00000005 - CS TECH CONSULTING SA.pdf"),
		{Path: "/in/b.pdf", Status: domain.StatusNotFound, Err: domain.ErrNameNotFound},
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "invoicename", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "--apply")
}

func TestRootCmd_DryRunByDefault(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.rename.results = sampleResults()

	out, err := execute()

	require.NoError(t, err)
	require.Len(t, ts.rename.runs, 1)
	assert.Equal(t, domain.RunOptions{Dir: "/in", Apply: false}, ts.rename.runs[0])
	assert.Contains(t, out, "[DRY-RUN] 20282114055_011_00001_00000005.pdf -> 20282114055_011_00001_00000005 - CS TECH CONSULTING SA.pdf\n")
	assert.Contains(t, out, "[NOT FOUND] b.pdf: client name not found\n")
	assert.Contains(t, out, "2 files: 1 planned, 1 not found\n")
	assert.Contains(t, out, "Dry run: nothing was changed")
}

func TestRootCmd_Apply(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"english", []string{"--apply"}},
		{"spanish", []string{"--aplicar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, cleanup := setupTestServices()
			defer cleanup()
			ts.rename.results = sampleResults()

			out, err := execute(tt.args...)

			require.NoError(t, err)
			require.Len(t, ts.rename.runs, 1)
			assert.True(t, ts.rename.runs[0].Apply)
			assert.Contains(t, out, "[RENAMED] 20282114055_011_00001_00000005.pdf -> ")
			assert.Contains(t, out, "2 files: 1 renamed, 1 not found\n")
			assert.NotContains(t, out, "Dry run")
		})
	}
}

func TestRootCmd_PathFlagAndAlias(t *testing.T) {
	for _, flag := range []string{"--path", "--ruta"} {
		t.Run(flag, func(t *testing.T) {
			ts, cleanup := setupTestServices()
			defer cleanup()

			_, err := execute(flag, "/facturas")

			require.NoError(t, err)
			assert.Equal(t, map[string]string{domain.KeyInputPath: "/facturas"}, ts.settings.flags)
			assert.Equal(t, "/facturas", ts.builtWith.InputPath)
			assert.Equal(t, "/facturas", ts.rename.runs[0].Dir)
		})
	}
}

func TestRootCmd_OnlyChangedFlagsOverrideSettings(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("--workers", "4", "--format", "date-client", "--suffix-fallback", "--config-dir", "/cfg")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		domain.KeyWorkers:        "4",
		domain.KeyFilenameFormat: "date-client",
		domain.KeySuffixFallback: "true",
	}, ts.settings.flags)
	assert.Equal(t, "/cfg", ts.configDir)
}

func TestRootCmd_NoPDFs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute()

	require.NoError(t, err)
	assert.Equal(t, "No PDF files found in /in\n", out)
}

func TestRootCmd_InputDirectoryError(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.rename.err = fmt.Errorf("%w: /in: no such file or directory", domain.ErrInputDirectory)

	_, err := execute()

	require.ErrorIs(t, err, domain.ErrInputDirectory)
}

func TestRootCmd_InvalidSettings(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.resolveErr = fmt.Errorf("flag workers: %w", domain.ErrInvalidInput)

	_, err := execute("--workers", "0")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "invalid settings")
	assert.Empty(t, ts.rename.runs)
}

func TestRootCmd_DebugInspectsNotFound(t *testing.T) {
	for _, flag := range []string{"--debug", "--depurar"} {
		t.Run(flag, func(t *testing.T) {
			ts, cleanup := setupTestServices()
			defer cleanup()
			ts.rename.results = sampleResults()
			ts.rename.inspection = &domain.Inspection{
				Text:   "FACTURA\nCUIT: 30716021234\n",
				Layout: domain.LayoutUnknown,
			}

			out, err := execute(flag)

			require.NoError(t, err)
			assert.Contains(t, out, "--- /in/b.pdf\n")
			assert.Contains(t, out, "  1 | FACTURA\n")
			assert.Contains(t, out, "  2 | CUIT: 30716021234\n")
			assert.NotContains(t, out, "--- /in/20282114055")
		})
	}
}

func TestRootCmd_ServicesNotConfigured(t *testing.T) {
	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestRootCmd_ServiceFactoryError(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	Configure(newSettingsService, func(domain.Settings) (*Services, error) {
		return nil, errors.New("pdftotext missing")
	})

	_, err := execute()

	require.EqualError(t, err, "pdftotext missing")
}

func TestNormalizeFlag(t *testing.T) {
	tests := map[string]string{
		"ruta":    "path",
		"aplicar": "apply",
		"depurar": "debug",
		"apply":   "apply",
		"workers": "workers",
	}

	for in, want := range tests {
		assert.Equal(t, want, string(normalizeFlag(nil, in)))
	}
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("")
	assert.Equal(t, original, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}
