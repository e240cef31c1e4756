package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Short(t *testing.T) {
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_Executes(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute("version")

	require.NoError(t, err)
	assert.Contains(t, out, "invoicename version test-version-1.0.0")
}

func TestVersionCmd_IgnoresInvalidSettings(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.resolveErr = assert.AnError

	out, err := execute("version")

	require.NoError(t, err)
	assert.Contains(t, out, "invoicename version")
}
