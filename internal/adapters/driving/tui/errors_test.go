package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingRenameService.Error(), ErrInvalidPorts.Error())
}

func TestErrMissingRenameService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingRenameService.Error(), "rename service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
