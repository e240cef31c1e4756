package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenamePlan_Names(t *testing.T) {
	plan := RenamePlan{
		Source:      "/invoices/20282114055_011_00001_00000005.pdf",
		Destination: "/invoices/20282114055_011_00001_00000005 - CS TECH CONSULTING SA.pdf",
		Name:        "CS TECH CONSULTING SA",
	}

	assert.Equal(t, "20282114055_011_00001_00000005.pdf", plan.OriginalName())
	assert.Equal(t, "20282114055_011_00001_00000005 - CS TECH CONSULTING SA.pdf", plan.ProposedName())
	assert.False(t, plan.IsNoop())
}

func TestRenamePlan_IsNoop(t *testing.T) {
	t.Run("same path", func(t *testing.T) {
		plan := RenamePlan{Source: "/a/b.pdf", Destination: "/a/./b.pdf"}
		assert.True(t, plan.IsNoop())
	})

	t.Run("copy is never a noop", func(t *testing.T) {
		plan := RenamePlan{Source: "/a/b.pdf", Destination: "/a/b.pdf", Copy: true}
		assert.False(t, plan.IsNoop())
	})
}

func TestLayout_Description(t *testing.T) {
	assert.Contains(t, LayoutAFIP.Description(), "Apellido y Nombre")
	assert.Contains(t, LayoutProviderB.Description(), "Razón Social")
	assert.Equal(t, unknownDescription, LayoutUnknown.Description())
	assert.Equal(t, "afip", LayoutAFIP.String())
}
