package domain

import "path/filepath"

// RenamePlan is one proposed rename. It is built per file, consumed
// immediately by a print or a filesystem operation, and then discarded.
type RenamePlan struct {
	// Source is the current path of the file.
	Source string

	// Destination is the proposed path of the file.
	Destination string

	// Name is the sanitized client name embedded in Destination.
	Name string

	// Copy is true when Destination lives in an output directory and the
	// source must be left in place.
	Copy bool
}

// OriginalName returns the base name of Source.
func (p RenamePlan) OriginalName() string {
	return filepath.Base(p.Source)
}

// ProposedName returns the base name of Destination.
func (p RenamePlan) ProposedName() string {
	return filepath.Base(p.Destination)
}

// IsNoop returns true when applying the plan would not change anything.
func (p RenamePlan) IsNoop() bool {
	return !p.Copy && filepath.Clean(p.Source) == filepath.Clean(p.Destination)
}
