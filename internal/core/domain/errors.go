package domain

import "errors"

// Domain errors classify per-file and batch failures.
// Adapters wrap these with context; callers classify with errors.Is.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown backend, format or setting value.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrExtraction indicates the document could not be read or yielded no text.
	// The file is skipped and the batch continues.
	ErrExtraction = errors.New("text extraction failed")

	// ErrNameNotFound indicates no label was located, or the candidate
	// sanitized to an empty name.
	ErrNameNotFound = errors.New("client name not found")

	// ErrFilesystem indicates a rename or copy failed.
	ErrFilesystem = errors.New("filesystem operation failed")

	// ErrDestinationOccupied indicates the destination appeared after planning.
	ErrDestinationOccupied = errors.New("destination already exists")

	// ErrNameTooLong indicates no name fits within the filename byte limit.
	ErrNameTooLong = errors.New("file name too long")

	// ErrInputDirectory indicates the input directory is missing or unreadable.
	// This is the only batch-aborting condition.
	ErrInputDirectory = errors.New("input directory unavailable")
)
