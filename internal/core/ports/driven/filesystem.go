package driven

// FileSystem performs the mutating side of a rename plan.
type FileSystem interface {
	// Occupied reports whether destination exists and is not the same
	// file as source.
	Occupied(source, destination string) (bool, error)

	// Rename moves source to destination. It never overwrites: an occupied
	// destination yields domain.ErrDestinationOccupied.
	Rename(source, destination string) error

	// Copy copies source to destination, preserving its modification time.
	// An existing destination yields domain.ErrDestinationOccupied.
	Copy(source, destination string) error
}
