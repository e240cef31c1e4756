package driven

import "context"

// DocumentSource enumerates invoice files.
type DocumentSource interface {
	// List returns the invoice files directly inside dir, sorted by name.
	// A missing or unreadable dir wraps domain.ErrInputDirectory.
	List(ctx context.Context, dir string) ([]string, error)
}

// DocumentWatcher reports invoice files as they appear in a directory.
type DocumentWatcher interface {
	// Watch blocks until ctx is cancelled, calling found once for each
	// invoice file that is created or moved into dir.
	Watch(ctx context.Context, dir string, found func(path string)) error
}
