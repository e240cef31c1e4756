package driving

import (
	"context"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

// WatchService renames invoices as they arrive in a directory.
type WatchService interface {
	// Watch blocks until ctx is cancelled, processing each new invoice in
	// dir and passing its result to sink.
	Watch(ctx context.Context, dir string, apply bool, sink func(domain.FileResult)) error
}
