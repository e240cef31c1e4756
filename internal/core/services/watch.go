package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driven"
	"github.com/custodia-labs/invoicename/internal/core/ports/driving"
	"github.com/custodia-labs/invoicename/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService feeds files reported by a watcher through the rename pipeline.
type WatchService struct {
	watcher driven.DocumentWatcher
	renames driving.RenameService
}

// NewWatchService creates a watch service.
func NewWatchService(watcher driven.DocumentWatcher, renames driving.RenameService) *WatchService {
	return &WatchService{watcher: watcher, renames: renames}
}

// Watch processes invoices created in dir until ctx is cancelled.
// Renamed files reappear as new names and come back as unchanged.
func (s *WatchService) Watch(ctx context.Context, dir string, apply bool, sink func(domain.FileResult)) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInputDirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInputDirectory, dir)
	}

	logger.Info("watching %s (apply=%t)", dir, apply)
	err = s.watcher.Watch(ctx, dir, func(path string) {
		result := s.renames.ProcessFile(ctx, path, apply)
		if result.Status == domain.StatusUnchanged {
			logger.Debug("%s already named", result.FileName())
			return
		}
		if sink != nil {
			sink(result)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
