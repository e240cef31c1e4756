// Command invoicename renames AFIP invoice PDFs after their client.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/invoicename/internal/adapters/driven/config/file"
	"github.com/custodia-labs/invoicename/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/invoicename/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/invoicename/internal/adapters/driving/cli"
	fsconnector "github.com/custodia-labs/invoicename/internal/connectors/filesystem"
	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driven"
	"github.com/custodia-labs/invoicename/internal/core/ports/driving"
	"github.com/custodia-labs/invoicename/internal/core/services"
	"github.com/custodia-labs/invoicename/internal/logger"
	"github.com/custodia-labs/invoicename/internal/normalisers/pdf"
)

// version is set via -ldflags at build time.
var version = "dev"

// Exit codes.
const (
	exitError          = 1
	exitInputDirectory = 2
)

func main() {
	cli.SetVersion(version)
	cli.Configure(openSettings, buildServices)

	if err := cli.Execute(context.Background()); err != nil {
		if errors.Is(err, domain.ErrInputDirectory) {
			os.Exit(exitInputDirectory)
		}
		os.Exit(exitError)
	}
}

// openSettings opens the TOML config store, falling back to an in-memory
// store when the home directory or the file cannot be read.
func openSettings(configDir string) (driving.SettingsService, error) {
	if configDir == "" {
		configDir = os.Getenv("INVOICENAME_CONFIG_DIR")
	}

	var store driven.ConfigStore
	fileStore, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("config file unavailable, using defaults: %v", err)
		store = memory.NewConfigStore(nil)
	} else {
		store = fileStore
	}

	return services.NewSettingsService(store, os.LookupEnv), nil
}

// buildServices wires the driven adapters for resolved settings.
func buildServices(settings domain.Settings) (*cli.Services, error) {
	extractor := pdf.NewChainFromSettings(settings)
	if len(extractor.Backends()) == 0 {
		return nil, fmt.Errorf("%w: no text extraction backend available\n%s",
			domain.ErrExtraction, pdf.InstallInstructions())
	}
	logger.Debug("extraction backends: %s", extractor.Name())

	rename := services.NewRenameService(
		fsconnector.NewScanner(),
		extractor,
		filesystem.New(),
		settings,
	)
	watch := services.NewWatchService(fsconnector.NewWatcher(fsconnector.DefaultDebounce), rename)

	return &cli.Services{Rename: rename, Watch: watch}, nil
}
