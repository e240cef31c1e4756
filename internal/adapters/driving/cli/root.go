// Package cli provides the invoicename command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driving"
	"github.com/custodia-labs/invoicename/internal/logger"
)

// version is set at build time.
var version = "dev"

// annotationSettingsOnly marks commands that need the settings service but
// must run even when the stored settings do not resolve.
const annotationSettingsOnly = "settings-only"

// Services bundles the driving ports that depend on resolved settings.
type Services struct {
	Rename driving.RenameService
	Watch  driving.WatchService
}

// SettingsFactory opens the settings service for a config directory.
// An empty dir selects the default location.
type SettingsFactory func(configDir string) (driving.SettingsService, error)

// ServiceFactory builds the services for resolved settings.
type ServiceFactory func(settings domain.Settings) (*Services, error)

var (
	newSettingsService SettingsFactory
	newServices        ServiceFactory

	settingsService driving.SettingsService
	settings        domain.Settings
	renameService   driving.RenameService
	watchService    driving.WatchService
)

// Persistent flag values.
var (
	configDir string
	verbose   bool
)

// flagKeys maps flags to the setting keys they override.
var flagKeys = map[string]string{
	"path":            domain.KeyInputPath,
	"output":          domain.KeyOutputPath,
	"format":          domain.KeyFilenameFormat,
	"max-length":      domain.KeyMaxNameLength,
	"lookahead":       domain.KeyLookAhead,
	"suffix-fallback": domain.KeySuffixFallback,
	"workers":         domain.KeyWorkers,
	"backends":        domain.KeyBackends,
}

// flagAliases maps the Spanish spellings accepted for compatibility.
var flagAliases = map[string]string{
	"ruta":    "path",
	"aplicar": "apply",
	"depurar": "debug",
}

var rootCmd = &cobra.Command{
	Use:   "invoicename",
	Short: "Rename invoice PDFs after the client they were issued to",
	Long: `invoicename reads AFIP-format invoice PDFs, finds the client name
("Apellido y Nombre / Razón Social") and renames each file to include it:

  20282114055_011_00001_00000005.pdf
    -> 20282114055_011_00001_00000005 - CS TECH CONSULTING SA.pdf

Nothing is renamed unless --apply is given; the default run only prints
the plan. Spanish flag spellings (--ruta, --aplicar, --depurar) are accepted.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE:              runBatch,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("path", "", "directory with the invoice PDFs (default \"facturas_pdf\")")
	pf.StringP("output", "o", "", "copy renamed files into this directory instead of renaming in place")
	pf.StringP("format", "f", "", "file name format: suffix, date-client or client-date")
	pf.Int("max-length", domain.DefaultMaxNameLength, "maximum client name length in bytes")
	pf.Int("lookahead", 0, "lines to scan below an empty label (0 disables)")
	pf.Bool("suffix-fallback", false, "fall back to a line with a corporate suffix (SA, SRL...)")
	pf.IntP("workers", "w", 1, "concurrent text extractions")
	pf.String("backends", "", "comma-separated extraction backends (pdftotext,textlayer,contentstream)")
	pf.StringVar(&configDir, "config-dir", "", "directory holding config.toml (default ~/.invoicename)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.Flags().Bool("apply", false, "rename the files instead of printing the plan")
	rootCmd.Flags().Bool("debug", false, "print the extracted text of files without a client name")

	rootCmd.SetGlobalNormalizationFunc(normalizeFlag)
	rootCmd.SetOut(os.Stdout)
}

// normalizeFlag maps alias spellings onto the canonical flag names.
func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// Configure sets the factories used to build services once flags are parsed.
func Configure(settingsFactory SettingsFactory, serviceFactory ServiceFactory) {
	newSettingsService = settingsFactory
	newServices = serviceFactory
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// prepare resolves settings once and builds the services every command uses.
func prepare(cmd *cobra.Command, _ []string) error {
	debug, _ := cmd.Flags().GetBool("debug") //nolint:errcheck // flag only exists on root
	logger.SetVerbose(verbose || debug)

	if newSettingsService == nil {
		return errors.New("settings service not configured")
	}
	svc, err := newSettingsService(configDir)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	settingsService = svc

	if cmd.Annotations[annotationSettingsOnly] != "" {
		return nil
	}

	resolved, err := settingsService.Resolve(changedSettings(cmd.Flags()))
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	settings = resolved

	if newServices == nil {
		return errors.New("rename service not configured")
	}
	services, err := newServices(resolved)
	if err != nil {
		return err
	}
	renameService = services.Rename
	watchService = services.Watch
	return nil
}

// changedSettings returns the setting overrides given on the command line.
func changedSettings(flags *pflag.FlagSet) map[string]string {
	out := make(map[string]string)
	flags.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			out[key] = f.Value.String()
		}
	})
	return out
}

func runBatch(cmd *cobra.Command, _ []string) error {
	if renameService == nil {
		return errors.New("rename service not configured")
	}

	apply, _ := cmd.Flags().GetBool("apply") //nolint:errcheck // flag defined above
	debug, _ := cmd.Flags().GetBool("debug") //nolint:errcheck // flag defined above

	ctx := cmd.Context()
	p := newPrinter(cmd.OutOrStdout(), !apply)

	report, err := renameService.Run(ctx, domain.RunOptions{Dir: settings.InputPath, Apply: apply},
		func(r domain.FileResult) {
			p.result(r)
			if debug && r.Status == domain.StatusNotFound {
				if insp, err := renameService.Inspect(ctx, r.Path); err == nil {
					printInspection(cmd, insp)
				}
			}
		})
	if err != nil {
		if report != nil {
			p.summary(report)
		}
		return err
	}

	if report.Total() == 0 {
		cmd.Printf("No PDF files found in %s\n", report.Dir)
		return nil
	}
	p.summary(report)
	return nil
}
