package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

var watchApply bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rename invoices as they arrive in the input directory",
	Long: `Watches the input directory and processes every PDF that is created or
copied into it. Without --apply the plan for each new file is printed only.
Files that already carry their client name are skipped silently.

Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchApply, "apply", false, "rename new files instead of printing the plan")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := newPrinter(cmd.OutOrStdout(), !watchApply)
	cmd.Printf("Watching %s for new invoices (Ctrl+C to stop)\n", settings.InputPath)

	return watchService.Watch(ctx, settings.InputPath, watchApply, func(r domain.FileResult) {
		p.result(r)
	})
}
