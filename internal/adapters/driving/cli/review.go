package cli

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/invoicename/internal/adapters/driving/tui"
	"github.com/custodia-labs/invoicename/internal/logger"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Pick which renames to apply in an interactive list",
	Long: `Runs a dry-run over the input directory and shows the plans in a
terminal UI. Only the plans left selected are applied.

Controls:
  ↑/k, ↓/j  - Move
  Space     - Toggle the plan under the cursor
  a         - Toggle all plans
  Enter     - Apply the selected plans
  r         - Run the dry-run again
  ?         - Toggle help
  q         - Quit`,
	Args: cobra.NoArgs,
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("review panicked: %v\n%s", r, debug.Stack())
			err = errors.New("review terminated unexpectedly")
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(renameService), settings.InputPath)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
