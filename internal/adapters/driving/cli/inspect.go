package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Show how the client name is found in one invoice",
	Long: `Extracts the text of one invoice and prints the detected layout, the
raw candidate after the label, the sanitized name, the issue date and the
numbered text lines. The file is never modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if renameService == nil {
		return errors.New("rename service not configured")
	}

	insp, err := renameService.Inspect(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("inspect %s: %w", args[0], err)
	}

	printInspection(cmd, insp)
	if !insp.Found {
		cmd.Println("Proposed:  (client name not found)")
		return nil
	}

	result := renameService.ProcessFile(cmd.Context(), args[0], false)
	switch {
	case result.Status == domain.StatusUnchanged:
		cmd.Println("Proposed:  (already named)")
	case result.Plan != nil:
		cmd.Printf("Proposed:  %s\n", result.Plan.ProposedName())
	default:
		cmd.Printf("Proposed:  (%s)\n", describeResult(result))
	}
	return nil
}
