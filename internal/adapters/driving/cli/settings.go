package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in the config file.

Settings are resolved per key from command-line flags, then environment
variables, then the config file, then built-in defaults.`,
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store one setting in the config file",
	Long: `Validates VALUE and stores it under KEY in the config file.

Keys:
  input_path                  directory with the invoice PDFs
  output_path                 copy renamed files here instead of renaming in place
  filename_format             suffix, date-client or client-date
  max_name_length             maximum client name length in bytes
  extraction.lookahead        lines scanned below an empty label
  extraction.suffix_fallback  true to fall back to corporate suffix lines
  extraction.workers          concurrent text extractions
  extraction.backends         e.g. pdftotext,textlayer,contentstream
  extraction.pdftotext_path   pdftotext binary`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:         "wizard",
	Short:       "Interactive setup wizard",
	Long:        `Run an interactive wizard to configure the common settings step by step.`,
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	path := settingsService.Path()
	if path == "" {
		path = "(in memory, not saved)"
	}
	cmd.Printf("Config file: %s\n\n", path)

	stored := settingsService.Stored()
	effective, err := settingsService.Resolve(nil)
	values := settingValues(effective)
	defaults := settingValues(domain.DefaultSettings())

	for _, key := range domain.SettingKeys() {
		source := "default"
		if _, ok := stored[key]; ok {
			source = "config file"
		} else if err == nil && values[key] != defaults[key] {
			source = "environment"
		}
		value := values[key]
		if err != nil {
			value = stored[key]
		}
		cmd.Printf("  %-27s %-30s (%s)\n", key, orNone(value), source)
	}
	cmd.Println()

	if err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'invoicename settings set KEY VALUE' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("invoicename Settings Wizard")
	cmd.Println("===========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())
	current, _ := settingsService.Resolve(nil) //nolint:errcheck // defaults are fine for prompts
	if current.FilenameFormat == "" {
		current = domain.DefaultSettings()
	}

	cmd.Printf("Step 1: Invoice directory [%s]: ", current.InputPath)
	if input := readLine(reader); input != "" {
		if err := settingsService.Set(domain.KeyInputPath, input); err != nil {
			return fmt.Errorf("failed to set input path: %w", err)
		}
	}

	cmd.Printf("Step 2: Output directory, empty to rename in place [%s]: ", orNone(current.OutputPath))
	if input := readLine(reader); input != "" {
		if err := settingsService.Set(domain.KeyOutputPath, input); err != nil {
			return fmt.Errorf("failed to set output path: %w", err)
		}
	}

	cmd.Println("Step 3: File name format")
	formats := []domain.FilenameFormat{domain.FormatSuffix, domain.FormatDateClient, domain.FormatClientDate}
	defaultIdx := 1
	for i, f := range formats {
		cmd.Printf("  %d. %s\n", i+1, f.Description())
		if f == current.FilenameFormat {
			defaultIdx = i + 1
		}
	}
	cmd.Printf("Enter choice [%d]: ", defaultIdx)
	idx := parseChoice(readLine(reader), len(formats), defaultIdx)
	if err := settingsService.Set(domain.KeyFilenameFormat, formats[idx-1].String()); err != nil {
		return fmt.Errorf("failed to set filename format: %w", err)
	}

	cmd.Printf("Step 4: Maximum client name length [%d]: ", current.MaxNameLength)
	if input := readLine(reader); input != "" {
		if err := settingsService.Set(domain.KeyMaxNameLength, input); err != nil {
			return fmt.Errorf("failed to set max name length: %w", err)
		}
	}

	cmd.Println()
	if _, err := settingsService.Resolve(nil); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Printf("Settings saved to %s\n", settingsService.Path())
	}
	return nil
}

// settingValues renders resolved settings by key.
func settingValues(s domain.Settings) map[string]string {
	backends := make([]string, 0, len(s.Backends))
	for _, b := range s.Backends {
		backends = append(backends, string(b))
	}
	return map[string]string{
		domain.KeyInputPath:      s.InputPath,
		domain.KeyOutputPath:     s.OutputPath,
		domain.KeyFilenameFormat: s.FilenameFormat.String(),
		domain.KeyMaxNameLength:  strconv.Itoa(s.MaxNameLength),
		domain.KeyLookAhead:      strconv.Itoa(s.LookAhead),
		domain.KeySuffixFallback: strconv.FormatBool(s.SuffixFallback),
		domain.KeyWorkers:        strconv.Itoa(s.Workers),
		domain.KeyBackends:       strings.Join(backends, ","),
		domain.KeyPdftotextPath:  s.PdftotextPath,
	}
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n') //nolint:errcheck // EOF yields the partial line
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
