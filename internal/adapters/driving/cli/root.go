// Package cli provides the cobra command tree for sercha-ocr.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-ocr/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services wired by the composition root.
var (
	collectionService     driving.CollectionService
	settingsService       driving.SettingsService
	classificationService driving.ClassificationService
	exportService         driving.ExportService
	importService         driving.ImportService
	directoryWatcher      driven.DirectoryWatcher
	prompter              Prompter
)

// Services groups the dependencies the commands run against.
type Services struct {
	Collection     driving.CollectionService
	Settings       driving.SettingsService
	Classification driving.ClassificationService
	Export         driving.ExportService
	Import         driving.ImportService

	// Watcher is optional. Without it import --wait-quiet is rejected.
	Watcher driven.DirectoryWatcher

	// Prompter is optional. Without it the run command prompts on plain lines.
	Prompter Prompter
}

// SetServices sets the services used by all commands.
func SetServices(s Services) {
	collectionService = s.Collection
	settingsService = s.Settings
	classificationService = s.Classification
	exportService = s.Export
	importService = s.Import
	directoryWatcher = s.Watcher
	prompter = s.Prompter
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "sercha-ocr",
	Short: "Identify, export and re-import documents for OCR",
	Long: `sercha-ocr runs an OCR workflow over a document collection.

It identifies documents that likely need OCR, exports deduplicated copies
for an external OCR tool, and imports the OCR output back onto every item
sharing the same MD5.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: configureLogging,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "", "log format: auto, text or json (default from config)")
}

// configureLogging applies the logging flags, falling back to the configured format.
func configureLogging(cmd *cobra.Command, _ []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("getting verbose flag: %w", err)
	}
	if verbose {
		logger.SetVerbose(true)
	}

	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return fmt.Errorf("getting log-format flag: %w", err)
	}
	if format == "" && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			format = settings.Log.Format
		}
	}
	if format == "" {
		return nil
	}
	return logger.SetFormat(format)
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
