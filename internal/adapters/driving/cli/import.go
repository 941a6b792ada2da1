package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import OCR'd documents",
	Long: `Imports OCR output named by MD5 from <dir>. Each <md5>.pdf is attached
as the searchable rendition of every item with that MD5, then each <md5>.txt
replaces (or with --append-text, extends) the items' text.

Use --wait-quiet to wait until the OCR tool has stopped writing into <dir>.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("append-text", false, "keep the original text and append the OCR text")
	importCmd.Flags().Duration("wait-quiet", 0, "wait until no file in <dir> has changed for this long")
	addTagModeFlag(importCmd)
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}
	cfg, err := loadOCRSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("append-text") {
		cfg.AppendOCRText, _ = cmd.Flags().GetBool("append-text")
	}

	quiet, err := cmd.Flags().GetDuration("wait-quiet")
	if err != nil {
		return fmt.Errorf("getting wait-quiet flag: %w", err)
	}
	if quiet > 0 {
		if directoryWatcher == nil {
			return errors.New("directory watcher not configured")
		}
		cmd.Printf("Waiting for %s to be quiet for %s...\n", args[0], quiet)
		if err := directoryWatcher.WaitForQuiet(cmd.Context(), args[0], quiet); err != nil {
			return fmt.Errorf("waiting for OCR output: %w", err)
		}
	}

	summary, err := importService.Import(cmd.Context(), cfg, domain.ImportRequest{
		Root:     args[0],
		Progress: lineProgress(cmd),
	})
	if err != nil {
		if summary != nil {
			printSummary(cmd, summary.Lines(), "No OCR output imported.")
		}
		return fmt.Errorf("import failed: %w", err)
	}

	printSummary(cmd, summary.Lines(), "No OCR output imported.")
	cmd.Printf("Time for Import of text/pdf files: %s\n", summary.Duration)
	return nil
}
