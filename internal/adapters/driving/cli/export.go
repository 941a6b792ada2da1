package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Export documents for OCR",
	Long: `Exports one copy of each distinct MD5 among the selected items into
numbered rollover directories below <dir>. Files are named <md5>.<ext>.
Every exported item and each of its duplicates is tagged as exported.

Select items with --tag, --mime or --all.`,
	Example: `  sercha-ocr export /ocr/in --tag "OCR|Must"
  sercha-ocr export /ocr/in --mime image/tiff --mime image/png`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("tag", "", "export items carrying this tag")
	exportCmd.Flags().StringSlice("mime", nil, "export items of these MIME types")
	exportCmd.Flags().Bool("all", false, "export every item in the collection")
	addTagModeFlag(exportCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}
	cfg, err := loadOCRSettings(cmd)
	if err != nil {
		return err
	}

	tag, _ := cmd.Flags().GetString("tag")
	mimes, _ := cmd.Flags().GetStringSlice("mime")
	all, _ := cmd.Flags().GetBool("all")

	items, err := selectExportItems(cmd.Context(), cfg, tag, mimes, all)
	var summary *domain.ExportSummary
	if err == nil {
		summary, err = exportService.Export(cmd.Context(), cfg, domain.ExportRequest{
			Items:       items,
			Destination: args[0],
			Progress:    lineProgress(cmd),
		})
	}
	if errors.Is(err, domain.ErrNoSelection) {
		cmd.Println("Please select some items to export.")
		return nil
	}
	if err != nil {
		if summary != nil {
			cmd.Println(summary.Headline())
			printSummary(cmd, summary.Lines(), "Nothing exported.")
		}
		return fmt.Errorf("export failed: %w", err)
	}

	cmd.Println(summary.Headline())
	printSummary(cmd, summary.Lines(), "Nothing exported.")
	for _, dir := range summary.Directories {
		cmd.Printf("  %s\n", dir)
	}
	cmd.Printf("Completed in %s\n", summary.Duration.Round(time.Millisecond))
	return nil
}
