package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// progressEvery throttles line progress output for per-item updates.
const progressEvery = 100

// addTagModeFlag registers the --tag-mode override on an engine command.
func addTagModeFlag(cmd *cobra.Command) {
	cmd.Flags().String("tag-mode", "", "override the configured tag mode: add, remove or off")
}

// loadOCRSettings returns the configured engine settings with flag overrides applied.
func loadOCRSettings(cmd *cobra.Command) (domain.OCRSettings, error) {
	if settingsService == nil {
		return domain.OCRSettings{}, errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return domain.OCRSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	cfg := settings.OCR

	if f := cmd.Flags().Lookup("tag-mode"); f != nil && f.Changed {
		mode := domain.TagMode(f.Value.String())
		if !mode.IsValid() {
			return domain.OCRSettings{}, fmt.Errorf("%w: unknown tag mode %q", domain.ErrInvalidInput, mode)
		}
		cfg.TagMode = mode
	}
	return cfg, nil
}

// selectExportItems lists the items an export run should consider.
func selectExportItems(
	ctx context.Context,
	cfg domain.OCRSettings,
	tag string,
	mimeTypes []string,
	all bool,
) ([]domain.Item, error) {
	if collectionService == nil {
		return nil, errors.New("collection service not configured")
	}
	if tag == "" && len(mimeTypes) == 0 && !all {
		return nil, domain.ErrNoSelection
	}

	query := domain.ItemQuery{Tag: tag, MimeTypes: mimeTypes}
	if cfg.HandleExcludedItems {
		query = query.ExcludingExcluded()
	}
	items, err := collectionService.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("selecting items: %w", err)
	}
	return items, nil
}

// lineProgress prints engine progress on a single rewritten line.
func lineProgress(cmd *cobra.Command) domain.ProgressFunc {
	return func(message string, current, total int) {
		if current == total || current%progressEvery == 0 || total < progressEvery {
			cmd.Printf("\r%s", message)
		}
		if current == total {
			cmd.Println()
		}
	}
}

// printSummary prints summary lines as a table, or a fallback message when empty.
func printSummary(cmd *cobra.Command, lines []string, empty string) {
	if len(lines) == 0 {
		cmd.Println(empty)
		return
	}
	cmd.Println(summaryTable(lines))
}
