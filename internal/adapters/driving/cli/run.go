package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

const (
	msgNoTask       = "No OCR Processing Option Chosen."
	msgNoSelection  = "Please select some items to export."
	msgNoDirectory  = "No directory selected."
	msgReopen       = "Import complete. Close and re-open the collection to see the updated items."
	msgNoIdentified = "No documents identified for OCR."
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive OCR workflow",
	Long: `Asks which OCR task to run, prompts for a directory where needed,
shows progress while the task runs and finishes with a summary.

Tasks:
  Identify Documents for OCR  tag OCR candidates in the collection
  Export for OCR              export the items carrying --tag
  Import OCR'd Documents      import OCR output from a directory`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("tag", domain.TagMustOCR.Name(), "tag selecting the items to export")
	addTagModeFlag(runCmd)
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	p := prompter
	if p == nil {
		p = newLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	task, err := p.ChooseTask(ctx)
	if err != nil {
		return err
	}

	var lines []string
	switch task {
	case domain.TaskClassify:
		lines, err = runClassifyTask(ctx, cmd, p)
	case domain.TaskExport:
		lines, err = runExportTask(ctx, cmd, p)
	case domain.TaskImport:
		lines, err = runImportTask(ctx, cmd, p)
	default:
		return p.ShowMessage(ctx, "Sercha OCR", []string{msgNoTask})
	}
	if err != nil {
		lines = append(lines, "Failed: "+err.Error())
		if showErr := p.ShowMessage(ctx, task.Label(), lines); showErr != nil {
			return errors.Join(err, showErr)
		}
		return err
	}
	return p.ShowMessage(ctx, task.Label(), lines)
}

func runClassifyTask(ctx context.Context, cmd *cobra.Command, p Prompter) ([]string, error) {
	if classificationService == nil {
		return nil, errors.New("classification service not configured")
	}
	cfg, err := loadOCRSettings(cmd)
	if err != nil {
		return nil, err
	}

	var summary *domain.ClassificationSummary
	err = p.RunWithProgress(ctx, domain.TaskClassify.Label(), func(ctx context.Context, progress domain.ProgressFunc) error {
		var err error
		summary, err = classificationService.Classify(ctx, cfg, progress)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}
	if lines := summary.Lines(); len(lines) > 0 {
		return lines, nil
	}
	return []string{msgNoIdentified}, nil
}

func runExportTask(ctx context.Context, cmd *cobra.Command, p Prompter) ([]string, error) {
	if exportService == nil {
		return nil, errors.New("export service not configured")
	}
	cfg, err := loadOCRSettings(cmd)
	if err != nil {
		return nil, err
	}

	tag, _ := cmd.Flags().GetString("tag")
	items, err := selectExportItems(ctx, cfg, tag, nil, false)
	if errors.Is(err, domain.ErrNoSelection) || (err == nil && len(items) == 0) {
		return []string{msgNoSelection}, nil
	}
	if err != nil {
		return nil, err
	}

	dir, err := p.ChooseDirectory(ctx, "Select Export Directory")
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return []string{msgNoDirectory}, nil
	}

	var summary *domain.ExportSummary
	err = p.RunWithProgress(ctx, domain.TaskExport.Label(), func(ctx context.Context, progress domain.ProgressFunc) error {
		var err error
		summary, err = exportService.Export(ctx, cfg, domain.ExportRequest{
			Items:       items,
			Destination: dir,
			Progress:    progress,
		})
		return err
	})
	if err != nil && summary == nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	lines := append([]string{summary.Headline()}, summary.Lines()...)
	for _, d := range summary.Directories {
		lines = append(lines, "Directory: "+d)
	}
	if err != nil {
		return lines, fmt.Errorf("export failed: %w", err)
	}
	return lines, nil
}

func runImportTask(ctx context.Context, cmd *cobra.Command, p Prompter) ([]string, error) {
	if importService == nil {
		return nil, errors.New("import service not configured")
	}
	cfg, err := loadOCRSettings(cmd)
	if err != nil {
		return nil, err
	}

	dir, err := p.ChooseDirectory(ctx, "Select OCR Output Directory")
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return []string{msgNoDirectory}, nil
	}

	var summary *domain.ImportSummary
	err = p.RunWithProgress(ctx, domain.TaskImport.Label(), func(ctx context.Context, progress domain.ProgressFunc) error {
		var err error
		summary, err = importService.Import(ctx, cfg, domain.ImportRequest{Root: dir, Progress: progress})
		return err
	})
	if err != nil && summary == nil {
		return nil, fmt.Errorf("import failed: %w", err)
	}
	if err != nil {
		return summary.Lines(), fmt.Errorf("import failed: %w", err)
	}
	return append(summary.Lines(), msgReopen), nil
}
