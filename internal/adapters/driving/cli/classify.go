package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Identify documents for OCR",
	Long: `Runs the OCR candidate rules against the collection and tags every match:

  must_ocr                PDFs with no text that are not encrypted
  images_over_500kb       images of at least 500KB
  images_over_1mb         images of at least 1MB
  images_over_5mb         images of at least 5MB
  pdf_word_count_average  PDFs bucketed by average words per page

Rules are enabled in the config file (classify.<rule>). Use --rule to run a
subset regardless of the config.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringSlice("rule", nil, "run only these rules")
	addTagModeFlag(classifyCmd)
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	if classificationService == nil {
		return errors.New("classification service not configured")
	}
	cfg, err := loadOCRSettings(cmd)
	if err != nil {
		return err
	}

	rules, err := cmd.Flags().GetStringSlice("rule")
	if err != nil {
		return fmt.Errorf("getting rule flag: %w", err)
	}
	if len(rules) > 0 {
		toggles, err := parseRules(rules)
		if err != nil {
			return err
		}
		cfg.Rules = toggles
	}

	summary, err := classificationService.Classify(cmd.Context(), cfg, lineProgress(cmd))
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	var rows [][]string
	for _, kind := range domain.AllTagKinds() {
		if n := summary.Count(kind); n > 0 {
			rows = append(rows, []string{kind.Name(), strconv.Itoa(n)})
		}
	}
	if len(rows) == 0 {
		cmd.Println("No documents identified for OCR.")
	} else {
		cmd.Println(renderTable([]string{"Tag", "Items"}, rows, []columnAlignment{alignLeft, alignRight}))
	}
	for _, rule := range summary.FailedRules {
		cmd.Printf("Failed: %s\n", rule.Description())
	}
	return nil
}

// parseRules builds toggles enabling only the named rules.
func parseRules(names []string) (domain.RuleToggles, error) {
	var toggles domain.RuleToggles
	for _, name := range names {
		kind := domain.RuleKind(name)
		if !kind.IsValid() {
			return domain.RuleToggles{}, fmt.Errorf("%w: unknown rule %q", domain.ErrInvalidInput, name)
		}
		toggles.Set(kind, true)
	}
	return toggles, nil
}
