package domain

import (
	"fmt"
	"time"
)

// ProgressFunc receives progress updates from long-running engines.
// current and total are item counts; total may be zero when unknown.
type ProgressFunc func(message string, current, total int)

// Report calls the progress function if one is set.
func (f ProgressFunc) Report(message string, current, total int) {
	if f != nil {
		f(message, current, total)
	}
}

// ExportRequest describes one export run.
type ExportRequest struct {
	// Items is the user's selection. It is sorted by position before export.
	Items []Item

	// Destination is the root export directory.
	Destination string

	Progress ProgressFunc
}

// ImportRequest describes one import run.
type ImportRequest struct {
	// Root is the directory holding OCR output named by digest.
	Root string

	Progress ProgressFunc
}

// ExportSummary reports the outcome of an export.
type ExportSummary struct {
	// Selected is the number of items handed to the export.
	Selected int

	// Destination is the export root.
	Destination string

	Exported    int
	Duplicates  int
	Unsupported int
	NoDigest    int
	Failed      int

	// Directories lists the output directories written to, in order.
	Directories []string

	Duration time.Duration
}

// Total returns the number of items the export examined.
func (s *ExportSummary) Total() int {
	return s.Exported + s.Duplicates + s.Unsupported + s.NoDigest + s.Failed
}

// Headline returns the one-line outcome of the export.
func (s *ExportSummary) Headline() string {
	return fmt.Sprintf("Exported %d items from %d selected items to %s", s.Exported, s.Selected, s.Destination)
}

// Lines returns the human-readable summary, omitting zero counts.
func (s *ExportSummary) Lines() []string {
	var lines []string
	if s.Exported > 0 {
		lines = append(lines, fmt.Sprintf("Exported: %d", s.Exported))
	}
	if s.Duplicates > 0 {
		lines = append(lines, fmt.Sprintf("Duplicates Skipped: %d", s.Duplicates))
	}
	if s.Unsupported > 0 {
		lines = append(lines, fmt.Sprintf("Unsupported Type: %d", s.Unsupported))
	}
	if s.NoDigest > 0 {
		lines = append(lines, fmt.Sprintf("No MD5: %d", s.NoDigest))
	}
	if s.Failed > 0 {
		lines = append(lines, fmt.Sprintf("Failed: %d", s.Failed))
	}
	return lines
}

// ImportSummary reports the outcome of an import.
type ImportSummary struct {
	// StructuredFiles counts pdf files that matched at least one item.
	StructuredFiles int

	// TextFiles counts text files that matched at least one item.
	TextFiles int

	// Unmatched counts well-named files with no matching item.
	Unmatched int

	// Skipped counts files whose name is not a digest.
	Skipped int

	ItemsUpdated int
	ItemsFailed  int

	Duration time.Duration
}

// FilesProcessed returns the files imported by both passes.
func (s *ImportSummary) FilesProcessed() int {
	return s.StructuredFiles + s.TextFiles
}

// Lines returns the human-readable summary, omitting zero counts.
func (s *ImportSummary) Lines() []string {
	var lines []string
	if s.StructuredFiles > 0 {
		lines = append(lines, fmt.Sprintf("PDF Files Imported: %d", s.StructuredFiles))
	}
	if s.TextFiles > 0 {
		lines = append(lines, fmt.Sprintf("Text Files Imported: %d", s.TextFiles))
	}
	if s.ItemsUpdated > 0 {
		lines = append(lines, fmt.Sprintf("Items Updated: %d", s.ItemsUpdated))
	}
	if s.ItemsFailed > 0 {
		lines = append(lines, fmt.Sprintf("Items Failed: %d", s.ItemsFailed))
	}
	if s.Unmatched > 0 {
		lines = append(lines, fmt.Sprintf("Unmatched Files: %d", s.Unmatched))
	}
	if s.Skipped > 0 {
		lines = append(lines, fmt.Sprintf("Skipped Files: %d", s.Skipped))
	}
	return lines
}

// ClassificationSummary reports the number of items identified per tag.
type ClassificationSummary struct {
	Counts map[TagKind]int

	// FailedRules lists rules whose query could not be run.
	FailedRules []RuleKind
}

// NewClassificationSummary returns an empty summary.
func NewClassificationSummary() *ClassificationSummary {
	return &ClassificationSummary{Counts: make(map[TagKind]int)}
}

// Count returns the number of items identified for a tag.
func (s *ClassificationSummary) Count(kind TagKind) int {
	return s.Counts[kind]
}

// Total returns the number of tag assignments across all rules.
func (s *ClassificationSummary) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

var summaryLabels = map[TagKind]string{
	TagMustOCR:         "Must OCR",
	TagImagesOver500KB: "Images Over 500KB",
	TagImagesOver1MB:   "Images Over 1MB",
	TagImagesOver5MB:   "Images Over 5MB",
	TagAvgWords01To20:  "PDFs with 1 to 20 Avg Words Per Page",
	TagAvgWords21To40:  "PDFs with 21 to 40 Avg Words Per Page",
	TagAvgWords41To60:  "PDFs with 41 to 60 Avg Words Per Page",
	TagAvgWords61To80:  "PDFs with 61 to 80 Avg Words Per Page",
	TagAvgWords81To100: "PDFs with 81 to 100 Avg Words Per Page",
	TagAvgWordsOver100: "PDFs with more than 100 Avg Words Per Page",
}

// Lines returns one line per tag with a non-zero count, in tag order.
func (s *ClassificationSummary) Lines() []string {
	var lines []string
	for _, kind := range AllTagKinds() {
		n := s.Counts[kind]
		label, ok := summaryLabels[kind]
		if n == 0 || !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("Identified: %d %s", n, label))
	}
	for _, rule := range s.FailedRules {
		lines = append(lines, "Failed: "+rule.Description())
	}
	return lines
}

// Task is one of the interactive workflow choices.
type Task int

// Interactive tasks, in menu order.
const (
	TaskNone Task = iota
	TaskClassify
	TaskExport
	TaskImport
)

// Label returns the menu label for the task.
func (t Task) Label() string {
	switch t {
	case TaskClassify:
		return "Identify Documents for OCR"
	case TaskExport:
		return "Export for OCR"
	case TaskImport:
		return "Import OCR'd Documents"
	default:
		return ""
	}
}

// AllTasks returns the selectable tasks in menu order.
func AllTasks() []Task {
	return []Task{TaskClassify, TaskExport, TaskImport}
}
