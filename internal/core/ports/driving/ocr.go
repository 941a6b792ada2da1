package driving

import (
	"context"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// ClassificationService identifies documents that likely need OCR.
type ClassificationService interface {
	// Classify runs every enabled rule and tags the matching items.
	Classify(ctx context.Context, cfg domain.OCRSettings, progress domain.ProgressFunc) (*domain.ClassificationSummary, error)
}

// ExportService exports deduplicated copies of items for an external OCR tool.
type ExportService interface {
	// Export writes the selected items into the destination tree.
	Export(ctx context.Context, cfg domain.OCRSettings, req domain.ExportRequest) (*domain.ExportSummary, error)
}

// ImportService reconciles OCR output back onto the collection.
type ImportService interface {
	// Import applies every digest-named file under the root to matching items.
	Import(ctx context.Context, cfg domain.OCRSettings, req domain.ImportRequest) (*domain.ImportSummary, error)
}
