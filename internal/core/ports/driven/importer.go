package driven

import (
	"context"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// ItemImporter applies OCR output to a single item.
type ItemImporter interface {
	// ImportStructured attaches a searchable document rendition to the item.
	ImportStructured(ctx context.Context, item domain.Item, path string) error

	// ReplaceTextFromFile replaces the item's text with the file contents,
	// decoded from the named character encoding.
	ReplaceTextFromFile(ctx context.Context, item domain.Item, path, encoding string) error
}
