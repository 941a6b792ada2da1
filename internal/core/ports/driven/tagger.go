package driven

import (
	"context"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// TagService applies tag mutations to batches of items.
// AddTag and RemoveTag are expected to be efficient for large batches.
type TagService interface {
	// CreateTag registers a tag name. Creating an existing tag is not an error.
	CreateTag(ctx context.Context, name string) error

	// AddTag applies the tag to every item in the batch.
	AddTag(ctx context.Context, name string, items []domain.Item) error

	// RemoveTag removes the tag from every item in the batch.
	RemoveTag(ctx context.Context, name string, items []domain.Item) error
}
