package driving

import (
	"context"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// AddOptions controls how files are added to the collection.
type AddOptions struct {
	// Properties are attached to every added item.
	Properties map[string]string

	// Workers bounds parallel hashing. Zero uses the number of CPUs.
	Workers int

	// Encrypted marks every added item as encrypted. A true
	// domain.EncryptedProperty in Properties has the same effect.
	Encrypted bool
}

// AddResult reports the outcome of adding files.
type AddResult struct {
	// Items are the stored items, in position order.
	Items []domain.Item

	// Failed maps paths that could not be added to the reason.
	Failed map[string]string
}

// CollectionService manages the items that the OCR workflow operates on.
type CollectionService interface {
	// Add walks the paths and stores one item per regular file.
	Add(ctx context.Context, paths []string, opts AddOptions) (*AddResult, error)

	// List returns items matching the query.
	List(ctx context.Context, query domain.ItemQuery) ([]domain.Item, error)

	// Get retrieves an item by GUID.
	Get(ctx context.Context, guid string) (*domain.Item, error)

	// Exclude marks items as excluded. Returns the number changed.
	Exclude(ctx context.Context, guids []string) (int, error)

	// Include clears the excluded flag. Returns the number changed.
	Include(ctx context.Context, guids []string) (int, error)
}
