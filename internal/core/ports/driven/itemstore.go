package driven

import (
	"context"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// ItemSearcher runs structured queries against the collection.
// Exclusion filtering is requested by the caller through the query.
type ItemSearcher interface {
	// Search returns every item matching the query.
	Search(ctx context.Context, query domain.ItemQuery) ([]domain.Item, error)
}

// ItemStore persists the collection. Backed by SQLite.
type ItemStore interface {
	ItemSearcher

	// SaveItem stores or updates an item, including its tags.
	SaveItem(ctx context.Context, item *domain.Item) error

	// GetItem retrieves an item by GUID.
	GetItem(ctx context.Context, guid string) (*domain.Item, error)

	// SetExcluded marks items as excluded or included.
	// Returns the number of items changed.
	SetExcluded(ctx context.Context, guids []string, excluded bool) (int, error)

	// Close releases the underlying resources.
	Close() error
}
