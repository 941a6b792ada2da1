package driven

import "github.com/custodia-labs/sercha-ocr/internal/core/domain"

// ItemSorter orders items by a derived string key.
type ItemSorter interface {
	// SortItems returns the items in ascending key order.
	// The input slice is not modified.
	SortItems(items []domain.Item, key func(domain.Item) string) []domain.Item
}
