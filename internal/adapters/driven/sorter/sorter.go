// Package sorter provides the default driven.ItemSorter.
package sorter

import (
	"slices"
	"strings"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
)

// Ensure KeySorter implements the interface.
var _ driven.ItemSorter = KeySorter{}

// KeySorter orders items by a derived key. Ties keep their input order.
type KeySorter struct{}

// New creates a key sorter.
func New() KeySorter {
	return KeySorter{}
}

// SortItems returns a sorted copy of items. Keys are computed once per item.
func (KeySorter) SortItems(items []domain.Item, key func(domain.Item) string) []domain.Item {
	type keyed struct {
		key  string
		item domain.Item
	}
	tmp := make([]keyed, len(items))
	for i, item := range items {
		tmp[i] = keyed{key: key(item), item: item}
	}
	slices.SortStableFunc(tmp, func(a, b keyed) int {
		return strings.Compare(a.key, b.key)
	})

	out := make([]domain.Item, len(tmp))
	for i, k := range tmp {
		out[i] = k.item
	}
	return out
}
