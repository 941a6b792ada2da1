package sorter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

func TestKeySorter_PositionOrder(t *testing.T) {
	items := []domain.Item{
		{GUID: "third", Position: []int{10}},
		{GUID: "first", Position: []int{2}},
		{GUID: "second", Position: []int{2, 1}},
	}

	sorted := New().SortItems(items, domain.Item.PositionKey)

	assert.Equal(t, "first", sorted[0].GUID)
	assert.Equal(t, "second", sorted[1].GUID)
	assert.Equal(t, "third", sorted[2].GUID)
	assert.Equal(t, "third", items[0].GUID, "input is not modified")
}

func TestKeySorter_StableOnTies(t *testing.T) {
	items := []domain.Item{{GUID: "a"}, {GUID: "b"}, {GUID: "c"}}

	sorted := New().SortItems(items, func(domain.Item) string { return "same" })

	assert.Equal(t, items, sorted)
}

func TestKeySorter_Empty(t *testing.T) {
	assert.Empty(t, New().SortItems(nil, domain.Item.PositionKey))
}
