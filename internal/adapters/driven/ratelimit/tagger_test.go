package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

func TestWrap_ZeroRateIsPassthrough(t *testing.T) {
	inner := memory.NewItemStore()
	assert.Same(t, inner, Wrap(inner, 0))
	assert.Same(t, inner, Wrap(inner, -1))
}

func TestTagger_Throttles(t *testing.T) {
	item := domain.Item{GUID: "g1"}
	inner := memory.NewItemStore(item)
	tagger := Wrap(inner, 20)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, tagger.AddTag(ctx, "Exported", []domain.Item{item}))
	}
	// Burst of one: the second and third calls wait 50ms each.
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)

	got, err := inner.GetItem(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, got.HasTag("Exported"))

	require.NoError(t, tagger.RemoveTag(ctx, "Exported", []domain.Item{item}))
	got, err = inner.GetItem(ctx, "g1")
	require.NoError(t, err)
	assert.False(t, got.HasTag("Exported"))
}

func TestTagger_CancelledWait(t *testing.T) {
	item := domain.Item{GUID: "g1"}
	tagger := Wrap(memory.NewItemStore(item), 0.01)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, tagger.AddTag(ctx, "Exported", []domain.Item{item}))
	cancel()
	assert.Error(t, tagger.AddTag(ctx, "Exported", []domain.Item{item}))
	assert.NoError(t, tagger.CreateTag(context.Background(), "Imported"))
}
