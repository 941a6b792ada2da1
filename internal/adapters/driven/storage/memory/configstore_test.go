package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
)

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("ocr.batch_size", 250))
	require.NoError(t, store.Set("ocr.rollover_size", int64(500)))
	require.NoError(t, store.Set("ocr.tag_mode", "remove"))
	require.NoError(t, store.Set("ocr.append_ocr_text", true))
	require.NoError(t, store.Set("tagging.max_flushes_per_second", 2.5))
	require.NoError(t, store.Set("export.paths", []any{"a", 1, "b"}))

	assert.Equal(t, 250, store.GetInt("ocr.batch_size"))
	assert.Equal(t, 500, store.GetInt("ocr.rollover_size"))
	assert.Equal(t, "remove", store.GetString("ocr.tag_mode"))
	assert.True(t, store.GetBool("ocr.append_ocr_text"))
	assert.InDelta(t, 2.5, store.GetFloat("tagging.max_flushes_per_second"), 0.0001)
	assert.InDelta(t, 250.0, store.GetFloat("ocr.batch_size"), 0.0001)
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("export.paths"))
}

func TestConfigStore_MissingAndWrongType(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("ocr.tag_mode", 3))

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("ocr.tag_mode"))
	assert.Zero(t, store.GetInt("missing"))
	assert.False(t, store.GetBool("ocr.tag_mode"))
	assert.Zero(t, store.GetFloat("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("ocr.batch_size", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("ocr.batch_size")
		}()
	}
	wg.Wait()

	_, ok := store.Get("ocr.batch_size")
	assert.True(t, ok)
}

func TestConfigStore_InterfaceCompliance(t *testing.T) {
	var _ driven.ConfigStore = NewConfigStore()
}
