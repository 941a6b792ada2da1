package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.OCR, settings.OCR)
	assert.Equal(t, defaults.Export.Target, settings.Export.Target)
	assert.True(t, settings.Export.Minio.UseSSL)
	assert.Equal(t, "auto", settings.Log.Format)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("ocr.batch_size", 250)
	_ = store.Set("ocr.tag_mode", "remove")
	_ = store.Set("ocr.append_ocr_text", true)
	_ = store.Set("classify.images_over_1mb", false)
	_ = store.Set("export.target", "minio")
	_ = store.Set("minio.bucket", "ocr-staging")
	_ = store.Set("tagging.max_flushes_per_second", 4.0)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, 250, settings.OCR.BatchSize)
	assert.Equal(t, domain.TagModeRemove, settings.OCR.TagMode)
	assert.True(t, settings.OCR.AppendOCRText)
	assert.False(t, settings.OCR.Rules.ImagesOver1MB)
	assert.True(t, settings.OCR.Rules.ImagesOver5MB)
	assert.Equal(t, domain.ExportTargetMinio, settings.Export.Target)
	assert.Equal(t, "ocr-staging", settings.Export.Minio.Bucket)
	assert.InDelta(t, 4.0, settings.Tagging.MaxFlushesPerSecond, 0.001)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("ocr.tag_mode", "toggle")
	_ = store.Set("export.target", "ftp")
	_ = store.Set("ocr.rollover_size", -5)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.TagModeAdd, settings.OCR.TagMode)
	assert.Equal(t, domain.ExportTargetLocal, settings.Export.Target)
	assert.Equal(t, domain.DefaultRolloverSize, settings.OCR.RolloverSize)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.OCR.RolloverSize = 200
	settings.OCR.Rules.WordCountAverage = false
	settings.Export.Minio.SecretKey = "s3cret"
	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 200, got.OCR.RolloverSize)
	assert.False(t, got.OCR.Rules.WordCountAverage)
	assert.Equal(t, "s3cret", got.Export.Minio.SecretKey)

	// An empty secret does not wipe the stored one.
	settings.Export.Minio.SecretKey = ""
	require.NoError(t, service.Save(&settings))
	assert.Equal(t, "s3cret", store.GetString("minio.secret_key"))
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("ocr.batch_size", "50"))
	require.NoError(t, service.Set("OCR.Tag_Mode", "OFF"))
	require.NoError(t, service.Set("classify.must_ocr", "false"))
	require.NoError(t, service.Set("tagging.max_flushes_per_second", "0.5"))
	require.NoError(t, service.Set("ocr.text_encoding", "windows-1252"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 50, settings.OCR.BatchSize)
	assert.Equal(t, domain.TagModeOff, settings.OCR.TagMode)
	assert.False(t, settings.OCR.Rules.MustOCR)
	assert.InDelta(t, 0.5, settings.Tagging.MaxFlushesPerSecond, 0.001)
	assert.Equal(t, "windows-1252", settings.OCR.TextEncoding)
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct{ key, value string }{
		{"ocr.batch_size", "0"},
		{"ocr.batch_size", "many"},
		{"ocr.tag_mode", "flip"},
		{"export.target", "ftp"},
		{"ocr.append_ocr_text", "maybe"},
		{"tagging.max_flushes_per_second", "-1"},
		{"no.such.key", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	keys := service.Keys()

	assert.Len(t, keys, 20)
	for _, key := range keys {
		assert.NotContains(t, key, " ")
	}
	assert.Contains(t, keys, "ocr.rollover_size")
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.Validate())

	_ = store.Set("export.target", "minio")
	assert.Error(t, service.Validate())

	_ = store.Set("minio.endpoint", "localhost:9000")
	_ = store.Set("minio.bucket", "ocr")
	assert.NoError(t, service.Validate())
}
