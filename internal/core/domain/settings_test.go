package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOCRSettings(t *testing.T) {
	s := DefaultOCRSettings()

	assert.Equal(t, 1000, s.BatchSize)
	assert.Equal(t, 1000, s.RolloverSize)
	assert.Equal(t, TagModeAdd, s.TagMode)
	assert.False(t, s.AppendOCRText)
	assert.True(t, s.HandleExcludedItems)
	assert.Equal(t, "UTF-8", s.TextEncoding)
	for _, kind := range AllRuleKinds() {
		assert.True(t, s.Rules.Enabled(kind), kind)
	}
	assert.NoError(t, s.Validate())
}

func TestOCRSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OCRSettings)
	}{
		{"zero batch size", func(s *OCRSettings) { s.BatchSize = 0 }},
		{"negative rollover", func(s *OCRSettings) { s.RolloverSize = -1 }},
		{"unknown tag mode", func(s *OCRSettings) { s.TagMode = "toggle" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultOCRSettings()
			tt.mutate(&s)
			err := s.Validate()
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestExportTarget_IsValid(t *testing.T) {
	assert.True(t, ExportTargetLocal.IsValid())
	assert.True(t, ExportTargetMinio.IsValid())
	assert.False(t, ExportTarget("ftp").IsValid())
	assert.Equal(t, unknownDescription, ExportTarget("ftp").Description())
}

func TestMinioSettings_IsConfigured(t *testing.T) {
	assert.False(t, MinioSettings{}.IsConfigured())
	assert.False(t, MinioSettings{Endpoint: "localhost:9000"}.IsConfigured())
	assert.True(t, MinioSettings{Endpoint: "localhost:9000", Bucket: "ocr"}.IsConfigured())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()
	assert.Equal(t, ExportTargetLocal, s.Export.Target)
	assert.Equal(t, "auto", s.Log.Format)
	assert.Zero(t, s.Tagging.MaxFlushesPerSecond)
}
