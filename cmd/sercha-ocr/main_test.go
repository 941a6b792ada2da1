package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/export/localfs"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/export/minio"
	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

func TestNewExporter(t *testing.T) {
	t.Run("local by default", func(t *testing.T) {
		exporter, err := newExporter(domain.ExportSettings{})
		require.NoError(t, err)
		assert.IsType(t, &localfs.Exporter{}, exporter)
	})

	t.Run("minio", func(t *testing.T) {
		exporter, err := newExporter(domain.ExportSettings{
			Target: domain.ExportTargetMinio,
			Minio:  domain.MinioSettings{Endpoint: "localhost:9000", Bucket: "ocr"},
		})
		require.NoError(t, err)
		assert.IsType(t, &minio.Exporter{}, exporter)
	})

	t.Run("minio without bucket", func(t *testing.T) {
		_, err := newExporter(domain.ExportSettings{Target: domain.ExportTargetMinio})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
