package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-ocr/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService writes deduplicated copies of selected items, named by
// content digest, into a rollover-managed directory tree.
type ExportService struct {
	exporter driven.ItemExporter
	tagger   driven.TagService
	sorter   driven.ItemSorter
}

// NewExportService creates a new export service.
func NewExportService(exporter driven.ItemExporter, tagger driven.TagService, sorter driven.ItemSorter) *ExportService {
	return &ExportService{
		exporter: exporter,
		tagger:   tagger,
		sorter:   sorter,
	}
}

// Export writes the selected items into the destination tree.
//
// Items are visited in position order. Items without a digest, duplicates
// of an already exported digest, and unsupported types are skipped and
// counted. Duplicates still receive the exported tag. Failed writes are
// counted and never abort the run; only tag service failures do. When ctx
// is cancelled between items, the partial summary is returned with the
// context error.
func (s *ExportService) Export(ctx context.Context, cfg domain.OCRSettings, req domain.ExportRequest) (*domain.ExportSummary, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrNoSelection
	}
	root := strings.TrimSpace(req.Destination)
	if root == "" {
		return nil, domain.ErrNoDestination
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if locker, ok := s.exporter.(driven.DestinationLocker); ok {
		release, err := locker.LockDestination(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("locking export destination: %w", err)
		}
		defer func() {
			if err := release(); err != nil {
				logger.Warn("releasing export lock failed", "root", root, "error", err)
			}
		}()
	}

	logger.Section("Export")
	start := time.Now()

	if cfg.TagMode == domain.TagModeAdd {
		if err := s.tagger.CreateTag(ctx, domain.TagExported.Name()); err != nil {
			return nil, fmt.Errorf("creating tag: %w", err)
		}
	}

	items := s.sorter.SortItems(req.Items, domain.Item.PositionKey)
	cursor, err := newExportCursor(ctx, s.exporter, root, len(items), cfg.RolloverSize)
	if err != nil {
		return nil, err
	}

	registry := NewDigestRegistry()
	exported := NewTagBatch(s.tagger, domain.TagExported, cfg.TagMode, cfg.BatchSize)
	total := len(items)
	summary := &domain.ExportSummary{Selected: total, Destination: root}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			// Tag the items already written.
			if ferr := exported.Flush(context.WithoutCancel(ctx)); ferr != nil {
				logger.Warn("flushing after cancel failed", "error", ferr)
			}
			summary.Directories = cursor.Directories()
			summary.Duration = time.Since(start)
			logger.Warn("export cancelled", "exported", summary.Exported, "selected", total)
			return summary, err
		}
		req.Progress.Report(fmt.Sprintf("Exporting %d/%d", i+1, total), i+1, total)

		if !item.HasDigest() {
			summary.NoDigest++
			logger.Debug("skipping item without digest", "guid", item.GUID)
			continue
		}

		if !registry.TryClaim(item.Digest) {
			summary.Duplicates++
			logger.Debug("skipping duplicate", "guid", item.GUID, "digest", item.Digest)
			if err := exported.Add(ctx, item); err != nil {
				return nil, err
			}
			continue
		}

		ext, ok := domain.ExportExtension(item.MimeType)
		if !ok {
			summary.Unsupported++
			logger.Debug("skipping unsupported type", "guid", item.GUID, "mime_type", item.MimeType)
			continue
		}

		if err := s.exportOne(ctx, cursor, item, ext); err != nil {
			summary.Failed++
			logger.Warn("export failed", "guid", item.GUID, "digest", item.Digest, "error", err)
			continue
		}

		summary.Exported++
		if err := exported.Add(ctx, item); err != nil {
			return nil, err
		}
		if cursor.Advance(summary.Exported) {
			logger.Info("export milestone", "exported", summary.Exported, "next_dir", cursor.Dir())
		}
	}

	if err := exported.Flush(ctx); err != nil {
		return nil, err
	}

	summary.Directories = cursor.Directories()
	summary.Duration = time.Since(start)
	logger.Info(summary.Headline())
	logger.Info("export complete",
		"selected", summary.Selected,
		"exported", summary.Exported,
		"duplicates", summary.Duplicates,
		"unsupported", summary.Unsupported,
		"no_digest", summary.NoDigest,
		"failed", summary.Failed,
		"duration", summary.Duration,
	)
	return summary, nil
}

func (s *ExportService) exportOne(ctx context.Context, cursor *exportCursor, item domain.Item, ext string) error {
	dest, err := cursor.Path(ctx, strings.ToLower(item.Digest)+"."+ext)
	if err != nil {
		return err
	}
	return s.exporter.ExportItem(ctx, item, dest)
}
