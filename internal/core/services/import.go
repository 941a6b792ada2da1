package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-ocr/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// OCRTextSeparator sits between the original text and the appended OCR text.
const OCRTextSeparator = "\n\nOCR TEXT----------------------\n\n"

var (
	structuredName = regexp.MustCompile(`(?i)^([0-9a-f]{32})\.pdf$`)
	textName       = regexp.MustCompile(`(?i)^([0-9a-f]{32})\.txt$`)
)

// ImportService applies OCR output files, named by content digest, to every
// item sharing that digest.
type ImportService struct {
	searcher driven.ItemSearcher
	importer driven.ItemImporter
	tagger   driven.TagService
}

// NewImportService creates a new import service.
func NewImportService(searcher driven.ItemSearcher, importer driven.ItemImporter, tagger driven.TagService) *ImportService {
	return &ImportService{
		searcher: searcher,
		importer: importer,
		tagger:   tagger,
	}
}

// applyFunc applies one OCR output file to one item.
type applyFunc func(ctx context.Context, item domain.Item, path string) error

// Import runs the structured pass over every document under the root, then
// the plain-text pass. The structured pass always completes first: the host
// store rejects structured updates on items whose text was just replaced.
// When ctx is cancelled between files, the partial summary is returned with
// the context error.
func (s *ImportService) Import(ctx context.Context, cfg domain.OCRSettings, req domain.ImportRequest) (*domain.ImportSummary, error) {
	root := strings.TrimSpace(req.Root)
	if root == "" {
		return nil, domain.ErrNoDestination
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading import directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, root)
	}

	logger.Section("Import")
	start := time.Now()

	documents, texts, err := collectOutputFiles(root)
	if err != nil {
		return nil, err
	}

	if cfg.TagMode == domain.TagModeAdd {
		if err := s.tagger.CreateTag(ctx, domain.TagImported.Name()); err != nil {
			return nil, fmt.Errorf("creating tag: %w", err)
		}
	}

	imported := NewTagBatch(s.tagger, domain.TagImported, cfg.TagMode, cfg.BatchSize)
	summary := &domain.ImportSummary{}
	total := len(documents) + len(texts)
	done := 0

	passes := []struct {
		files     []string
		pattern   *regexp.Regexp
		apply     applyFunc
		processed *int
	}{
		{documents, structuredName, s.importer.ImportStructured, &summary.StructuredFiles},
		{texts, textName, s.textApplier(cfg), &summary.TextFiles},
	}

	for _, pass := range passes {
		for _, path := range pass.files {
			if err := ctx.Err(); err != nil {
				// Tag the items already imported.
				if ferr := imported.Flush(context.WithoutCancel(ctx)); ferr != nil {
					logger.Warn("flushing after cancel failed", "error", ferr)
				}
				summary.Duration = time.Since(start)
				logger.Warn("import cancelled", "files", summary.FilesProcessed(), "total", total)
				return summary, err
			}
			done++
			req.Progress.Report("Importing "+filepath.Base(path), done, total)

			if err := s.importFile(ctx, path, pass.pattern, pass.apply, pass.processed, imported, summary); err != nil {
				return nil, err
			}
			if done%domain.DefaultBatchSize == 0 {
				logger.Info("import milestone", "files", done, "total", total)
			}
		}
	}

	if err := imported.Flush(ctx); err != nil {
		return nil, err
	}

	summary.Duration = time.Since(start)
	logger.Info("Time for Import of text/pdf files", "duration", fmt.Sprintf("%.3fs", summary.Duration.Seconds()))
	logger.Info("import complete",
		"pdf_files", summary.StructuredFiles,
		"text_files", summary.TextFiles,
		"items_updated", summary.ItemsUpdated,
		"items_failed", summary.ItemsFailed,
		"unmatched", summary.Unmatched,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

// importFile resolves every item sharing the file's digest and applies the
// file to each. Per-item failures are logged and counted; only tag service
// failures are returned.
func (s *ImportService) importFile(
	ctx context.Context,
	path string,
	pattern *regexp.Regexp,
	apply applyFunc,
	processed *int,
	imported *TagBatch,
	summary *domain.ImportSummary,
) error {
	digest, ok := parseDigestName(filepath.Base(path), pattern)
	if !ok {
		summary.Skipped++
		logger.Info("skipped file without digest name", "path", path)
		return nil
	}

	items, err := s.searcher.Search(ctx, domain.ItemQuery{Digest: digest})
	if err != nil {
		summary.ItemsFailed++
		logger.Warn("searching digest failed", "digest", digest, "error", err)
		return nil
	}
	if len(items) == 0 {
		summary.Unmatched++
		logger.Info("no items found for digest", "digest", digest)
		return nil
	}

	*processed++
	logger.Debug("importing data", "digest", digest, "items", len(items))
	for _, item := range items {
		logger.Debug("updating item", "guid", item.GUID)
		if err := apply(ctx, item, path); err != nil {
			summary.ItemsFailed++
			logger.Warn("problem updating item", "guid", item.GUID, "digest", digest, "error", err)
			continue
		}
		summary.ItemsUpdated++
		if err := imported.Add(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// textApplier replaces item text from the OCR file. With AppendOCRText each
// item gets its own merge of original and OCR text, since duplicates share
// one OCR file but may carry different original text.
func (s *ImportService) textApplier(cfg domain.OCRSettings) applyFunc {
	encoding := cfg.TextEncoding
	if encoding == "" {
		encoding = domain.DefaultTextEncoding
	}
	if !cfg.AppendOCRText {
		return func(ctx context.Context, item domain.Item, path string) error {
			return s.importer.ReplaceTextFromFile(ctx, item, path, encoding)
		}
	}
	return func(ctx context.Context, item domain.Item, path string) error {
		merged, err := writeMergedText(item, path)
		if err != nil {
			return err
		}
		defer func() {
			if err := os.Remove(merged); err != nil && !errors.Is(err, fs.ErrNotExist) {
				logger.Warn("removing temp file failed", "path", merged, "error", err)
			}
		}()
		return s.importer.ReplaceTextFromFile(ctx, item, merged, encoding)
	}
}

// writeMergedText writes the item's text, the separator and the OCR file
// into a temp file and returns its path.
func writeMergedText(item domain.Item, ocrPath string) (path string, err error) {
	src, err := os.Open(ocrPath)
	if err != nil {
		return "", fmt.Errorf("opening OCR text: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "sercha-ocr-*-"+filepath.Base(ocrPath))
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if cerr := tmp.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing temp file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(tmp.Name())
			path = ""
		}
	}()

	if _, err := io.WriteString(tmp, item.Text+OCRTextSeparator); err != nil {
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		return "", fmt.Errorf("copying OCR text: %w", err)
	}
	return tmp.Name(), nil
}

// collectOutputFiles walks the tree once and returns document and text
// files, each in lexical walk order. Extensions match case-insensitively.
func collectOutputFiles(root string) (documents, texts []string, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Warn("skipping unreadable path", "path", path, "error", walkErr)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
		case domain.DocumentExtension:
			documents = append(documents, path)
		case domain.TextExtension:
			texts = append(texts, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return documents, texts, nil
}

// parseDigestName extracts the lowercase digest from a file name.
func parseDigestName(name string, pattern *regexp.Regexp) (string, bool) {
	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}
