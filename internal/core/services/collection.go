package services

import (
	"context"
	"crypto/md5" //nolint:gosec // G501: MD5 is the collection's content digest, not a security boundary.
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-ocr/internal/logger"
)

// Ensure CollectionService implements the interface.
var _ driving.CollectionService = (*CollectionService)(nil)

// sidecarSuffix marks a file holding the extracted text of its sibling.
const sidecarSuffix = ".txt"

// extensionTypes covers image types missing from the platform MIME table.
var extensionTypes = map[string]string{
	".bmp":  "image/bmp",
	".emf":  "image/vnd.ms-emf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// CollectionService manages the items the OCR workflow operates on.
type CollectionService struct {
	store driven.ItemStore
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store driven.ItemStore) *CollectionService {
	return &CollectionService{store: store}
}

type pendingFile struct {
	path     string
	position []int
}

type hashedFile struct {
	digest string
	size   int64
	err    error
}

// Add walks the paths and stores one item per regular file. Files named
// <file>.txt next to <file> are read as its extracted text instead of
// becoming items themselves. Digests are computed in parallel.
func (s *CollectionService) Add(ctx context.Context, paths []string, opts driving.AddOptions) (*driving.AddResult, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no paths given", domain.ErrInvalidInput)
	}

	var files []pendingFile
	for i, root := range paths {
		found, err := collectFiles(root)
		if err != nil {
			return nil, err
		}
		for j, path := range found {
			files = append(files, pendingFile{path: path, position: []int{i + 1, j + 1}})
		}
	}

	hashes, err := hashFiles(ctx, files, opts.Workers)
	if err != nil {
		return nil, err
	}

	encrypted, err := addEncrypted(opts)
	if err != nil {
		return nil, err
	}

	result := &driving.AddResult{Failed: make(map[string]string)}
	now := time.Now()
	for i, f := range files {
		h := hashes[i]
		if h.err != nil {
			result.Failed[f.path] = h.err.Error()
			logger.Warn("hashing failed", "path", f.path, "error", h.err)
			continue
		}

		item := domain.Item{
			GUID:       uuid.NewString(),
			Name:       filepath.Base(f.path),
			MimeType:   detectMimeType(f.path),
			Digest:     h.digest,
			Size:       h.size,
			Text:       readSidecar(f.path),
			Encrypted:  encrypted,
			Properties: copyProperties(opts.Properties),
			Position:   f.position,
			NativePath: f.path,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.store.SaveItem(ctx, &item); err != nil {
			return nil, fmt.Errorf("saving %s: %w", f.path, err)
		}
		result.Items = append(result.Items, item)
	}

	logger.Info("collection add complete", "added", len(result.Items), "failed", len(result.Failed))
	return result, nil
}

// addEncrypted resolves the encrypted flag from the option or the property.
func addEncrypted(opts driving.AddOptions) (bool, error) {
	raw, ok := opts.Properties[domain.EncryptedProperty]
	if !ok {
		return opts.Encrypted, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%w: %s property %q is not a boolean", domain.ErrInvalidInput, domain.EncryptedProperty, raw)
	}
	return opts.Encrypted || v, nil
}

// List returns items matching the query.
func (s *CollectionService) List(ctx context.Context, query domain.ItemQuery) ([]domain.Item, error) {
	return s.store.Search(ctx, query)
}

// Get retrieves an item by GUID.
func (s *CollectionService) Get(ctx context.Context, guid string) (*domain.Item, error) {
	return s.store.GetItem(ctx, guid)
}

// Exclude marks items as excluded. Returns the number changed.
func (s *CollectionService) Exclude(ctx context.Context, guids []string) (int, error) {
	return s.store.SetExcluded(ctx, guids, true)
}

// Include clears the excluded flag. Returns the number changed.
func (s *CollectionService) Include(ctx context.Context, guids []string) (int, error) {
	return s.store.SetExcluded(ctx, guids, false)
}

// collectFiles returns the regular files under root in lexical order,
// leaving out sidecar text files whose sibling exists.
func collectFiles(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{abs}, nil
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if isSidecar(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func isSidecar(path string) bool {
	if !strings.HasSuffix(strings.ToLower(path), sidecarSuffix) {
		return false
	}
	_, err := os.Stat(path[:len(path)-len(sidecarSuffix)])
	return err == nil
}

func readSidecar(path string) string {
	data, err := os.ReadFile(path + sidecarSuffix)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("reading sidecar text failed", "path", path, "error", err)
		}
		return ""
	}
	return string(data)
}

// hashFiles computes digests with a bounded worker group. Results are
// indexed like files; a failure on one file is recorded, not returned.
func hashFiles(ctx context.Context, files []pendingFile, workers int) ([]hashedFile, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]hashedFile, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			digest, size, err := digestFile(f.path)
			results[i] = hashedFile{digest: digest, size: size, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func digestFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := md5.New() //nolint:gosec // G401: content digest only.
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

func detectMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if base, _, err := mime.ParseMediaType(t); err == nil {
			return base
		}
		return t
	}
	return "application/octet-stream"
}

func copyProperties(props map[string]string) map[string]string {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
