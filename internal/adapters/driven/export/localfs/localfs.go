// Package localfs exports items to a directory on the local filesystem.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-ocr/internal/fileutil"
	"github.com/custodia-labs/sercha-ocr/internal/logger"
)

// LockFileName is created in the export root while an export runs.
const LockFileName = ".sercha-ocr.lock"

// Ensure Exporter implements the interfaces.
var (
	_ driven.ItemExporter      = (*Exporter)(nil)
	_ driven.DestinationLocker = (*Exporter)(nil)
)

// Exporter copies native content into the export tree.
type Exporter struct{}

// New creates a local filesystem exporter.
func New() *Exporter {
	return &Exporter{}
}

// MakeDir creates dir and any missing parents.
func (e *Exporter) MakeDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// ExportItem copies the item's native file to dest. A digest mismatch
// between the copied bytes and the item is logged, not fatal.
func (e *Exporter) ExportItem(ctx context.Context, item domain.Item, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item.NativePath == "" {
		return domain.ErrNoContent
	}

	digest, err := fileutil.CopyFileDigest(item.NativePath, dest)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrNoContent, item.NativePath)
		}
		return fmt.Errorf("copying %s: %w", item.NativePath, err)
	}
	if item.HasDigest() && !strings.EqualFold(digest, item.Digest) {
		logger.Warn("exported content differs from collection digest",
			"guid", item.GUID, "want", item.Digest, "got", digest)
	}
	return nil
}

// LockDestination takes an exclusive advisory lock on the export root.
func (e *Exporter) LockDestination(_ context.Context, root string) (func() error, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", root, err)
	}
	path := filepath.Join(root, LockFileName)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrExportLocked
	}

	release := func() error {
		if err := lock.Unlock(); err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	return release, nil
}
