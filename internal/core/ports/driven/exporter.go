package driven

import (
	"context"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// ItemExporter writes a single item's binary content to an export target.
type ItemExporter interface {
	// MakeDir creates an output directory below the export root.
	MakeDir(ctx context.Context, dir string) error

	// ExportItem writes the item's native content to dest.
	ExportItem(ctx context.Context, item domain.Item, dest string) error
}

// DestinationLocker is implemented by exporters that can hold an exclusive
// lock on an export root for the duration of a run.
type DestinationLocker interface {
	// LockDestination acquires the lock. The returned function releases it.
	// Returns domain.ErrExportLocked when another process holds the lock.
	LockDestination(ctx context.Context, root string) (func() error, error)
}
