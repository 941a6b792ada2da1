package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a MIME type that cannot be exported for OCR.
	ErrUnsupportedType = errors.New("unsupported type")

	// Workflow Errors.

	// ErrNoSelection indicates an export was started with no items selected.
	ErrNoSelection = errors.New("please select some items to export")

	// ErrNoDestination indicates no export or import directory was chosen.
	ErrNoDestination = errors.New("no directory selected")

	// ErrNoContent indicates an exported item had no native content to write.
	ErrNoContent = errors.New("item has no native content")

	// ErrExportLocked indicates another process holds the export directory.
	ErrExportLocked = errors.New("export directory is locked by another process")

	// ErrCaseClosed indicates the collection store has been closed.
	ErrCaseClosed = errors.New("collection closed")
)
