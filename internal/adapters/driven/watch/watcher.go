// Package watch waits for an OCR output directory to stop changing.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-ocr/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DirectoryWatcher = (*Watcher)(nil)

// Watcher observes a directory tree with fsnotify.
type Watcher struct{}

// New creates a directory watcher.
func New() *Watcher {
	return &Watcher{}
}

// WaitForQuiet blocks until nothing under dir has been created, written,
// removed or renamed for the quiet period. New subdirectories are watched
// as they appear.
func (w *Watcher) WaitForQuiet(ctx context.Context, dir string, quiet time.Duration) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := addTree(fw, dir); err != nil {
		return err
	}

	timer := time.NewTimer(quiet)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if !isActivity(event) {
				continue
			}
			logger.Debug("output directory activity", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(fw, event.Name); err != nil {
						return err
					}
				}
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(quiet)
		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
}

// isActivity reports whether the event changes file content or names.
// Attribute-only changes are ignored.
func isActivity(event fsnotify.Event) bool {
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
