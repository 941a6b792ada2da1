package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
)

// exportCursor tracks the current output directory of an export run.
//
// Selections larger than the rollover size start in <root>/0001. Each time
// the exported count reaches a multiple of the rollover size the cursor
// moves to the next numbered sibling. A directory is created just before
// its first write, so K exports occupy ceil(K/R) directories.
type exportCursor struct {
	exporter driven.ItemExporter
	root     string
	rollover int

	dir      string
	seq      int
	openedAt int
	needsDir bool
	created  []string
}

func newExportCursor(ctx context.Context, exporter driven.ItemExporter, root string, selection, rollover int) (*exportCursor, error) {
	c := &exportCursor{
		exporter: exporter,
		root:     root,
		rollover: rollover,
		dir:      root,
	}

	if err := exporter.MakeDir(ctx, root); err != nil {
		return nil, fmt.Errorf("creating %s: %w", root, err)
	}
	if selection <= rollover {
		c.created = append(c.created, root)
		return c, nil
	}

	c.seq = 1
	c.dir = c.sequenceDir(c.seq)
	if err := exporter.MakeDir(ctx, c.dir); err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.dir, err)
	}
	c.created = append(c.created, c.dir)
	return c, nil
}

func (c *exportCursor) sequenceDir(seq int) string {
	return filepath.Join(c.root, fmt.Sprintf("%04d", seq))
}

// Path returns the destination for a file in the current directory,
// creating the directory first if this is its first write.
func (c *exportCursor) Path(ctx context.Context, name string) (string, error) {
	if c.needsDir {
		if err := c.exporter.MakeDir(ctx, c.dir); err != nil {
			return "", fmt.Errorf("creating %s: %w", c.dir, err)
		}
		c.needsDir = false
		c.created = append(c.created, c.dir)
	}
	return filepath.Join(c.dir, name), nil
}

// Advance records the exported count after a successful write and rolls
// over when it reaches a new multiple of the rollover size.
func (c *exportCursor) Advance(exported int) bool {
	if exported <= 0 || exported%c.rollover != 0 || exported == c.openedAt {
		return false
	}
	c.seq++
	c.dir = c.sequenceDir(c.seq)
	c.openedAt = exported
	c.needsDir = true
	return true
}

// Dir returns the directory the next file is routed to.
func (c *exportCursor) Dir() string {
	return c.dir
}

// Directories returns every directory written to, in creation order.
func (c *exportCursor) Directories() []string {
	return c.created
}
