package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
)

// TagBatch accumulates items for one tag and applies the tag in batches.
// The running count survives flushes; the pending list does not.
// A TagBatch is not safe for concurrent use.
type TagBatch struct {
	tagger    driven.TagService
	kind      domain.TagKind
	mode      domain.TagMode
	threshold int
	pending   []domain.Item
	count     int
}

// NewTagBatch creates a batch for the tag kind.
// A threshold <= 0 uses domain.DefaultBatchSize.
func NewTagBatch(tagger driven.TagService, kind domain.TagKind, mode domain.TagMode, threshold int) *TagBatch {
	if threshold <= 0 {
		threshold = domain.DefaultBatchSize
	}
	return &TagBatch{
		tagger:    tagger,
		kind:      kind,
		mode:      mode,
		threshold: threshold,
	}
}

// Add appends one item, flushing when the threshold is reached.
func (b *TagBatch) Add(ctx context.Context, item domain.Item) error {
	b.pending = append(b.pending, item)
	b.count++
	return b.flushIfFull(ctx)
}

// AddMany appends every item, flushing when the threshold is reached.
func (b *TagBatch) AddMany(ctx context.Context, items []domain.Item) error {
	b.pending = append(b.pending, items...)
	b.count += len(items)
	return b.flushIfFull(ctx)
}

func (b *TagBatch) flushIfFull(ctx context.Context) error {
	if len(b.pending) < b.threshold {
		return nil
	}
	return b.Flush(ctx)
}

// Flush sends every pending item to the tag service in one call.
// In TagModeOff pending items are dropped without calling the service.
// On failure the pending list is kept and the error is returned.
func (b *TagBatch) Flush(ctx context.Context) error {
	if len(b.pending) == 0 {
		return nil
	}

	name := b.kind.Name()
	var err error
	switch b.mode {
	case domain.TagModeAdd:
		err = b.tagger.AddTag(ctx, name, b.pending)
	case domain.TagModeRemove:
		err = b.tagger.RemoveTag(ctx, name, b.pending)
	}
	if err != nil {
		return fmt.Errorf("flushing tag %q: %w", name, err)
	}

	b.pending = nil
	return nil
}

// Count returns the number of items ever added.
func (b *TagBatch) Count() int {
	return b.count
}

// Pending returns the number of items waiting for a flush.
func (b *TagBatch) Pending() int {
	return len(b.pending)
}

// Tag returns the tag kind the batch applies.
func (b *TagBatch) Tag() domain.TagKind {
	return b.kind
}
