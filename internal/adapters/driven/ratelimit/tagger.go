// Package ratelimit throttles tag mutations against the collection store.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
)

// Ensure Tagger implements the interface.
var _ driven.TagService = (*Tagger)(nil)

// Tagger limits how often batches are flushed to the wrapped TagService.
// CreateTag is not limited.
type Tagger struct {
	inner   driven.TagService
	limiter *rate.Limiter
}

// Wrap returns inner throttled to perSecond flushes with a burst of one.
// A non-positive rate returns inner unchanged.
func Wrap(inner driven.TagService, perSecond float64) driven.TagService {
	if perSecond <= 0 {
		return inner
	}
	return &Tagger{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// CreateTag registers a tag name.
func (t *Tagger) CreateTag(ctx context.Context, name string) error {
	return t.inner.CreateTag(ctx, name)
}

// AddTag waits for a token, then applies the tag.
func (t *Tagger) AddTag(ctx context.Context, name string, items []domain.Item) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.inner.AddTag(ctx, name, items)
}

// RemoveTag waits for a token, then removes the tag.
func (t *Tagger) RemoveTag(ctx context.Context, name string, items []domain.Item) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.inner.RemoveTag(ctx, name, items)
}
