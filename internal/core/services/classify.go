package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-ocr/internal/logger"
)

// Ensure ClassificationService implements the interface.
var _ driving.ClassificationService = (*ClassificationService)(nil)

// Rule selects items with a query and routes each match to one of its tags.
type Rule struct {
	Kind  domain.RuleKind
	Query domain.ItemQuery

	// Tags lists every tag the rule can apply.
	Tags []domain.TagKind

	// Route picks the tag for a matched item. False drops the item.
	Route func(item domain.Item) (domain.TagKind, bool)
}

// DefaultRules returns the OCR candidate rules in run order.
// The image rules are cumulative: a 6MB image matches all three.
func DefaultRules() []Rule {
	return []Rule{
		{
			Kind: domain.RuleMustOCR,
			Query: domain.ItemQuery{
				MimeTypes: []string{domain.DocumentMimeType},
				HasText:   domain.Bool(false),
				Encrypted: domain.Bool(false),
			},
			Tags:  []domain.TagKind{domain.TagMustOCR},
			Route: always(domain.TagMustOCR),
		},
		imageRule(domain.RuleImagesOver500KB, domain.Size500KB, domain.TagImagesOver500KB),
		imageRule(domain.RuleImagesOver1MB, domain.Size1MB, domain.TagImagesOver1MB),
		imageRule(domain.RuleImagesOver5MB, domain.Size5MB, domain.TagImagesOver5MB),
		{
			Kind: domain.RuleWordCountAverage,
			Query: domain.ItemQuery{
				MimeTypes: []string{domain.DocumentMimeType},
				HasText:   domain.Bool(true),
			},
			Tags:  bucketTags(),
			Route: routeByWordAverage,
		},
	}
}

func imageRule(kind domain.RuleKind, minSize int64, tag domain.TagKind) Rule {
	return Rule{
		Kind: kind,
		Query: domain.ItemQuery{
			MimeTypes: domain.ImageMimeTypes,
			Size:      &domain.SizeRange{Min: minSize, Max: domain.SizeCap},
		},
		Tags:  []domain.TagKind{tag},
		Route: always(tag),
	}
}

func always(tag domain.TagKind) func(domain.Item) (domain.TagKind, bool) {
	return func(domain.Item) (domain.TagKind, bool) {
		return tag, true
	}
}

func bucketTags() []domain.TagKind {
	tags := make([]domain.TagKind, 0, len(domain.WordBuckets))
	for _, b := range domain.WordBuckets {
		tags = append(tags, b.Tag)
	}
	return tags
}

func routeByWordAverage(item domain.Item) (domain.TagKind, bool) {
	b, ok := domain.BucketFor(WordAverage(item))
	if !ok {
		return 0, false
	}
	return b.Tag, true
}

// WordCount counts tokens after every character other than an ASCII letter
// or hyphen is treated as a separator.
func WordCount(text string) int {
	return len(strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '-')
	}))
}

// WordAverage returns the floor of words per page.
func WordAverage(item domain.Item) int {
	return WordCount(item.Text) / item.PageCount()
}

// ClassificationService runs the OCR candidate rules against the collection.
type ClassificationService struct {
	searcher driven.ItemSearcher
	tagger   driven.TagService
	rules    []Rule
}

// NewClassificationService creates a classification service using DefaultRules.
func NewClassificationService(searcher driven.ItemSearcher, tagger driven.TagService) *ClassificationService {
	return &ClassificationService{
		searcher: searcher,
		tagger:   tagger,
		rules:    DefaultRules(),
	}
}

// Classify runs every enabled rule, feeding matches into one TagBatch per
// tag. Disabled rules run no query and create no tags. Every batch is
// flushed once after all rules have run.
func (s *ClassificationService) Classify(ctx context.Context, cfg domain.OCRSettings, progress domain.ProgressFunc) (*domain.ClassificationSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var rules []Rule
	for _, r := range s.rules {
		if cfg.Rules.Enabled(r.Kind) {
			rules = append(rules, r)
		} else {
			logger.Debug("rule disabled", "rule", r.Kind)
		}
	}

	logger.Section("Classification")
	summary := domain.NewClassificationSummary()
	batches := make(map[domain.TagKind]*TagBatch)
	var order []*TagBatch

	for i, rule := range rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		progress.Report(rule.Kind.Description(), i+1, len(rules))

		for _, tag := range rule.Tags {
			if cfg.TagMode == domain.TagModeAdd {
				if err := s.tagger.CreateTag(ctx, tag.Name()); err != nil {
					return nil, fmt.Errorf("creating tag: %w", err)
				}
			}
			if _, ok := batches[tag]; !ok {
				b := NewTagBatch(s.tagger, tag, cfg.TagMode, cfg.BatchSize)
				batches[tag] = b
				order = append(order, b)
			}
		}

		query := rule.Query
		if cfg.HandleExcludedItems {
			query = query.ExcludingExcluded()
		}
		logger.Debug("running rule", "rule", rule.Kind, "query", query.String())

		items, err := s.searcher.Search(ctx, query)
		if err != nil {
			summary.FailedRules = append(summary.FailedRules, rule.Kind)
			logger.Error("rule query failed", "rule", rule.Kind, "error", err)
			continue
		}

		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			tag, ok := rule.Route(item)
			if !ok {
				continue
			}
			if err := batches[tag].Add(ctx, item); err != nil {
				return nil, err
			}
		}

		for _, tag := range rule.Tags {
			logger.Info("identified", "tag", tag.Name(), "count", batches[tag].Count())
		}
	}

	for _, b := range order {
		if err := b.Flush(ctx); err != nil {
			return nil, err
		}
		summary.Counts[b.Tag()] = b.Count()
	}
	return summary, nil
}
