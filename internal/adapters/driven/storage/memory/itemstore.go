package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/storage/textfile"
	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
)

// Ensure ItemStore implements the interfaces.
var (
	_ driven.ItemStore    = (*ItemStore)(nil)
	_ driven.TagService   = (*ItemStore)(nil)
	_ driven.ItemImporter = (*ItemStore)(nil)
)

// ItemStore is an in-memory collection for tests.
// Search results are returned in position order.
type ItemStore struct {
	mu    sync.RWMutex
	items map[string]domain.Item
	tags  map[string]struct{}
}

// NewItemStore creates a new in-memory item store.
func NewItemStore(items ...domain.Item) *ItemStore {
	s := &ItemStore{
		items: make(map[string]domain.Item),
		tags:  make(map[string]struct{}),
	}
	for _, item := range items {
		s.items[item.GUID] = cloneItem(item)
	}
	return s
}

// SaveItem stores or updates an item.
func (s *ItemStore) SaveItem(_ context.Context, item *domain.Item) error {
	if item == nil || item.GUID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.GUID] = cloneItem(*item)
	for _, tag := range item.Tags {
		s.tags[tag] = struct{}{}
	}
	return nil
}

// GetItem retrieves an item by GUID.
func (s *ItemStore) GetItem(_ context.Context, guid string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[guid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneItem(item)
	return &out, nil
}

// Search returns every item matching the query.
func (s *ItemStore) Search(_ context.Context, query domain.ItemQuery) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Item
	for _, item := range s.items {
		if query.Matches(item) {
			out = append(out, cloneItem(item))
		}
	}
	slices.SortFunc(out, func(a, b domain.Item) int {
		if c := slices.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return strings.Compare(a.GUID, b.GUID)
	})
	return out, nil
}

// SetExcluded marks items as excluded or included.
func (s *ItemStore) SetExcluded(_ context.Context, guids []string, excluded bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for _, guid := range guids {
		item, ok := s.items[guid]
		if !ok || item.Excluded == excluded {
			continue
		}
		item.Excluded = excluded
		item.UpdatedAt = time.Now()
		s.items[guid] = item
		changed++
	}
	return changed, nil
}

// Close is a no-op.
func (s *ItemStore) Close() error {
	return nil
}

// CreateTag registers a tag name.
func (s *ItemStore) CreateTag(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[name] = struct{}{}
	return nil
}

// HasTag reports whether the tag has been created.
func (s *ItemStore) HasTag(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tags[name]
	return ok
}

// AddTag applies the tag to every item in the batch.
func (s *ItemStore) AddTag(_ context.Context, name string, items []domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[name] = struct{}{}
	for _, ref := range items {
		item, ok := s.items[ref.GUID]
		if !ok {
			return fmt.Errorf("tagging %s: %w", ref.GUID, domain.ErrNotFound)
		}
		if !item.HasTag(name) {
			item.Tags = append(item.Tags, name)
			s.items[ref.GUID] = item
		}
	}
	return nil
}

// RemoveTag removes the tag from every item in the batch.
func (s *ItemStore) RemoveTag(_ context.Context, name string, items []domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ref := range items {
		item, ok := s.items[ref.GUID]
		if !ok {
			return fmt.Errorf("untagging %s: %w", ref.GUID, domain.ErrNotFound)
		}
		item.Tags = slices.DeleteFunc(item.Tags, func(t string) bool { return t == name })
		s.items[ref.GUID] = item
	}
	return nil
}

// ImportStructured records the structured rendition path on the item.
func (s *ItemStore) ImportStructured(_ context.Context, ref domain.Item, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[ref.GUID]
	if !ok {
		return domain.ErrNotFound
	}
	item.PrintedPath = path
	item.UpdatedAt = time.Now()
	s.items[ref.GUID] = item
	return nil
}

// ReplaceTextFromFile replaces the item's text with the decoded file contents.
func (s *ItemStore) ReplaceTextFromFile(_ context.Context, ref domain.Item, path, encoding string) error {
	text, err := textfile.Read(path, encoding)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[ref.GUID]
	if !ok {
		return domain.ErrNotFound
	}
	item.Text = text
	item.UpdatedAt = time.Now()
	s.items[ref.GUID] = item
	return nil
}

func cloneItem(item domain.Item) domain.Item {
	item.Tags = slices.Clone(item.Tags)
	item.Position = slices.Clone(item.Position)
	if item.Properties != nil {
		props := make(map[string]string, len(item.Properties))
		for k, v := range item.Properties {
			props[k] = v
		}
		item.Properties = props
	}
	return item
}
