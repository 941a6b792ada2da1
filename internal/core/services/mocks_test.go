package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// tagCall records one batch call made to the tag service.
type tagCall struct {
	op    string
	name  string
	guids []string
}

// mockTagService records every call and can fail on demand.
type mockTagService struct {
	mu      sync.Mutex
	created []string
	calls   []tagCall
	err     error
}

func (m *mockTagService) CreateTag(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, name)
	return nil
}

func (m *mockTagService) AddTag(_ context.Context, name string, items []domain.Item) error {
	return m.record("add", name, items)
}

func (m *mockTagService) RemoveTag(_ context.Context, name string, items []domain.Item) error {
	return m.record("remove", name, items)
}

func (m *mockTagService) record(op, name string, items []domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	guids := make([]string, len(items))
	for i, it := range items {
		guids[i] = it.GUID
	}
	m.calls = append(m.calls, tagCall{op: op, name: name, guids: guids})
	return nil
}

// tagged returns every GUID passed to AddTag for the tag.
func (m *mockTagService) tagged(name string) []string {
	var out []string
	for _, c := range m.calls {
		if c.op == "add" && c.name == name {
			out = append(out, c.guids...)
		}
	}
	return out
}

// callsFor counts batch calls for the tag.
func (m *mockTagService) callsFor(name string) int {
	n := 0
	for _, c := range m.calls {
		if c.name == name {
			n++
		}
	}
	return n
}

// recordingExporter writes empty files and logs directory creation
// relative to the number of exports at the time.
type recordingExporter struct {
	dirs      []string
	dirsAt    map[string]int
	exports   []string
	failGUIDs map[string]bool
}

func newRecordingExporter() *recordingExporter {
	return &recordingExporter{
		dirsAt:    make(map[string]int),
		failGUIDs: make(map[string]bool),
	}
}

func (e *recordingExporter) MakeDir(_ context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	e.dirs = append(e.dirs, dir)
	e.dirsAt[dir] = len(e.exports)
	return nil
}

func (e *recordingExporter) ExportItem(_ context.Context, item domain.Item, dest string) error {
	if e.failGUIDs[item.GUID] {
		return errors.New("disk full")
	}
	if _, err := os.Stat(filepath.Dir(dest)); err != nil {
		return err
	}
	e.exports = append(e.exports, dest)
	return nil
}

// lockingExporter adds destination locking to the recording exporter.
type lockingExporter struct {
	*recordingExporter
	locked   string
	released bool
	err      error
}

func (e *lockingExporter) LockDestination(_ context.Context, root string) (func() error, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.locked = root
	return func() error {
		e.released = true
		return nil
	}, nil
}

// identitySorter keeps items in input order.
type identitySorter struct{}

func (identitySorter) SortItems(items []domain.Item, _ func(domain.Item) string) []domain.Item {
	return items
}

// keySorter sorts by key so export order can be asserted.
type keySorter struct{}

func (keySorter) SortItems(items []domain.Item, key func(domain.Item) string) []domain.Item {
	out := append([]domain.Item(nil), items...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && key(out[j]) < key(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// countingSearcher wraps a searcher and records the queries it runs.
type countingSearcher struct {
	inner   interface {
		Search(ctx context.Context, q domain.ItemQuery) ([]domain.Item, error)
	}
	queries []domain.ItemQuery
	failOn  func(domain.ItemQuery) bool
}

func (s *countingSearcher) Search(ctx context.Context, q domain.ItemQuery) ([]domain.Item, error) {
	s.queries = append(s.queries, q)
	if s.failOn != nil && s.failOn(q) {
		return nil, errors.New("search unavailable")
	}
	return s.inner.Search(ctx, q)
}

// importEvent records one importer call.
type importEvent struct {
	kind string
	guid string
	path string
}

// recordingImporter delegates to an inner importer and logs the calls.
type recordingImporter struct {
	inner interface {
		ImportStructured(ctx context.Context, item domain.Item, path string) error
		ReplaceTextFromFile(ctx context.Context, item domain.Item, path, encoding string) error
	}
	events    []importEvent
	failGUIDs map[string]bool
	// seenText holds the contents of each text file at the time of the call.
	seenText map[string]string
}

func (r *recordingImporter) ImportStructured(ctx context.Context, item domain.Item, path string) error {
	r.events = append(r.events, importEvent{kind: "pdf", guid: item.GUID, path: path})
	if r.failGUIDs[item.GUID] {
		return errors.New("write access denied")
	}
	return r.inner.ImportStructured(ctx, item, path)
}

func (r *recordingImporter) ReplaceTextFromFile(ctx context.Context, item domain.Item, path, encoding string) error {
	r.events = append(r.events, importEvent{kind: "txt", guid: item.GUID, path: path})
	if r.seenText != nil {
		if data, err := os.ReadFile(path); err == nil {
			r.seenText[item.GUID] = string(data)
		}
	}
	if r.failGUIDs[item.GUID] {
		return errors.New("write access denied")
	}
	return r.inner.ReplaceTextFromFile(ctx, item, path, encoding)
}
