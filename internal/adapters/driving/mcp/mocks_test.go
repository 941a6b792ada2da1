package mcp

import (
	"context"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driving"
)

// mockCollectionService implements driving.CollectionService for testing.
type mockCollectionService struct {
	items   []domain.Item
	queries []domain.ItemQuery
	err     error
}

func (m *mockCollectionService) Add(_ context.Context, _ []string, _ driving.AddOptions) (*driving.AddResult, error) {
	return &driving.AddResult{}, nil
}

func (m *mockCollectionService) List(_ context.Context, query domain.ItemQuery) ([]domain.Item, error) {
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Item
	for _, item := range m.items {
		if query.Matches(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockCollectionService) Get(_ context.Context, guid string) (*domain.Item, error) {
	for i := range m.items {
		if m.items[i].GUID == guid {
			return &m.items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCollectionService) Exclude(_ context.Context, guids []string) (int, error) {
	return len(guids), nil
}

func (m *mockCollectionService) Include(_ context.Context, guids []string) (int, error) {
	return len(guids), nil
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings domain.AppSettings
}

func newMockSettings() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(_, _ string) error { return nil }
func (m *mockSettingsService) Keys() []string { return nil }
func (m *mockSettingsService) Validate() error { return nil }
func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

// mockClassificationService records the settings it ran with.
type mockClassificationService struct {
	cfg     domain.OCRSettings
	summary *domain.ClassificationSummary
}

func (m *mockClassificationService) Classify(
	_ context.Context, cfg domain.OCRSettings, _ domain.ProgressFunc,
) (*domain.ClassificationSummary, error) {
	m.cfg = cfg
	if m.summary == nil {
		return domain.NewClassificationSummary(), nil
	}
	return m.summary, nil
}

// mockExportService records the request it ran with.
type mockExportService struct {
	req domain.ExportRequest
	err error
}

func (m *mockExportService) Export(
	_ context.Context, _ domain.OCRSettings, req domain.ExportRequest,
) (*domain.ExportSummary, error) {
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ExportSummary{
		Selected:    len(req.Items),
		Destination: req.Destination,
		Exported:    len(req.Items),
		Directories: []string{req.Destination},
	}, nil
}

// mockImportService records the settings and request it ran with.
type mockImportService struct {
	cfg domain.OCRSettings
	req domain.ImportRequest
}

func (m *mockImportService) Import(
	_ context.Context, cfg domain.OCRSettings, req domain.ImportRequest,
) (*domain.ImportSummary, error) {
	m.cfg = cfg
	m.req = req
	return &domain.ImportSummary{StructuredFiles: 2, TextFiles: 1, ItemsUpdated: 3}, nil
}

func fixtureItems() []domain.Item {
	return []domain.Item{
		{GUID: "g1", Name: "a.pdf", MimeType: domain.DocumentMimeType, Digest: "aa", Tags: []string{domain.TagMustOCR.Name()}},
		{GUID: "g2", Name: "b.pdf", MimeType: domain.DocumentMimeType, Digest: "bb", Text: "text"},
		{GUID: "g3", Name: "c.png", MimeType: "image/png", Digest: "cc", Excluded: true, Tags: []string{domain.TagMustOCR.Name()}},
	}
}
