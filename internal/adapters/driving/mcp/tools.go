package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// defaultListLimit caps list_items output when no limit is given.
const defaultListLimit = 50

// ClassifyInput is the input schema for the classify tool.
type ClassifyInput struct {
	Rules []string `json:"rules,omitempty" jsonschema:"rules to run (must_ocr, images_over_500kb, images_over_1mb, images_over_5mb, pdf_word_count_average); default is every enabled rule"`
}

// ClassifyOutput is the output schema for the classify tool.
type ClassifyOutput struct {
	Counts      map[string]int `json:"counts"`
	FailedRules []string       `json:"failed_rules,omitempty"`
	Summary     []string       `json:"summary"`
}

// ExportInput is the input schema for the export tool.
type ExportInput struct {
	Destination string   `json:"destination" jsonschema:"root directory (or object key prefix) for the export tree"`
	Tag         string   `json:"tag,omitempty" jsonschema:"export items carrying this tag"`
	MimeTypes   []string `json:"mime_types,omitempty" jsonschema:"export items of these MIME types"`
	All         bool     `json:"all,omitempty" jsonschema:"export every item in the collection"`
}

// ExportOutput is the output schema for the export tool.
type ExportOutput struct {
	Headline    string   `json:"headline"`
	Selected    int      `json:"selected"`
	Exported    int      `json:"exported"`
	Duplicates  int      `json:"duplicates"`
	Unsupported int      `json:"unsupported"`
	NoDigest    int      `json:"no_digest"`
	Failed      int      `json:"failed"`
	Directories []string `json:"directories"`
	Summary     []string `json:"summary"`
}

// ImportInput is the input schema for the import tool.
type ImportInput struct {
	Root       string `json:"root" jsonschema:"directory holding OCR output named <md5>.pdf and <md5>.txt"`
	AppendText *bool  `json:"append_text,omitempty" jsonschema:"keep the original text and append the OCR text after a separator"`
}

// ImportOutput is the output schema for the import tool.
type ImportOutput struct {
	StructuredFiles int      `json:"pdf_files"`
	TextFiles       int      `json:"text_files"`
	ItemsUpdated    int      `json:"items_updated"`
	ItemsFailed     int      `json:"items_failed"`
	Unmatched       int      `json:"unmatched"`
	Skipped         int      `json:"skipped"`
	Summary         []string `json:"summary"`
}

// ListItemsInput is the input schema for the list_items tool.
type ListItemsInput struct {
	Tag             string   `json:"tag,omitempty" jsonschema:"only items carrying this tag"`
	MimeTypes       []string `json:"mime_types,omitempty" jsonschema:"only items of these MIME types"`
	Digest          string   `json:"digest,omitempty" jsonschema:"only items with this MD5"`
	HasText         *bool    `json:"has_text,omitempty" jsonschema:"filter on whether extracted text is present"`
	IncludeExcluded bool     `json:"include_excluded,omitempty" jsonschema:"include excluded items"`
	Limit           int      `json:"limit,omitempty" jsonschema:"maximum number of items to return (default 50)"`
}

// ListItemsOutput is the output schema for the list_items tool.
type ListItemsOutput struct {
	Items []ItemOutput `json:"items"`
	Count int          `json:"count"`
	Total int          `json:"total"`
	Query string       `json:"query"`
}

// ItemOutput is the summary of one item.
type ItemOutput struct {
	GUID     string   `json:"guid"`
	Name     string   `json:"name"`
	MimeType string   `json:"mime_type"`
	Digest   string   `json:"digest,omitempty"`
	Size     int64    `json:"size"`
	Pages    int      `json:"pages"`
	HasText  bool     `json:"has_text"`
	Excluded bool     `json:"excluded,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// registerTools registers a tool for each configured port.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_items",
		Description: "List items in the collection matching a structured query",
	}, s.handleListItems)

	if s.ports.Classification != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "classify",
			Description: "Identify documents and images that likely need OCR and tag them",
		}, s.handleClassify)
	}
	if s.ports.Export != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "export",
			Description: "Export deduplicated copies of selected items for an external OCR tool",
		}, s.handleExport)
	}
	if s.ports.Import != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "import",
			Description: "Import OCR output back onto every item sharing the file's MD5",
		}, s.handleImport)
	}
}

func (s *Server) ocrSettings() (domain.OCRSettings, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return domain.OCRSettings{}, fmt.Errorf("loading settings: %w", err)
	}
	return settings.OCR, nil
}

func (s *Server) handleClassify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	cfg, err := s.ocrSettings()
	if err != nil {
		return nil, ClassifyOutput{}, err
	}
	if len(input.Rules) > 0 {
		var only domain.RuleToggles
		for _, name := range input.Rules {
			kind := domain.RuleKind(name)
			if !kind.IsValid() {
				return nil, ClassifyOutput{}, fmt.Errorf("%w: unknown rule %q", domain.ErrInvalidInput, name)
			}
			only.Set(kind, true)
		}
		cfg.Rules = only
	}

	summary, err := s.ports.Classification.Classify(ctx, cfg, nil)
	if err != nil {
		return nil, ClassifyOutput{}, err
	}

	out := ClassifyOutput{Counts: make(map[string]int), Summary: summary.Lines()}
	for kind, n := range summary.Counts {
		out.Counts[kind.Name()] = n
	}
	for _, rule := range summary.FailedRules {
		out.FailedRules = append(out.FailedRules, string(rule))
	}
	return nil, out, nil
}

func (s *Server) handleExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	cfg, err := s.ocrSettings()
	if err != nil {
		return nil, ExportOutput{}, err
	}
	if input.Tag == "" && len(input.MimeTypes) == 0 && !input.All {
		return nil, ExportOutput{}, errors.New("select items with tag, mime_types or all")
	}

	query := domain.ItemQuery{Tag: input.Tag, MimeTypes: input.MimeTypes}
	if cfg.HandleExcludedItems {
		query = query.ExcludingExcluded()
	}
	items, err := s.ports.Collection.List(ctx, query)
	if err != nil {
		return nil, ExportOutput{}, fmt.Errorf("selecting items: %w", err)
	}

	summary, err := s.ports.Export.Export(ctx, cfg, domain.ExportRequest{
		Items:       items,
		Destination: input.Destination,
	})
	if err != nil {
		return nil, ExportOutput{}, err
	}

	return nil, ExportOutput{
		Headline:    summary.Headline(),
		Selected:    summary.Selected,
		Exported:    summary.Exported,
		Duplicates:  summary.Duplicates,
		Unsupported: summary.Unsupported,
		NoDigest:    summary.NoDigest,
		Failed:      summary.Failed,
		Directories: summary.Directories,
		Summary:     summary.Lines(),
	}, nil
}

func (s *Server) handleImport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportInput,
) (*mcp.CallToolResult, ImportOutput, error) {
	cfg, err := s.ocrSettings()
	if err != nil {
		return nil, ImportOutput{}, err
	}
	if input.AppendText != nil {
		cfg.AppendOCRText = *input.AppendText
	}

	summary, err := s.ports.Import.Import(ctx, cfg, domain.ImportRequest{Root: input.Root})
	if err != nil {
		return nil, ImportOutput{}, err
	}

	return nil, ImportOutput{
		StructuredFiles: summary.StructuredFiles,
		TextFiles:       summary.TextFiles,
		ItemsUpdated:    summary.ItemsUpdated,
		ItemsFailed:     summary.ItemsFailed,
		Unmatched:       summary.Unmatched,
		Skipped:         summary.Skipped,
		Summary:         summary.Lines(),
	}, nil
}

func (s *Server) handleListItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListItemsInput,
) (*mcp.CallToolResult, ListItemsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := domain.ItemQuery{
		Tag:       input.Tag,
		MimeTypes: input.MimeTypes,
		Digest:    input.Digest,
		HasText:   input.HasText,
	}
	if !input.IncludeExcluded {
		query = query.ExcludingExcluded()
	}

	items, err := s.ports.Collection.List(ctx, query)
	if err != nil {
		return nil, ListItemsOutput{}, err
	}

	out := ListItemsOutput{Total: len(items), Query: query.String(), Items: []ItemOutput{}}
	for i := range items {
		if i == limit {
			break
		}
		out.Items = append(out.Items, toItemOutput(items[i]))
	}
	out.Count = len(out.Items)
	return nil, out, nil
}

func toItemOutput(item domain.Item) ItemOutput {
	return ItemOutput{
		GUID:     item.GUID,
		Name:     item.Name,
		MimeType: item.MimeType,
		Digest:   item.Digest,
		Size:     item.Size,
		Pages:    item.PageCount(),
		HasText:  item.HasText(),
		Excluded: item.Excluded,
		Tags:     item.Tags,
	}
}
