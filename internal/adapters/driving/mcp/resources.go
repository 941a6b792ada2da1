package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// uriScheme is the custom URI scheme for sercha-ocr resources.
const uriScheme = "sercha-ocr://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Current OCR workflow settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "items/{guid}",
		Name:        "item",
		Description: "Metadata and extracted text of a single item",
		MIMEType:    "application/json",
	}, s.handleItemResource)
}

// settingsView is the settings resource body. Credentials are never included.
type settingsView struct {
	OCR struct {
		BatchSize           int             `json:"batch_size"`
		RolloverSize        int             `json:"rollover_size"`
		TagMode             string          `json:"tag_mode"`
		AppendOCRText       bool            `json:"append_ocr_text"`
		HandleExcludedItems bool            `json:"handle_excluded_items"`
		TextEncoding        string          `json:"text_encoding"`
		Rules               map[string]bool `json:"rules"`
	} `json:"ocr"`
	ExportTarget string `json:"export_target"`
}

func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	var view settingsView
	view.OCR.BatchSize = settings.OCR.BatchSize
	view.OCR.RolloverSize = settings.OCR.RolloverSize
	view.OCR.TagMode = settings.OCR.TagMode.String()
	view.OCR.AppendOCRText = settings.OCR.AppendOCRText
	view.OCR.HandleExcludedItems = settings.OCR.HandleExcludedItems
	view.OCR.TextEncoding = settings.OCR.TextEncoding
	view.OCR.Rules = make(map[string]bool)
	for _, kind := range domain.AllRuleKinds() {
		view.OCR.Rules[string(kind)] = settings.OCR.Rules.Enabled(kind)
	}
	view.ExportTarget = settings.Export.Target.String()

	return jsonResult(req.Params.URI, view)
}

// itemView is the item resource body.
type itemView struct {
	ItemOutput
	Properties  map[string]string `json:"properties,omitempty"`
	Position    []int             `json:"position,omitempty"`
	PrintedPath string            `json:"printed_path,omitempty"`
	Text        string            `json:"text,omitempty"`
}

func (s *Server) handleItemResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	guid := extractItemGUID(req.Params.URI)
	if guid == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	item, err := s.ports.Collection.Get(ctx, guid)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}

	return jsonResult(req.Params.URI, itemView{
		ItemOutput:  toItemOutput(*item),
		Properties:  item.Properties,
		Position:    item.Position,
		PrintedPath: item.PrintedPath,
		Text:        item.Text,
	})
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractItemGUID extracts the GUID from a URI like sercha-ocr://items/{guid}.
func extractItemGUID(uri string) string {
	const prefix = uriScheme + "items/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	guid := strings.TrimPrefix(uri, prefix)
	if strings.Contains(guid, "/") {
		return ""
	}
	return guid
}
