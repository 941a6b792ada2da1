// Package mcp provides an MCP (Model Context Protocol) server adapter for sercha-ocr.
// It lets AI assistants run classification, export and import against the
// collection and inspect items and settings.
package mcp

import "errors"

var (
	// ErrMissingCollectionService is returned when the collection service is not provided.
	ErrMissingCollectionService = errors.New("mcp: collection service is required")

	// ErrMissingSettingsService is returned when the settings service is not provided.
	ErrMissingSettingsService = errors.New("mcp: settings service is required")
)
