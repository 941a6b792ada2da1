package mcp

import (
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the MCP server.
// The engine ports are optional; tools for missing engines are not registered.
type Ports struct {
	Collection     driving.CollectionService
	Settings       driving.SettingsService
	Classification driving.ClassificationService
	Export         driving.ExportService
	Import         driving.ImportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Collection == nil {
		return ErrMissingCollectionService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
