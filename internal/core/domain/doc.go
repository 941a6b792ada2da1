// Package domain defines the core entities of the OCR workflow.
//
// This package is the innermost layer of the hexagonal architecture.
// It has no external dependencies and defines:
//
//   - Item: a document or image in the collection
//   - TagKind: the tags applied by export, import and classification
//   - ItemQuery: a structured selection over the collection
//   - OCRSettings: the configuration passed into each engine
//   - ExportSummary, ImportSummary, ClassificationSummary: run outcomes
//
// Adapters translate these types to and from their own representations.
package domain
