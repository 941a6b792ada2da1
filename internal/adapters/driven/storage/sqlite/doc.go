// Package sqlite provides the SQLite-backed collection.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. One Store exposes three driven ports over a single connection pool:
//
//   - ItemStore: item persistence and structured search
//   - TagService: batched tag mutations, one transaction per batch
//   - ItemImporter: structured renditions and replacement text
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.sercha-ocr/data/collection.db and
// imported renditions are copied under ~/.sercha-ocr/data/printed.
package sqlite
