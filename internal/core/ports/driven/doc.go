// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ItemSearcher: Structured search over the collection
//   - TagService: Batch tag mutations
//   - ItemExporter: Single-item export primitive
//   - ItemImporter: Single-item import primitives
//   - ItemSorter: Position-based ordering
//   - ItemStore: Collection persistence (search plus item management)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil or absent; the application degrades gracefully:
//
//   - DestinationLocker: Exclusive access to an export root. Only local targets implement it.
//   - DirectoryWatcher: Waits for an OCR output directory to stop changing.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
