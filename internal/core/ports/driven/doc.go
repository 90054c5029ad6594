// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SourceAdapter: Queries one remote bibliographic, museum or literary system
//   - LibraryStore: Record, note and full-text persistence (SQLite)
//   - BlobStore: Attached file persistence (Badger)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FullTextIndex: Local search over extracted PDF text. Without it, searchLocal is disabled.
//   - TextExtractor: PDF text extraction. Without it, attached PDFs are stored but not indexed.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
