// Package sqlite provides the SQLite-backed library store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A single database holds:
//
//   - records: bookmarked works
//   - notes: append-only annotations, cascaded on record delete
//   - full_texts: normalised PDF text the full-text index is rebuilt from
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.pardis/data/library.db
//
// # Thread Safety
//
// All operations are thread-safe. Multi-row writes (record with notes, import
// batches, delete) run in a single transaction.
package sqlite
