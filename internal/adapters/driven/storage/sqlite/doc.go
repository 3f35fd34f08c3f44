// Package sqlite provides the SQLite corpus database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. One Store wraps one database file:
// a slice database produced by a collector, or the combined database that
// slice databases are merged into.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
//   - all_messages: extracted diagnostics, keyed by (srcml_path, version, rank)
//   - source: slice, project and source file ids of each path
//   - sanitized_messages: classification of each distinct message text
//   - first_messages: view of the rank 1 diagnostics
//
// # SQL Functions
//
// RegisterFunctions installs sanitize_message, javac_name, canonical_id,
// slice_name, project_id and source_id for ad hoc research queries.
//
// # Thread Safety
//
// A Store holds a single connection. Workers that collect slices in
// parallel each own their own Store.
package sqlite
