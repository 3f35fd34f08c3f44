// Package domain defines the core entities of the error corpus.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Diagnostic: One compiler error extracted from a compile unit
//   - SourceLocation: A diagnostic path decomposed into slice, project and source
//   - Classification: The canonical category of a diagnostic message
//   - ClassifiedMessage: A persisted classification of one distinct message text
//   - Slice / Project: Corpus partitions as found on disk
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
