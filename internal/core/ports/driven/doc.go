// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CorpusNavigator: Walks the slice/project/source directory tree
//   - DiagnosticExtractor: Reads compiler diagnostics out of srcML files
//   - DiagnosticStore: Corpus database persistence (SQLite)
//   - StoreFactory: Opens a DiagnosticStore for a database file
//   - MessageClassifier: Maps diagnostic text to canonical signatures
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or extractor package
package driven
