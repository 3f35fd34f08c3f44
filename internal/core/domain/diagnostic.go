package domain

// Diagnostic is one compiler error extracted from a failed compile unit.
// (Path, Version, Rank) is the natural key and is globally unique.
type Diagnostic struct {
	// Path is the annotated source file the diagnostic was found in.
	Path string

	// Version is the edit version of the compile unit.
	Version int

	// Rank is the 1-based position of the diagnostic within its unit's
	// error list, in emission order. Rank 1 is the first error.
	Rank int

	// Start is the start position as recorded by the compiler (e.g. "12:5").
	Start string

	// End is the end position as recorded by the compiler.
	End string

	// Text is the message with escape sequences decoded.
	Text string
}

// IsFirst reports whether this is the first error of its compile unit.
func (d Diagnostic) IsFirst() bool {
	return d.Rank == 1
}

// Key is the natural key of a Diagnostic.
type Key struct {
	Path    string
	Version int
	Rank    int
}

// Key returns the natural key of the diagnostic.
func (d Diagnostic) Key() Key {
	return Key{Path: d.Path, Version: d.Version, Rank: d.Rank}
}

// SourceLocation is the decomposition of a diagnostic path.
type SourceLocation struct {
	// Path is the full path the location was decomposed from.
	Path string

	// Slice is the slice label, e.g. "2013-06".
	Slice string

	// ProjectID identifies the project within the slice.
	ProjectID int

	// SourceFileID identifies the source file within the project.
	SourceFileID int
}

// ClassifiedMessage is the persisted classification of one distinct message text.
type ClassifiedMessage struct {
	// Text is the raw message text, the join key back to diagnostics.
	Text string

	// JavacName is the compiler's internal error family, empty when unmatched.
	JavacName string

	// SanitizedText is the signature standing in for every message of the category.
	SanitizedText string
}
