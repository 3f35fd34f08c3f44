package domain

import "strings"

// MatchKind describes how a message was classified.
type MatchKind int

const (
	// MatchNone indicates no exact entry or pattern matched.
	// The message is kept verbatim for later catalog extension.
	MatchNone MatchKind = iota

	// MatchExact indicates the message is a known fixed message.
	MatchExact

	// MatchPattern indicates the message matched a catalog pattern.
	MatchPattern
)

// String returns the kind name used in reports.
func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchPattern:
		return "pattern"
	default:
		return "unmatched"
	}
}

// Classification is the result of classifying one message text.
type Classification struct {
	// Kind is how the message was matched.
	Kind MatchKind

	// CanonicalID is the category id, e.g. "compiler.err.cant.resolve[class]".
	// Empty when Kind is MatchNone.
	CanonicalID string

	// SanitizedText is the signature of the category, or the input text
	// itself for exact and unmatched messages.
	SanitizedText string
}

// Matched reports whether the message was assigned a category.
func (c Classification) Matched() bool {
	return c.Kind != MatchNone
}

// JavacName returns the compiler's internal error family for the classification.
func (c Classification) JavacName() string {
	return JavacName(c.CanonicalID)
}

// JavacName strips an optional bracketed variety suffix from a canonical id:
// "compiler.err.cant.resolve[class]" becomes "compiler.err.cant.resolve".
func JavacName(canonicalID string) string {
	if !strings.HasSuffix(canonicalID, "]") {
		return canonicalID
	}
	if i := strings.LastIndexByte(canonicalID, '['); i >= 0 {
		return canonicalID[:i]
	}
	return canonicalID
}
