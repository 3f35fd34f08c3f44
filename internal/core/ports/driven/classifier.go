package driven

import "github.com/custodia-labs/errcorpus/internal/core/domain"

// MessageClassifier maps diagnostic text to a canonical signature.
// Implementations must be safe for concurrent use.
type MessageClassifier interface {
	// Classify never fails: text that matches nothing is MatchNone.
	Classify(text string) domain.Classification
}
