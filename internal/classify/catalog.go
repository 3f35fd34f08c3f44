package classify

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
)

// Pattern matches one javac message template.
type Pattern struct {
	// ID is the key in javac's compiler.properties. A [variety] suffix
	// splits templates that are too generic on their own, e.g.
	// compiler.err.cant.resolve[class] and compiler.err.cant.resolve[method].
	ID string

	// Expr is matched from the first character of the message.
	Expr *regexp.Regexp

	// Signature is the sanitized form of every message this pattern matches.
	// It must be a valid message and must be matched by Expr.
	Signature string
}

// NewPattern compiles expr anchored at the start of the message.
// A trailing $ also matches before a single final newline.
// It panics if expr does not compile; catalogs are static.
func NewPattern(id, expr, signature string) Pattern {
	return Pattern{
		ID:        id,
		Expr:      regexp.MustCompile(`^(?:` + allowFinalNewline(expr) + `)`),
		Signature: signature,
	}
}

// allowFinalNewline rewrites an unescaped trailing $ to \n?$.
func allowFinalNewline(expr string) string {
	if !strings.HasSuffix(expr, "$") {
		return expr
	}
	body := strings.TrimSuffix(expr, "$")
	slashes := len(body) - len(strings.TrimRight(body, `\`))
	if slashes%2 == 1 {
		return expr
	}
	return body + `\n?$`
}

// Match reports whether message matches the pattern.
func (p Pattern) Match(message string) bool {
	return p.Expr.MatchString(message)
}

// Catalog is the data behind a Classifier.
type Catalog struct {
	// Exact maps complete messages with no variable parts to their javac name.
	Exact map[string]string

	// Patterns are tried in order. When a message satisfies several patterns
	// the earliest wins, so specific patterns precede generic ones.
	Patterns []Pattern
}

// Match returns the first pattern matching message.
func (c *Catalog) Match(message string) (Pattern, bool) {
	for _, p := range c.Patterns {
		if p.Match(message) {
			return p, true
		}
	}
	return Pattern{}, false
}

// Validate checks that the catalog is internally coherent: every pattern
// matches its own signature, and every signature is classified by its own
// pattern (no exact entry or earlier pattern shadows it).
func (c *Catalog) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c.Patterns))

	for i, p := range c.Patterns {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("pattern %d: empty id", i))
			continue
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("pattern %s: duplicate id", p.ID))
		}
		seen[p.ID] = true

		if !p.Match(p.Signature) {
			errs = append(errs, fmt.Errorf("pattern %s: does not match own signature", p.ID))
			continue
		}
		if name, ok := c.Exact[p.Signature]; ok {
			errs = append(errs, fmt.Errorf("pattern %s: signature shadowed by exact entry %s", p.ID, name))
			continue
		}
		if first, _ := c.Match(p.Signature); first.ID != p.ID {
			errs = append(errs, fmt.Errorf("pattern %s: signature shadowed by pattern %s", p.ID, first.ID))
		}
	}

	for text, name := range c.Exact {
		if text == "" || name == "" {
			errs = append(errs, fmt.Errorf("exact entry %q: empty text or name", text))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}
