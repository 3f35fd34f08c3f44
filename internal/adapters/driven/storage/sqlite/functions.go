package sqlite

import (
	"database/sql/driver"
	"fmt"
	"sync"

	sqlitedriver "modernc.org/sqlite"

	"github.com/custodia-labs/errcorpus/internal/classify"
	"github.com/custodia-labs/errcorpus/internal/core/domain"
)

// SQL functions available on every connection once registered:
//
//	sanitize_message(text)  signature of a message
//	javac_name(text)        compiler error family, NULL if unmatched
//	canonical_id(text)      catalog id including any [variety], NULL if unmatched
//	slice_name(path)        slice label of a source path
//	project_id(path)        project id of a source path
//	source_id(path)         source file id of a source path
//
// A NULL argument yields NULL. A path that does not follow the corpus
// convention is an SQL error.
//
// The message functions always use the default javac catalog, whatever
// classifier a Store was opened with. The driver registers functions for
// the whole process, so nothing a Store is given can leak into another.
var (
	registerOnce sync.Once
	registerErr  error

	functionClassifier = classify.NewDefault()
)

// RegisterFunctions makes the corpus SQL functions available to every
// database opened afterwards. Calling it again is a no-op.
func RegisterFunctions() error {
	registerOnce.Do(func() {
		registerErr = registerAll()
	})
	return registerErr
}

func registerAll() error {
	functions := []struct {
		name string
		fn   func(string) (driver.Value, error)
	}{
		{"sanitize_message", func(text string) (driver.Value, error) {
			return classifyText(text).SanitizedText, nil
		}},
		{"javac_name", func(text string) (driver.Value, error) {
			return nullIfEmpty(classifyText(text).JavacName()), nil
		}},
		{"canonical_id", func(text string) (driver.Value, error) {
			return nullIfEmpty(classifyText(text).CanonicalID), nil
		}},
		{"slice_name", func(p string) (driver.Value, error) {
			loc, err := domain.ParseSourcePath(p)
			if err != nil {
				return nil, err
			}
			return loc.Slice, nil
		}},
		{"project_id", func(p string) (driver.Value, error) {
			loc, err := domain.ParseSourcePath(p)
			if err != nil {
				return nil, err
			}
			return int64(loc.ProjectID), nil
		}},
		{"source_id", func(p string) (driver.Value, error) {
			loc, err := domain.ParseSourcePath(p)
			if err != nil {
				return nil, err
			}
			return int64(loc.SourceFileID), nil
		}},
	}

	for _, f := range functions {
		if err := sqlitedriver.RegisterDeterministicScalarFunction(f.name, 1, textFunction(f.fn)); err != nil {
			return fmt.Errorf("registering %s: %w", f.name, err)
		}
	}
	return nil
}

// textFunction adapts a single-argument string function to the driver.
func textFunction(fn func(string) (driver.Value, error)) func(*sqlitedriver.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlitedriver.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case nil:
			return nil, nil
		case string:
			return fn(v)
		case []byte:
			return fn(string(v))
		default:
			return nil, fmt.Errorf("expected text argument, got %T", v)
		}
	}
}

func classifyText(text string) domain.Classification {
	return functionClassifier.Classify(text)
}

func nullIfEmpty(s string) driver.Value {
	if s == "" {
		return nil
	}
	return s
}
