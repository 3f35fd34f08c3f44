package driven

import "github.com/custodia-labs/errcorpus/internal/core/domain"

// DiagnosticExtractor reads diagnostics from one annotated source file.
type DiagnosticExtractor interface {
	// ExtractFile returns the diagnostics recorded in the file at path.
	// A file that cannot be parsed yields no diagnostics and no error;
	// implementations log the failure instead.
	ExtractFile(path string) []domain.Diagnostic
}
