package driven

import "github.com/custodia-labs/errcorpus/internal/core/domain"

// CorpusNavigator enumerates the corpus directory tree.
// The layout is slice-<label>/project-<id>/source-<id>.xml.
type CorpusNavigator interface {
	// Root returns the corpus root directory.
	Root() string

	// Slices returns every slice under the root.
	// A slice-* entry that is not a directory is a convention violation.
	Slices() ([]domain.Slice, error)

	// SliceByLabel resolves a single slice.
	// Returns domain.ErrNotFound if the slice does not exist.
	SliceByLabel(label string) (domain.Slice, error)

	// Projects returns the projects within a slice.
	// Non-directory entries are skipped.
	Projects(slice domain.Slice) ([]domain.Project, error)

	// SourceFiles returns the source-*.xml files of a project.
	SourceFiles(project domain.Project) ([]string, error)
}
