package domain

import (
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// Corpus naming convention.
const (
	// SlicePrefix prefixes slice directory names: slice-<label>.
	SlicePrefix = "slice-"

	// ProjectPrefix prefixes project directory names: project-<id>.
	ProjectPrefix = "project-"

	// SourcePrefix prefixes annotated source file names: source-<id>.xml.
	SourcePrefix = "source-"

	// SourceSuffix is the extension of annotated source files.
	SourceSuffix = ".xml"

	// DatabasePrefix prefixes slice database file names.
	DatabasePrefix = "errors-"

	// DatabaseSuffix is the extension of corpus database files.
	DatabaseSuffix = ".sqlite3"
)

// Slice is one time-partitioned collection snapshot of the corpus.
type Slice struct {
	// Label is the directory name without SlicePrefix, e.g. "2013-06".
	Label string

	// Path is the slice directory.
	Path string
}

// DatabaseName returns the file name of the slice-local database.
func (s Slice) DatabaseName() string {
	return DatabasePrefix + s.Label + DatabaseSuffix
}

// Project is one user project within a slice.
type Project struct {
	// ID is the directory name without ProjectPrefix.
	ID string

	// Path is the project directory.
	Path string
}

// SliceLabel returns the label of a slice directory name.
// ok is false when the name does not follow the convention.
func SliceLabel(name string) (string, bool) {
	label, ok := strings.CutPrefix(name, SlicePrefix)
	return label, ok && label != ""
}

// ParseSourcePath decomposes .../slice-<label>/project-<id>/source-<id>.xml.
// A path that does not follow the convention is a precondition failure
// reported as ErrConventionViolation.
func ParseSourcePath(p string) (SourceLocation, error) {
	parts := strings.Split(path.Clean(filepath.ToSlash(p)), "/")
	if len(parts) < 3 {
		return SourceLocation{}, fmt.Errorf("%w: too few path segments: %q", ErrConventionViolation, p)
	}
	sliceDir, projectDir, fileName := parts[len(parts)-3], parts[len(parts)-2], parts[len(parts)-1]

	label, ok := SliceLabel(sliceDir)
	if !ok {
		return SourceLocation{}, fmt.Errorf("%w: not a slice directory: %q", ErrConventionViolation, sliceDir)
	}

	projectID, err := parseID(projectDir, ProjectPrefix, "")
	if err != nil {
		return SourceLocation{}, fmt.Errorf("%w: bad project directory %q: %v", ErrConventionViolation, projectDir, err)
	}

	sourceID, err := parseID(fileName, SourcePrefix, SourceSuffix)
	if err != nil {
		return SourceLocation{}, fmt.Errorf("%w: bad source file %q: %v", ErrConventionViolation, fileName, err)
	}

	return SourceLocation{
		Path:         p,
		Slice:        label,
		ProjectID:    projectID,
		SourceFileID: sourceID,
	}, nil
}

func parseID(name, prefix, suffix string) (int, error) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return 0, fmt.Errorf("missing prefix %q", prefix)
	}
	if suffix != "" {
		if rest, ok = strings.CutSuffix(rest, suffix); !ok {
			return 0, fmt.Errorf("missing suffix %q", suffix)
		}
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("id is not an integer: %q", rest)
	}
	return id, nil
}
