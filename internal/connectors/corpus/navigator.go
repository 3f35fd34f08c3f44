// Package corpus walks the on-disk corpus of annotated source snapshots.
//
// The corpus is laid out as
//
//	<root>/slice-<label>/project-<id>/source-<id>.xml
//
// Slices are time-partitioned collection snapshots. Every slice-* entry
// under the root must be a directory; project and source entries that do
// not match are skipped.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driven"
)

// Ensure Navigator implements the interface.
var _ driven.CorpusNavigator = (*Navigator)(nil)

// Navigator enumerates slices, projects and source files under a root.
type Navigator struct {
	root string
}

// New creates a navigator rooted at root.
func New(root string) *Navigator {
	return &Navigator{root: root}
}

// Root returns the corpus root directory.
func (n *Navigator) Root() string {
	return n.root
}

// Slices returns every slice under the root, sorted by label.
func (n *Navigator) Slices() ([]domain.Slice, error) {
	entries, err := os.ReadDir(n.root)
	if err != nil {
		return nil, fmt.Errorf("read corpus root: %w", err)
	}

	var slices []domain.Slice
	for _, entry := range entries {
		label, ok := domain.SliceLabel(entry.Name())
		if !ok {
			continue
		}
		path := filepath.Join(n.root, entry.Name())
		isDir, err := isDirectory(path, entry)
		if err != nil {
			return nil, err
		}
		if !isDir {
			return nil, fmt.Errorf("%w: slice %s is not a directory", domain.ErrConventionViolation, path)
		}
		slices = append(slices, domain.Slice{Label: label, Path: path})
	}

	sort.Slice(slices, func(i, j int) bool {
		return slices[i].Label < slices[j].Label
	})
	return slices, nil
}

// SliceByLabel resolves the slice with the given label.
func (n *Navigator) SliceByLabel(label string) (domain.Slice, error) {
	if label == "" || strings.ContainsAny(label, `/\`) {
		return domain.Slice{}, fmt.Errorf("%w: bad slice label %q", domain.ErrInvalidInput, label)
	}

	path := filepath.Join(n.root, domain.SlicePrefix+label)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Slice{}, fmt.Errorf("slice %s: %w", label, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Slice{}, fmt.Errorf("stat slice: %w", err)
	}
	if !info.IsDir() {
		return domain.Slice{}, fmt.Errorf("%w: slice %s is not a directory", domain.ErrConventionViolation, path)
	}
	return domain.Slice{Label: label, Path: path}, nil
}

// Projects returns the projects of a slice, sorted by ID.
// Entries that are not directories are skipped.
func (n *Navigator) Projects(slice domain.Slice) ([]domain.Project, error) {
	if _, ok := domain.SliceLabel(filepath.Base(slice.Path)); !ok {
		return nil, fmt.Errorf("%w: %s is not a slice directory", domain.ErrConventionViolation, slice.Path)
	}

	entries, err := os.ReadDir(slice.Path)
	if err != nil {
		return nil, fmt.Errorf("read slice: %w", err)
	}

	var projects []domain.Project
	for _, entry := range entries {
		id, ok := strings.CutPrefix(entry.Name(), domain.ProjectPrefix)
		if !ok || id == "" {
			continue
		}
		path := filepath.Join(slice.Path, entry.Name())
		isDir, err := isDirectory(path, entry)
		if err != nil {
			return nil, err
		}
		if !isDir {
			continue
		}
		projects = append(projects, domain.Project{ID: id, Path: path})
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ID < projects[j].ID
	})
	return projects, nil
}

// SourceFiles returns the source-*.xml files of a project, sorted.
func (n *Navigator) SourceFiles(project domain.Project) ([]string, error) {
	if !strings.HasPrefix(filepath.Base(project.Path), domain.ProjectPrefix) {
		return nil, fmt.Errorf("%w: %s is not a project directory", domain.ErrConventionViolation, project.Path)
	}

	entries, err := os.ReadDir(project.Path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, domain.SourcePrefix) || !strings.HasSuffix(name, domain.SourceSuffix) {
			continue
		}
		files = append(files, filepath.Join(project.Path, name))
	}

	sort.Strings(files)
	return files, nil
}

// isDirectory reports whether entry is a directory, following symlinks.
func isDirectory(path string, entry fs.DirEntry) (bool, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.IsDir(), nil
}
