// Package ignore decides which entries of a module tree are version-control
// bookkeeping rather than module content.
//
// Matching is done on whole path segments. A directory is excluded when its
// name is one of the configured directory names; a file is excluded when its
// name is a configured metadata file name and its parent directory is the
// directory that file belongs to (CVS/Entries, CVS/Root, ...). A module file
// that merely happens to be called Root is content and is kept.
package ignore

import (
	"path/filepath"
	"strings"
)

// DefaultDirs are the version-control metadata directories skipped by default
var DefaultDirs = []string{"CVS", ".git", ".svn", ".hg", ".bzr"}

// DefaultFiles maps a metadata directory to the membership files it holds
var DefaultFiles = map[string][]string{
	"CVS": {"Entries", "Entries.Log", "Entries.Static", "Repository", "Root", "Tag"},
}

// Matcher tests relative paths against the exclusion rules
type Matcher struct {
	dirs  map[string]struct{}
	files map[string]map[string]struct{}
}

// New returns a Matcher for the given directory names and metadata files.
// files is keyed by the parent directory name; the key "*" applies in any
// directory and "." to the module root only.
func New(dirs []string, files map[string][]string) *Matcher {
	m := &Matcher{
		dirs:  make(map[string]struct{}, len(dirs)),
		files: make(map[string]map[string]struct{}, len(files)),
	}
	for _, d := range dirs {
		if d = strings.TrimSpace(d); d != "" {
			m.dirs[d] = struct{}{}
		}
	}
	for parent, names := range files {
		set := m.files[parent]
		if set == nil {
			set = make(map[string]struct{}, len(names))
			m.files[parent] = set
		}
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				set[n] = struct{}{}
			}
		}
	}
	return m
}

// Default returns a Matcher using DefaultDirs and DefaultFiles
func Default() *Matcher {
	return New(DefaultDirs, DefaultFiles)
}

// Match reports whether rel, a slash or OS separated path relative to the
// module root, must be skipped. isDir tells whether the last segment is a
// directory.
func (m *Matcher) Match(rel string, isDir bool) bool {
	if m == nil {
		return false
	}
	segments := strings.Split(filepath.ToSlash(filepath.Clean(rel)), "/")

	// Any excluded directory on the way down excludes everything below it.
	last := len(segments) - 1
	for i, seg := range segments {
		if i == last && !isDir {
			break
		}
		if _, ok := m.dirs[seg]; ok {
			return true
		}
	}
	if isDir {
		return false
	}

	name := segments[last]
	if set, ok := m.files["*"]; ok {
		if _, hit := set[name]; hit {
			return true
		}
	}
	parent := "."
	if last > 0 {
		parent = segments[last-1]
	}
	if set, ok := m.files[parent]; ok {
		if _, hit := set[name]; hit {
			return true
		}
	}
	return false
}
