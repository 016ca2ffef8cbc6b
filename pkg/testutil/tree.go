package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Tree maps slash-separated relative paths to file contents. A path ending
// in "/" creates a directory.
type Tree map[string]string

// Environment holds a module directory and a framework directory
type Environment struct {
	t            *testing.T
	Root         string
	ModuleDir    string
	FrameworkDir string
}

// NewEnvironment creates empty module and framework directories
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()
	root := t.TempDir()
	env := &Environment{
		t:            t,
		Root:         root,
		ModuleDir:    filepath.Join(root, "module"),
		FrameworkDir: filepath.Join(root, "framework"),
	}
	require.NoError(t, os.MkdirAll(env.ModuleDir, 0755))
	require.NoError(t, os.MkdirAll(env.FrameworkDir, 0755))
	return env
}

// WithModule writes tree into the module directory
func (e *Environment) WithModule(tree Tree) *Environment {
	e.t.Helper()
	WriteTree(e.t, e.ModuleDir, tree)
	return e
}

// WithFramework writes tree into the framework directory
func (e *Environment) WithFramework(tree Tree) *Environment {
	e.t.Helper()
	WriteTree(e.t, e.FrameworkDir, tree)
	return e
}

// ModulePath returns the absolute path of rel inside the module
func (e *Environment) ModulePath(rel string) string {
	return filepath.Join(e.ModuleDir, filepath.FromSlash(rel))
}

// FrameworkPath returns the absolute path of rel inside the framework
func (e *Environment) FrameworkPath(rel string) string {
	return filepath.Join(e.FrameworkDir, filepath.FromSlash(rel))
}

// WriteTree creates the files and directories of tree below root
func WriteTree(t *testing.T, root string, tree Tree) {
	t.Helper()

	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, rel := range keys {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(tree[rel]), 0644))
	}
}

// Symlinks returns every symlink below root mapped to its target, keyed by
// slash-separated relative path
func Symlinks(t *testing.T, root string) map[string]string {
	t.Helper()

	links := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&os.ModeSymlink == 0 {
			return nil
		}
		target, err := os.Readlink(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		links[filepath.ToSlash(rel)] = target
		return nil
	})
	require.NoError(t, err)
	return links
}
