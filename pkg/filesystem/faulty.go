package filesystem

import (
	"io/fs"
	"sync"

	"github.com/arthur-debert/modlink/pkg/types"
)

// Op names an FS method for fault injection
type Op string

const (
	OpSymlink Op = "symlink"
	OpRename  Op = "rename"
	OpRemove  Op = "remove"
	OpMkdir   Op = "mkdir"
)

// FaultyFS wraps another FS and fails selected operations on selected paths.
// It is used to exercise the error paths of the linker.
type FaultyFS struct {
	types.FS

	mu     sync.Mutex
	faults map[Op]map[string]error
	calls  map[Op]int
}

// NewFaulty wraps base with no faults configured
func NewFaulty(base types.FS) *FaultyFS {
	return &FaultyFS{
		FS:     base,
		faults: make(map[Op]map[string]error),
		calls:  make(map[Op]int),
	}
}

// Fail makes op on path return err
func (f *FaultyFS) Fail(op Op, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.faults[op] == nil {
		f.faults[op] = make(map[string]error)
	}
	f.faults[op][path] = err
}

// Calls returns how many times op was invoked
func (f *FaultyFS) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FaultyFS) check(op Op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.faults[op][path]
}

func (f *FaultyFS) Symlink(oldname, newname string) error {
	if err := f.check(OpSymlink, newname); err != nil {
		return &fs.PathError{Op: "symlink", Path: newname, Err: err}
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if err := f.check(OpRename, oldpath); err != nil {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: err}
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return &fs.PathError{Op: "remove", Path: name, Err: err}
	}
	return f.FS.Remove(name)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check(OpMkdir, path); err != nil {
		return &fs.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return f.FS.MkdirAll(path, perm)
}
