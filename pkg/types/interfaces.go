package types

import (
	"io/fs"
)

// FS is the filesystem interface required for modlink operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error
}
