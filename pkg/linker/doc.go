// Package linker exposes the files of a module inside a framework tree
// through symbolic links, and removes them again.
//
// Linking happens in two steps. Plan walks the module depth-first in name
// order and returns one Entry per file, mirroring the file's path relative
// to the module root inside the framework root. Nothing is touched while
// planning. Link and Unlink then apply the plan entry by entry and stop at
// the first error; links created before the failure stay on disk, and
// running the same command again picks up where it stopped. Each mutation
// runs as its own synthfs operation, with rollback disabled.
//
// Collision rules for Link:
//
//	destination missing        create the link
//	destination is a symlink   remove it, create the link
//	destination is a file      move it to <dest>.old, create the link
//	destination is a directory abort with FILE_EXISTS
//
// Unlink only ever removes symlinks. Regular files, including .old backups,
// are left alone unless backup restoring is enabled.
package linker
