// Package filesystem provides filesystem implementations for modlink.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem and a wrapper used by tests to inject failures.
package filesystem
