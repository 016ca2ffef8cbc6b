package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertSymlink checks that path is a symlink pointing at target
func AssertSymlink(t *testing.T, path, target string, msgAndArgs ...interface{}) bool {
	t.Helper()

	info, err := os.Lstat(path)
	if !assert.NoError(t, err, msgAndArgs...) {
		return false
	}
	if !assert.True(t, info.Mode()&os.ModeSymlink != 0, "%s should be a symlink", path) {
		return false
	}
	got, err := os.Readlink(path)
	if !assert.NoError(t, err, msgAndArgs...) {
		return false
	}
	return assert.Equal(t, target, got, msgAndArgs...)
}

// AssertRegularFile checks that path is a regular file holding content
func AssertRegularFile(t *testing.T, path, content string, msgAndArgs ...interface{}) bool {
	t.Helper()

	info, err := os.Lstat(path)
	if !assert.NoError(t, err, msgAndArgs...) {
		return false
	}
	if !assert.True(t, info.Mode().IsRegular(), "%s should be a regular file", path) {
		return false
	}
	data, err := os.ReadFile(path)
	if !assert.NoError(t, err, msgAndArgs...) {
		return false
	}
	return assert.Equal(t, content, string(data), msgAndArgs...)
}

// AssertNotExists checks that nothing exists at path, not even a dangling link
func AssertNotExists(t *testing.T, path string, msgAndArgs ...interface{}) bool {
	t.Helper()

	_, err := os.Lstat(path)
	return assert.True(t, os.IsNotExist(err), "%s should not exist", path)
}
