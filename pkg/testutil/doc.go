// Package testutil provides utilities for testing modlink components.
//
// Tests run against the real filesystem inside t.TempDir(). The helpers here
// build module and framework trees from inline maps and assert on the link
// tree left behind.
//
// Usage guidelines:
//   - All test data should be defined inline, not in external files
//   - Each test should be completely isolated with no shared state
package testutil
