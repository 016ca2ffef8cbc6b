package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	defer func() { Version, Commit, Date = origVersion, origCommit, origDate }()

	Version, Commit, Date = "1.2.0", "abc123", "2025-01-02"
	assert.Equal(t, "1.2.0 (commit abc123, built 2025-01-02)", String())
}
