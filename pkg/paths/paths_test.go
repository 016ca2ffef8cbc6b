// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test path normalization and XDG location overrides

package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modlink/pkg/errors"
	"github.com/arthur-debert/modlink/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tilde_only", "~", home},
		{"tilde_slash", "~/work/module", filepath.Join(home, "work/module")},
		{"absolute", "/opt/framework", "/opt/framework"},
		{"other_user", "~bob/x", "~bob/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.ExpandHome(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("relative_becomes_absolute", func(t *testing.T) {
		got, err := paths.Normalize("some/../module")
		require.NoError(t, err)

		wd, _ := os.Getwd()
		assert.Equal(t, filepath.Join(wd, "module"), got)
	})

	t.Run("empty_is_invalid", func(t *testing.T) {
		_, err := paths.Normalize("")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestDirectoryOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, filepath.Join(dir, "cfg"))
	t.Setenv(paths.EnvStateDir, filepath.Join(dir, "state"))

	assert.Equal(t, filepath.Join(dir, "cfg", "config.toml"), paths.UserConfigPath())
	assert.Equal(t, filepath.Join(dir, "state", "modlink.log"), paths.LogFilePath())
}

func TestIsWithin(t *testing.T) {
	assert.True(t, paths.IsWithin("/src/module", "/src/module/Kernel/Foo.pm"))
	assert.True(t, paths.IsWithin("/src/module", "/src/module"))
	assert.False(t, paths.IsWithin("/src/module", "/src/module-other/Foo.pm"))
	assert.False(t, paths.IsWithin("/src/module", "/src"))
}
