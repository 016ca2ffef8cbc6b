// pkg/framework/framework_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test framework root detection

package framework_test

import (
	"testing"

	"github.com/arthur-debert/modlink/pkg/errors"
	"github.com/arthur-debert/modlink/pkg/framework"
	"github.com/arthur-debert/modlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		tree    testutil.Tree
		want    bool
		missing []string
	}{
		{
			name: "installed_framework",
			tree: testutil.Tree{"Kernel/Config.pm": "1;", "Kernel/System/": ""},
			want: true,
		},
		{
			name: "fresh_checkout_with_dist_config",
			tree: testutil.Tree{"Kernel/Config.pm.dist": "1;", "Kernel/System/": ""},
			want: true,
		},
		{
			name:    "empty_directory",
			tree:    testutil.Tree{},
			missing: []string{"Kernel/Config.pm|Kernel/Config.pm.dist", "Kernel/System/"},
		},
		{
			name:    "system_is_a_file",
			tree:    testutil.Tree{"Kernel/Config.pm": "1;", "Kernel/System": "oops"},
			missing: []string{"Kernel/System/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewEnvironment(t).WithFramework(tt.tree)

			d, err := framework.Detect(env.FrameworkDir, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.IsFramework())
			assert.Equal(t, tt.missing, d.Missing)
		})
	}
}

func TestRequire(t *testing.T) {
	env := testutil.NewEnvironment(t)

	err := framework.Require(env.FrameworkDir, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFramework))

	err = framework.Require(env.ModuleDir, []string{"/"})
	assert.NoError(t, err, "a custom marker set replaces the defaults")
}
