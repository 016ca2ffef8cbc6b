// pkg/manifest/manifest_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test manifest discovery, parsing and comparison with the module tree

package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modlink/pkg/errors"
	"github.com/arthur-debert/modlink/pkg/manifest"
	"github.com/arthur-debert/modlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `<?xml version="1.0" encoding="utf-8" ?>
<otrs_package version="1.0">
    <Name>Calendar</Name>
    <Version>2.1.0</Version>
    <Framework>6.0.x</Framework>
    <Framework>6.1.x</Framework>
    <Vendor>Example Org</Vendor>
    <Filelist>
        <File Permission="644" Location="Kernel/System/Calendar.pm"/>
        <File Permission="755" Location="bin/calendar.pl"/>
        <File Location="Kernel/Config/Files/Calendar.xml"/>
    </Filelist>
</otrs_package>
`

func TestParse(t *testing.T) {
	m, err := manifest.Parse([]byte(sampleManifest), "Calendar.sopm")
	require.NoError(t, err)

	assert.Equal(t, "Calendar", m.Name)
	assert.Equal(t, "2.1.0", m.Version)
	assert.Equal(t, "Example Org", m.Vendor)
	assert.Equal(t, []string{"6.0.x", "6.1.x"}, m.Frameworks)

	require.Len(t, m.Files, 3)
	assert.Equal(t, manifest.File{Location: "Kernel/System/Calendar.pm", Permission: 0644}, m.Files[0])
	assert.Equal(t, os.FileMode(0755), m.Files[1].Permission)
	assert.Equal(t, os.FileMode(0644), m.Files[2].Permission, "permission defaults to 644")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not_xml", "this is not xml <"},
		{"empty", ""},
		{"no_name", `<otrs_package><Version>1</Version></otrs_package>`},
		{"file_without_location", `<otrs_package><Name>X</Name><Filelist><File/></Filelist></otrs_package>`},
		{"bad_permission", `<otrs_package><Name>X</Name><Filelist><File Location="a" Permission="rw"/></Filelist></otrs_package>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manifest.Parse([]byte(tt.data), "x.sopm")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrManifestInvalid))
		})
	}
}

func TestFindAndLoad(t *testing.T) {
	env := testutil.NewEnvironment(t).WithModule(testutil.Tree{
		"Another.sopm": `<otrs_package><Name>Another</Name></otrs_package>`,
		"module.sopm":  sampleManifest,
	})

	path, err := manifest.Find(env.ModuleDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.ModuleDir, "module.sopm"), path, "manifest named after the directory wins")

	m, err := manifest.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Calendar", m.Name)
}

func TestFind_NoManifest(t *testing.T) {
	env := testutil.NewEnvironment(t)

	_, err := manifest.Find(env.ModuleDir)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestNotFound))
}

func TestCompare(t *testing.T) {
	m, err := manifest.Parse([]byte(sampleManifest), "/src/Calendar/Calendar.sopm")
	require.NoError(t, err)

	diff := m.Compare([]string{
		"Calendar.sopm",
		"Kernel/System/Calendar.pm",
		"Kernel/Config/Files/Calendar.xml",
		"Kernel/System/Stray.pm",
	})

	assert.False(t, diff.Clean())
	assert.Equal(t, []string{"bin/calendar.pl"}, diff.Missing)
	assert.Equal(t, []string{"Kernel/System/Stray.pm"}, diff.Unlisted)

	clean := m.Compare([]string{
		"Kernel/System/Calendar.pm",
		"bin/calendar.pl",
		"Kernel/Config/Files/Calendar.xml",
	})
	assert.True(t, clean.Clean())
}

func TestCompareModes(t *testing.T) {
	env := testutil.NewEnvironment(t).WithModule(testutil.Tree{
		"Kernel/System/Calendar.pm": "pm",
		"bin/calendar.pl":           "pl",
	})
	m, err := manifest.Parse([]byte(sampleManifest), env.ModulePath("Calendar.sopm"))
	require.NoError(t, err)

	modes, err := m.CompareModes(env.ModuleDir)
	require.NoError(t, err)
	require.Len(t, modes, 1, "absent files are not reported")
	assert.Equal(t, "bin/calendar.pl", modes[0].Location)
	assert.Equal(t, os.FileMode(0755), modes[0].Want)
	assert.Equal(t, os.FileMode(0644), modes[0].Got)

	require.NoError(t, os.Chmod(env.ModulePath("bin/calendar.pl"), 0750))
	modes, err = m.CompareModes(env.ModuleDir)
	require.NoError(t, err)
	assert.Empty(t, modes, "only the executable bit is compared")

	diff := &manifest.Diff{Modes: []manifest.ModeMismatch{{Location: "x"}}}
	assert.False(t, diff.Clean())
}
