// pkg/ui/printer_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test text and JSON rendering of linker results

package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/modlink/pkg/errors"
	"github.com/arthur-debert/modlink/pkg/linker"
	"github.com/arthur-debert/modlink/pkg/manifest"
	"github.com/arthur-debert/modlink/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *linker.Result {
	entry := func(rel string) linker.Entry {
		return linker.Entry{Rel: rel, Source: "/src/mod/" + rel, Dest: "/fw/" + rel}
	}
	return &linker.Result{
		Plan: &linker.Plan{SourceDir: "/src/mod", DestDir: "/fw"},
		Outcomes: []linker.Outcome{
			{Entry: entry("a.pm"), Action: linker.ActionLink},
			{Entry: entry("b.pm"), Action: linker.ActionBackup, Backup: "/fw/b.pm.old"},
			{Entry: entry("c.pm"), Action: linker.ActionReplace},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]ui.Format{
		"":         ui.FormatAuto,
		"auto":     ui.FormatAuto,
		"terminal": ui.FormatTerminal,
		"TEXT":     ui.FormatText,
		"plain":    ui.FormatText,
		"json":     ui.FormatJSON,
	}
	for in, want := range tests {
		got, err := ui.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ui.ParseFormat("yaml")
	assert.Error(t, err)
}

func TestDetectFormat_NonTerminalIsText(t *testing.T) {
	assert.Equal(t, ui.FormatText, ui.DetectFormat(&bytes.Buffer{}))

	p := ui.NewPrinter(&bytes.Buffer{}, ui.FormatAuto, false)
	assert.Equal(t, ui.FormatText, p.Format())
}

func TestPrinter_TextOutcomes(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatText, false)

	r := sampleResult()
	for _, o := range r.Outcomes {
		p.Outcome(o)
	}
	require.NoError(t, p.LinkSummary(r))

	assert.Equal(t, ""+
		"link     /src/mod/a.pm -> /fw/a.pm\n"+
		"backup   /fw/b.pm -> /fw/b.pm.old\n"+
		"link     /src/mod/b.pm -> /fw/b.pm\n"+
		"relink   /src/mod/c.pm -> /fw/c.pm\n"+
		"Linked 3 files from /src/mod into /fw (1 relinked, 1 backed up)\n",
		buf.String())
}

func TestPrinter_DryRunWording(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatText, true)

	p.Outcome(linker.Outcome{Entry: linker.Entry{Source: "/s/x", Dest: "/d/x"}, Action: linker.ActionUnlink})
	require.NoError(t, p.UnlinkSummary(&linker.Result{
		Plan:     &linker.Plan{DestDir: "/d"},
		Outcomes: []linker.Outcome{{Action: linker.ActionUnlink}, {Action: linker.ActionSkip}},
	}))

	out := buf.String()
	assert.Contains(t, out, "would unlink /d/x -> /s/x")
	assert.Contains(t, out, "Removed 1 link from /d, 1 path not linked")
	assert.Contains(t, out, "DRY RUN")
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatJSON, false)

	r := sampleResult()
	p.Outcome(r.Outcomes[0])
	assert.Empty(t, buf.String(), "notices are folded into the JSON summary")

	require.NoError(t, p.LinkSummary(r))

	var decoded struct {
		Outcomes []struct {
			Rel    string `json:"rel"`
			Action string `json:"action"`
			Backup string `json:"backup"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Outcomes, 3)
	assert.Equal(t, "backup", decoded.Outcomes[1].Action)
	assert.Equal(t, "/fw/b.pm.old", decoded.Outcomes[1].Backup)
}

func TestPrinter_PlanAndDiff(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatText, false)

	require.NoError(t, p.Plan(&linker.Plan{
		SourceDir: "/src/mod",
		DestDir:   "/fw",
		Entries:   []linker.Entry{{Rel: "Kernel/Foo.pm"}},
	}))
	assert.Contains(t, buf.String(), "  Kernel/Foo.pm\n1 file\n")

	buf.Reset()
	m := &manifest.Manifest{Name: "Foo", Version: "1.0"}
	require.NoError(t, p.Diff(m, &manifest.Diff{Missing: []string{"bin/x.pl"}, Unlisted: []string{"y"}}))
	assert.Contains(t, buf.String(), "missing  bin/x.pl")
	assert.Contains(t, buf.String(), "unlisted y")

	buf.Reset()
	require.NoError(t, p.Diff(m, &manifest.Diff{Modes: []manifest.ModeMismatch{{Location: "bin/x.pl", Want: 0755, Got: 0644}}}))
	assert.Contains(t, buf.String(), "bin/x.pl (manifest 755, tree 644)")
}

func TestPrinter_ErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatJSON, false)

	p.Error(errors.New(errors.ErrDestMissing, "gone").WithDetail("path", "/fw"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "DEST_MISSING", decoded["code"])
	assert.Equal(t, "/fw", decoded["details"].(map[string]interface{})["path"])
}
