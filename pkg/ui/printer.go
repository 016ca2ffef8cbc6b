package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modlink/pkg/errors"
	"github.com/arthur-debert/modlink/pkg/linker"
	"github.com/arthur-debert/modlink/pkg/manifest"
	"github.com/arthur-debert/modlink/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Printer writes linker notices and summaries in one output format
type Printer struct {
	w      io.Writer
	format Format
	dryRun bool
}

// NewPrinter creates a Printer, resolving FormatAuto against w
func NewPrinter(w io.Writer, format Format, dryRun bool) *Printer {
	if format == FormatAuto {
		format = DetectFormat(w)
	}
	return &Printer{w: w, format: format, dryRun: dryRun}
}

// Format returns the resolved output format
func (p *Printer) Format() Format {
	return p.format
}

func (p *Printer) style(name, s string) string {
	if p.format != FormatTerminal {
		return s
	}
	return styles.GetStyle(name).Render(s)
}

func (p *Printer) bold(s string) string {
	if p.format != FormatTerminal {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// verb returns the word printed for an action
func (p *Printer) verb(a linker.Action) string {
	var v string
	switch a {
	case linker.ActionLink:
		v = "link"
	case linker.ActionReplace:
		v = "relink"
	case linker.ActionBackup:
		v = "backup"
	case linker.ActionUnlink:
		v = "unlink"
	case linker.ActionRestore:
		v = "restore"
	default:
		v = string(a)
	}
	if p.dryRun {
		return "would " + v
	}
	return v
}

func (p *Printer) line(action linker.Action, styleName, from, to string) {
	verb := p.verb(action)
	if p.format == FormatTerminal {
		verb = styles.GetStyle("Action").Inherit(styles.GetStyle(styleName)).Render(verb)
	} else {
		verb = fmt.Sprintf("%-8s", verb)
	}
	fmt.Fprintf(p.w, "%s %s -> %s\n", verb, p.style("FilePath", from), p.style("FilePath", to))
}

// Outcome prints the notice lines for one outcome. Nothing is printed in
// JSON mode, where the summary carries everything.
func (p *Printer) Outcome(o linker.Outcome) {
	if p.format == FormatJSON {
		return
	}
	switch o.Action {
	case linker.ActionBackup:
		p.line(linker.ActionBackup, "Warning", o.Dest, o.Backup)
		p.line(linker.ActionLink, "Success", o.Source, o.Dest)
	case linker.ActionLink, linker.ActionReplace:
		p.line(o.Action, "Success", o.Source, o.Dest)
	case linker.ActionUnlink:
		p.line(o.Action, "Info", o.Dest, o.Source)
	case linker.ActionRestore:
		p.line(linker.ActionUnlink, "Info", o.Dest, o.Source)
		p.line(o.Action, "Warning", o.Backup, o.Dest)
	}
}

// LinkSummary prints the closing lines of a link run
func (p *Printer) LinkSummary(r *linker.Result) error {
	if p.format == FormatJSON {
		return p.JSON(r)
	}
	total := len(r.Outcomes)
	parts := []string{}
	if n := r.Count(linker.ActionReplace); n > 0 {
		parts = append(parts, fmt.Sprintf("%d relinked", n))
	}
	if n := r.Count(linker.ActionBackup); n > 0 {
		parts = append(parts, fmt.Sprintf("%d backed up", n))
	}
	msg := fmt.Sprintf("Linked %d %s from %s into %s", total, plural(total, "file"), r.Plan.SourceDir, r.Plan.DestDir)
	if len(parts) > 0 {
		msg += " (" + strings.Join(parts, ", ") + ")"
	}
	p.summary(msg)
	return nil
}

// UnlinkSummary prints the closing lines of an unlink run
func (p *Printer) UnlinkSummary(r *linker.Result) error {
	if p.format == FormatJSON {
		return p.JSON(r)
	}
	removed := r.Count(linker.ActionUnlink) + r.Count(linker.ActionRestore)
	msg := fmt.Sprintf("Removed %d %s from %s", removed, plural(removed, "link"), r.Plan.DestDir)
	if n := r.Count(linker.ActionRestore); n > 0 {
		msg += fmt.Sprintf(" (%d %s restored)", n, plural(n, "backup"))
	}
	if n := r.Count(linker.ActionSkip); n > 0 {
		msg += fmt.Sprintf(", %d %s not linked", n, plural(n, "path"))
	}
	p.summary(msg)
	return nil
}

func (p *Printer) summary(msg string) {
	fmt.Fprintln(p.w, p.style("Success", p.bold(msg)))
	if p.dryRun {
		fmt.Fprintln(p.w, p.style("DryRunBanner", "DRY RUN - no changes were made"))
	}
}

// Plan prints the entries of a plan, one per line
func (p *Printer) Plan(plan *linker.Plan) error {
	if p.format == FormatJSON {
		return p.JSON(plan)
	}
	fmt.Fprintln(p.w, p.style("Header", p.bold(fmt.Sprintf("%s -> %s", plan.SourceDir, plan.DestDir))))
	for _, e := range plan.Entries {
		fmt.Fprintf(p.w, "  %s\n", p.style("FilePath", filepath.ToSlash(e.Rel)))
	}
	fmt.Fprintf(p.w, "%d %s\n", len(plan.Entries), plural(len(plan.Entries), "file"))
	return nil
}

type diffReport struct {
	Manifest string       `json:"manifest"`
	Name     string       `json:"name"`
	Version  string       `json:"version"`
	Missing  []string     `json:"missing"`
	Unlisted []string     `json:"unlisted"`
	Modes    []modeReport `json:"modes"`
}

type modeReport struct {
	Location string `json:"location"`
	Want     string `json:"want"`
	Got      string `json:"got"`
}

// Diff prints a manifest comparison
func (p *Printer) Diff(m *manifest.Manifest, d *manifest.Diff) error {
	if p.format == FormatJSON {
		modes := make([]modeReport, 0, len(d.Modes))
		for _, mm := range d.Modes {
			modes = append(modes, modeReport{
				Location: mm.Location,
				Want:     fmt.Sprintf("%03o", mm.Want),
				Got:      fmt.Sprintf("%03o", mm.Got),
			})
		}
		return p.JSON(diffReport{
			Manifest: m.Path,
			Name:     m.Name,
			Version:  m.Version,
			Missing:  d.Missing,
			Unlisted: d.Unlisted,
			Modes:    modes,
		})
	}

	fmt.Fprintln(p.w, p.style("Header", p.bold(fmt.Sprintf("%s %s", m.Name, m.Version))))
	if d.Clean() {
		fmt.Fprintln(p.w, p.style("Success", "Manifest and module tree agree"))
		return nil
	}
	for _, f := range d.Missing {
		fmt.Fprintf(p.w, "%s %s\n", p.style("Error", "missing "), f)
	}
	for _, f := range d.Unlisted {
		fmt.Fprintf(p.w, "%s %s\n", p.style("Warning", "unlisted"), f)
	}
	for _, mm := range d.Modes {
		fmt.Fprintf(p.w, "%s %s (manifest %03o, tree %03o)\n", p.style("Warning", "mode    "), mm.Location, mm.Want, mm.Got)
	}
	return nil
}

// Error prints err the way the current format expects
func (p *Printer) Error(err error) {
	if p.format == FormatJSON {
		_ = p.JSON(map[string]interface{}{
			"error":   err.Error(),
			"code":    errors.GetErrorCode(err),
			"details": errors.GetErrorDetails(err),
		})
		return
	}
	fmt.Fprintln(p.w, p.style("Error", fmt.Sprintf("Error: %v", err)))
}

// JSON writes v as indented JSON
func (p *Printer) JSON(v interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
