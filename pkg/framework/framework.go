// Package framework recognizes the root directory of a framework
// installation by the marker paths it is expected to contain.
package framework

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modlink/pkg/errors"
	"github.com/arthur-debert/modlink/pkg/paths"
)

// DefaultMarkers lists paths relative to the framework root. Each element
// is a group of alternatives separated by "|"; every group must match.
var DefaultMarkers = []string{
	"Kernel/Config.pm|Kernel/Config.pm.dist",
	"Kernel/System/",
}

// Detection is the result of examining a directory
type Detection struct {
	Root    string
	Found   []string
	Missing []string
}

// IsFramework reports whether every marker group matched
func (d *Detection) IsFramework() bool {
	return len(d.Missing) == 0
}

// Detect checks dir against markers. A marker ending in "/" must be a
// directory, any other marker must be a file.
func Detect(dir string, markers []string) (*Detection, error) {
	root, err := paths.Normalize(dir)
	if err != nil {
		return nil, err
	}
	if len(markers) == 0 {
		markers = DefaultMarkers
	}

	d := &Detection{Root: root}
	for _, group := range markers {
		if hit := matchGroup(root, group); hit != "" {
			d.Found = append(d.Found, hit)
		} else {
			d.Missing = append(d.Missing, group)
		}
	}
	return d, nil
}

// Require is Detect that fails with NOT_FRAMEWORK when a marker is missing
func Require(dir string, markers []string) error {
	d, err := Detect(dir, markers)
	if err != nil {
		return err
	}
	if !d.IsFramework() {
		return errors.Newf(errors.ErrNotFramework, "%s does not look like a framework root (missing %s)",
			d.Root, strings.Join(d.Missing, ", ")).
			WithDetail("path", d.Root).
			WithDetail("missing", d.Missing)
	}
	return nil
}

func matchGroup(root, group string) string {
	for _, alt := range strings.Split(group, "|") {
		alt = strings.TrimSpace(alt)
		if alt == "" {
			continue
		}
		wantDir := strings.HasSuffix(alt, "/")
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(alt, "/"))))
		if err != nil {
			continue
		}
		if info.IsDir() == wantDir {
			return alt
		}
	}
	return ""
}
