// Package manifest reads the XML package manifest (.sopm) that sits at the
// root of a module and compares its file list with the module tree.
package manifest

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/modlink/pkg/errors"
	"github.com/beevik/etree"
)

// Extension is the manifest file extension
const Extension = ".sopm"

// File is one <File> element of the <Filelist>
type File struct {
	Location   string
	Permission os.FileMode
}

// Manifest holds the parts of a package manifest modlink cares about
type Manifest struct {
	Path       string
	Name       string
	Version    string
	Vendor     string
	Frameworks []string
	Files      []File
}

// Find returns the manifest in moduleDir. When several exist the one named
// after the directory wins, otherwise the first in name order.
func Find(moduleDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(moduleDir, "*"+Extension))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "bad manifest pattern")
	}
	if len(matches) == 0 {
		return "", errors.Newf(errors.ErrManifestNotFound, "no %s manifest in %s", Extension, moduleDir).
			WithDetail("path", moduleDir)
	}
	sort.Strings(matches)

	preferred := filepath.Base(filepath.Clean(moduleDir)) + Extension
	for _, m := range matches {
		if filepath.Base(m) == preferred {
			return m, nil
		}
	}
	return matches[0], nil
}

// Load parses the manifest at path
func Load(path string) (*Manifest, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "cannot parse %s", path).WithDetail("path", path)
	}
	return parse(doc, path)
}

// Parse reads a manifest from data. path is only used in messages.
func Parse(data []byte, path string) (*Manifest, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "cannot parse %s", path).WithDetail("path", path)
	}
	return parse(doc, path)
}

func parse(doc *etree.Document, name string) (*Manifest, error) {
	root := doc.Root()
	if root == nil {
		return nil, errors.Newf(errors.ErrManifestInvalid, "%s has no root element", name).WithDetail("path", name)
	}

	m := &Manifest{
		Path:    name,
		Name:    childText(root, "Name"),
		Version: childText(root, "Version"),
		Vendor:  childText(root, "Vendor"),
	}
	if m.Name == "" {
		return nil, errors.Newf(errors.ErrManifestInvalid, "%s has no <Name>", name).WithDetail("path", name)
	}

	for _, fw := range root.SelectElements("Framework") {
		if v := strings.TrimSpace(fw.Text()); v != "" {
			m.Frameworks = append(m.Frameworks, v)
		}
	}

	for _, el := range root.FindElements("./Filelist/File") {
		loc := strings.TrimSpace(el.SelectAttrValue("Location", ""))
		if loc == "" {
			return nil, errors.Newf(errors.ErrManifestInvalid, "%s: <File> without Location", name).WithDetail("path", name)
		}
		f := File{Location: path.Clean(loc), Permission: 0644}
		if perm := el.SelectAttrValue("Permission", ""); perm != "" {
			n, err := strconv.ParseUint(perm, 8, 32)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "%s: bad permission %q for %s", name, perm, loc).WithDetail("path", name)
			}
			f.Permission = os.FileMode(n)
		}
		m.Files = append(m.Files, f)
	}

	return m, nil
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// Diff lists the differences between a manifest and a module tree
type Diff struct {
	// Missing are listed in the manifest but absent from the tree
	Missing []string
	// Unlisted are in the tree but not in the manifest
	Unlisted []string
	// Modes are listed files whose executable bit disagrees with Permission
	Modes []ModeMismatch
}

// ModeMismatch is a listed file whose mode in the tree differs from the
// manifest Permission
type ModeMismatch struct {
	Location string      `json:"location"`
	Want     os.FileMode `json:"want"`
	Got      os.FileMode `json:"got"`
}

// Clean reports whether the manifest and the tree agree
func (d *Diff) Clean() bool {
	return len(d.Missing) == 0 && len(d.Unlisted) == 0 && len(d.Modes) == 0
}

// Compare checks the manifest file list against the relative paths of a
// module tree. The manifest itself is never reported as unlisted.
func (m *Manifest) Compare(treeFiles []string) *Diff {
	listed := make(map[string]struct{}, len(m.Files))
	for _, f := range m.Files {
		listed[f.Location] = struct{}{}
	}

	present := make(map[string]struct{}, len(treeFiles))
	diff := &Diff{}
	self := filepath.Base(m.Path)
	for _, rel := range treeFiles {
		rel = filepath.ToSlash(rel)
		present[rel] = struct{}{}
		if rel == self {
			continue
		}
		if _, ok := listed[rel]; !ok {
			diff.Unlisted = append(diff.Unlisted, rel)
		}
	}
	for _, f := range m.Files {
		if _, ok := present[f.Location]; !ok {
			diff.Missing = append(diff.Missing, f.Location)
		}
	}

	sort.Strings(diff.Missing)
	sort.Strings(diff.Unlisted)
	return diff
}

// CompareModes stats every listed file under moduleDir and returns the ones
// whose owner executable bit differs from the manifest. Files absent from the
// tree are skipped, Compare reports those.
func (m *Manifest) CompareModes(moduleDir string) ([]ModeMismatch, error) {
	var out []ModeMismatch
	for _, f := range m.Files {
		full := filepath.Join(moduleDir, filepath.FromSlash(f.Location))
		info, err := os.Stat(full)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrWalk, "cannot stat %s", f.Location).WithDetail("path", full)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		got := info.Mode().Perm()
		if got&0100 != f.Permission&0100 {
			out = append(out, ModeMismatch{Location: f.Location, Want: f.Permission, Got: got})
		}
	}
	return out, nil
}
