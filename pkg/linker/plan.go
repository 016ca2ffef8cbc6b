package linker

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/modlink/pkg/errors"
	"github.com/arthur-debert/modlink/pkg/paths"
)

// Plan is the list of entries a Link or Unlink run works through
type Plan struct {
	SourceDir string  `json:"source_dir"`
	DestDir   string  `json:"dest_dir"`
	Entries   []Entry `json:"entries"`
}

// Plan validates both directories and walks sourceDir. It never modifies
// the filesystem.
func (l *Linker) Plan(sourceDir, destDir string) (*Plan, error) {
	src, err := l.checkDir(sourceDir, errors.ErrSourceMissing, "module directory")
	if err != nil {
		return nil, err
	}
	dst, err := l.checkDir(destDir, errors.ErrDestMissing, "framework directory")
	if err != nil {
		return nil, err
	}

	if err := checkDisjoint(src, dst); err != nil {
		return nil, err
	}

	plan := &Plan{SourceDir: src, DestDir: dst}
	if err := l.walk(plan, ""); err != nil {
		return nil, err
	}

	l.logger.Debug().
		Str("source", src).
		Str("dest", dst).
		Int("entries", len(plan.Entries)).
		Msg("Planned module tree")

	return plan, nil
}

// Files walks sourceDir alone. The returned plan has no destination and
// its entries carry only Rel and Source.
func (l *Linker) Files(sourceDir string) (*Plan, error) {
	src, err := l.checkDir(sourceDir, errors.ErrSourceMissing, "module directory")
	if err != nil {
		return nil, err
	}

	plan := &Plan{SourceDir: src}
	if err := l.walk(plan, ""); err != nil {
		return nil, err
	}
	return plan, nil
}

// Rels returns the relative paths of the entries, slash separated
func (p *Plan) Rels() []string {
	rels := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		rels[i] = filepath.ToSlash(e.Rel)
	}
	return rels
}

// checkDisjoint rejects a module and framework root that are the same
// directory or nested in one another. Linking such a pair would replace module
// files with links pointing at themselves.
func checkDisjoint(src, dst string) error {
	realSrc, realDst := resolve(src), resolve(dst)
	if paths.IsWithin(realSrc, realDst) || paths.IsWithin(realDst, realSrc) {
		return errors.Newf(errors.ErrInvalidInput, "module directory %s and framework directory %s overlap", src, dst).
			WithDetail("source", src).
			WithDetail("dest", dst)
	}
	return nil
}

func resolve(path string) string {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		return real
	}
	return path
}

// checkDir normalizes path and makes sure it is an existing directory
func (l *Linker) checkDir(path string, missing errors.ErrorCode, what string) (string, error) {
	abs, err := paths.Normalize(path)
	if err != nil {
		return "", err
	}

	info, err := l.fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(missing, "%s %s does not exist", what, abs).WithDetail("path", abs)
		}
		return "", errors.Wrapf(err, missing, "cannot access %s %s", what, abs).WithDetail("path", abs)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrNotDirectory, "%s %s is not a directory", what, abs).WithDetail("path", abs)
	}
	return abs, nil
}

// walk appends the files below plan.SourceDir/rel, depth-first
func (l *Linker) walk(plan *Plan, rel string) error {
	dir := filepath.Join(plan.SourceDir, rel)
	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrWalk, "cannot read %s", dir).WithDetail("path", dir)
	}

	for _, de := range entries {
		childRel := filepath.Join(rel, de.Name())
		if l.opts.Ignore.Match(childRel, de.IsDir()) {
			l.logger.Trace().Str("rel", childRel).Msg("Skipping version control metadata")
			continue
		}
		if de.IsDir() {
			if err := l.walk(plan, childRel); err != nil {
				return err
			}
			continue
		}
		entry := Entry{
			Rel:    childRel,
			Source: filepath.Join(plan.SourceDir, childRel),
		}
		if plan.DestDir != "" {
			entry.Dest = filepath.Join(plan.DestDir, childRel)
		}
		plan.Entries = append(plan.Entries, entry)
	}
	return nil
}
