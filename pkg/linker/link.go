package linker

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/modlink/pkg/errors"
	"github.com/arthur-debert/modlink/pkg/logging"
)

// Link plans sourceDir and applies the plan inside destDir. See the package
// documentation for the collision rules.
func (l *Linker) Link(sourceDir, destDir string) (*Result, error) {
	done := logging.LogOperationStart(l.logger, "link")
	defer done()

	plan, err := l.Plan(sourceDir, destDir)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	result := &Result{Plan: plan, DryRun: l.opts.DryRun}
	for _, entry := range plan.Entries {
		outcome, err := l.linkEntry(ctx, plan, entry)
		if err != nil {
			return result, err
		}
		result.Outcomes = append(result.Outcomes, outcome)
		l.notify(outcome)
	}

	l.logger.Info().
		Str("source", plan.SourceDir).
		Str("dest", plan.DestDir).
		Int("linked", len(result.Outcomes)).
		Int("backups", result.Count(ActionBackup)).
		Bool("dryRun", l.opts.DryRun).
		Msg("Module linked")

	return result, nil
}

// linkEntry inspects the destination of entry, decides the action and, unless
// this is a dry run, applies the steps that action needs.
func (l *Linker) linkEntry(ctx context.Context, plan *Plan, entry Entry) (Outcome, error) {
	outcome := Outcome{Entry: entry, Action: ActionLink}

	if err := l.mustExist(plan.DestDir, "framework directory"); err != nil {
		return outcome, err
	}
	if err := l.mustExist(entry.Source, "module file"); err != nil {
		return outcome, err
	}

	var steps []step
	mkdir, err := l.parentStep(entry)
	if err != nil {
		return outcome, err
	}
	if mkdir != nil {
		steps = append(steps, *mkdir)
	}

	info, err := l.fs.Lstat(entry.Dest)
	switch {
	case os.IsNotExist(err):
		// free slot
	case err != nil:
		return outcome, errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot inspect %s", entry.Rel).WithDetail("path", entry.Dest)
	case info.Mode()&os.ModeSymlink != 0:
		outcome.Action = ActionReplace
		steps = append(steps, l.removeLinkStep(entry, "remove-link", "cannot remove old link %s"))
	case info.IsDir():
		return outcome, errors.Newf(errors.ErrFileExists, "%s already exists as a directory", entry.Dest).WithDetail("path", entry.Dest)
	default:
		outcome.Action = ActionBackup
		outcome.Backup = entry.Dest + l.opts.BackupSuffix
		if _, err := l.fs.Lstat(outcome.Backup); err == nil {
			return outcome, errors.Newf(errors.ErrBackupFailed, "cannot back up %s: %s already exists", entry.Rel, outcome.Backup).
				WithDetail("path", entry.Dest).
				WithDetail("backup", outcome.Backup)
		}
		steps = append(steps, l.backupStep(entry, outcome.Backup))
	}

	if l.opts.DryRun {
		return outcome, nil
	}

	steps = append(steps, l.symlinkStep(entry))
	if err := l.apply(ctx, steps...); err != nil {
		return outcome, err
	}

	l.logger.Info().
		Str("source", entry.Source).
		Str("dest", entry.Dest).
		Str("action", string(outcome.Action)).
		Msg("Linked")

	return outcome, nil
}

func (l *Linker) symlinkStep(entry Entry) step {
	return step{
		id: "symlink:" + entry.Rel,
		run: func() error {
			if err := l.fs.Symlink(entry.Source, entry.Dest); err != nil {
				if os.IsExist(err) {
					return errors.Wrapf(err, errors.ErrFileExists, "%s already exists", entry.Dest).WithDetail("path", entry.Dest)
				}
				return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", entry.Rel).WithDetail("path", entry.Dest)
			}
			return nil
		},
	}
}

// removeLinkStep removes the symlink at entry.Dest. msg is formatted with
// entry.Rel when removal fails.
func (l *Linker) removeLinkStep(entry Entry, id, msg string) step {
	return step{
		id: id + ":" + entry.Rel,
		run: func() error {
			if err := l.fs.Remove(entry.Dest); err != nil {
				return errors.Wrapf(err, errors.ErrSymlinkRemove, msg, entry.Rel).WithDetail("path", entry.Dest)
			}
			return nil
		},
	}
}

// backupStep moves a colliding file aside. The caller has made sure no
// backup exists yet, so an old backup is never overwritten.
func (l *Linker) backupStep(entry Entry, backupPath string) step {
	return step{
		id: "backup:" + entry.Rel,
		run: func() error {
			if err := l.fs.Rename(entry.Dest, backupPath); err != nil {
				return errors.Wrapf(err, errors.ErrBackupFailed, "cannot back up %s", entry.Rel).
					WithDetail("path", entry.Dest).
					WithDetail("backup", backupPath)
			}

			// The slot must be free now.
			if _, err := l.fs.Lstat(entry.Dest); err == nil {
				return errors.Newf(errors.ErrFileExists, "%s still exists after backup", entry.Dest).WithDetail("path", entry.Dest)
			}

			l.logger.Info().
				Str("path", entry.Dest).
				Str("backup", backupPath).
				Msg("Backed up existing file")
			return nil
		},
	}
}

// parentStep checks the directory the link goes into. It returns a step
// creating it when it is missing and directory creation is enabled.
func (l *Linker) parentStep(entry Entry) (*step, error) {
	parent := filepath.Dir(entry.Dest)
	info, err := l.fs.Stat(parent)
	if err == nil {
		if !info.IsDir() {
			return nil, errors.Newf(errors.ErrNotDirectory, "%s is not a directory", parent).WithDetail("path", parent)
		}
		return nil, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot access %s", parent).WithDetail("path", parent)
	}
	if !l.opts.CreateDirs {
		return nil, errors.Newf(errors.ErrDestMissing, "framework directory %s does not exist", parent).WithDetail("path", parent)
	}

	return &step{
		id: "mkdir:" + filepath.Dir(entry.Rel),
		run: func() error {
			if err := l.fs.MkdirAll(parent, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", parent).WithDetail("path", parent)
			}
			l.logger.Debug().Str("path", parent).Msg("Created framework directory")
			return nil
		},
	}, nil
}

// mustExist fails with VANISHED when path is gone
func (l *Linker) mustExist(path, what string) error {
	if _, err := l.fs.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrVanished, "%s %s disappeared", what, path).WithDetail("path", path)
		}
		return errors.Wrapf(err, errors.ErrVanished, "cannot access %s %s", what, path).WithDetail("path", path)
	}
	return nil
}
