package linker

import (
	"context"
	"os"

	"github.com/arthur-debert/modlink/pkg/errors"
	"github.com/arthur-debert/modlink/pkg/logging"
)

// Unlink plans sourceDir and removes every destination that is a symlink.
// Anything else found at a destination is left in place.
func (l *Linker) Unlink(sourceDir, destDir string) (*Result, error) {
	done := logging.LogOperationStart(l.logger, "unlink")
	defer done()

	plan, err := l.Plan(sourceDir, destDir)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	result := &Result{Plan: plan, DryRun: l.opts.DryRun}
	for _, entry := range plan.Entries {
		outcome, err := l.unlinkEntry(ctx, plan, entry)
		if err != nil {
			return result, err
		}
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Action != ActionSkip {
			l.notify(outcome)
		}
	}

	l.logger.Info().
		Str("source", plan.SourceDir).
		Str("dest", plan.DestDir).
		Int("removed", result.Count(ActionUnlink)+result.Count(ActionRestore)).
		Int("restored", result.Count(ActionRestore)).
		Bool("dryRun", l.opts.DryRun).
		Msg("Module unlinked")

	return result, nil
}

func (l *Linker) unlinkEntry(ctx context.Context, plan *Plan, entry Entry) (Outcome, error) {
	outcome := Outcome{Entry: entry, Action: ActionSkip}

	if err := l.mustExist(plan.DestDir, "framework directory"); err != nil {
		return outcome, err
	}

	info, err := l.fs.Lstat(entry.Dest)
	switch {
	case os.IsNotExist(err):
		// nothing linked here, a backup may still be waiting
	case err != nil:
		return outcome, errors.Wrapf(err, errors.ErrSymlinkRemove, "cannot inspect %s", entry.Rel).WithDetail("path", entry.Dest)
	case info.Mode()&os.ModeSymlink == 0:
		l.logger.Debug().Str("path", entry.Dest).Msg("Not a symlink, leaving in place")
		return outcome, nil
	default:
		outcome.Action = ActionUnlink
		if !l.opts.DryRun {
			if err := l.apply(ctx, l.removeLinkStep(entry, "unlink", "cannot remove link %s")); err != nil {
				return outcome, err
			}
			l.logger.Info().Str("dest", entry.Dest).Msg("Unlinked")
		}
	}

	if l.opts.RestoreBackups {
		restored, err := l.restore(ctx, entry)
		if err != nil {
			return outcome, err
		}
		if restored != "" {
			outcome.Action = ActionRestore
			outcome.Backup = restored
		}
	}

	return outcome, nil
}

// restore moves <dest><suffix> back to dest and returns the backup path, or
// "" when there was no regular-file backup.
func (l *Linker) restore(ctx context.Context, entry Entry) (string, error) {
	backupPath := entry.Dest + l.opts.BackupSuffix
	info, err := l.fs.Lstat(backupPath)
	if err != nil || info.Mode()&os.ModeSymlink != 0 || info.IsDir() {
		return "", nil
	}
	if l.opts.DryRun {
		return backupPath, nil
	}

	restore := step{
		id: "restore:" + entry.Rel,
		run: func() error {
			if err := l.fs.Rename(backupPath, entry.Dest); err != nil {
				return errors.Wrapf(err, errors.ErrRestoreFailed, "cannot restore %s", backupPath).
					WithDetail("path", entry.Dest).
					WithDetail("backup", backupPath)
			}
			return nil
		},
	}
	if err := l.apply(ctx, restore); err != nil {
		return "", err
	}
	l.logger.Info().Str("path", entry.Dest).Str("backup", backupPath).Msg("Restored backup")
	return backupPath, nil
}
