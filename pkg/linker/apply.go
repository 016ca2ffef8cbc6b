package linker

import (
	"context"

	"github.com/arthur-debert/modlink/pkg/errors"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// step is a single filesystem mutation of a link or unlink run. run does the
// work through the linker's FS and returns an error carrying the final code.
type step struct {
	id  string
	run func() error
}

// applier runs steps as synthfs operations, strictly one after another,
// stopping at the first failure. Nothing is rolled back.
type applier struct {
	sfs *synthfs.SynthFS
	fs  filesystem.FullFileSystem
}

func newApplier() *applier {
	osfs := filesystem.NewOSFileSystem("/")
	return &applier{
		sfs: synthfs.New(),
		fs:  synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths(),
	}
}

// apply runs steps in order. Each step gets its own pipeline so a later
// step never starts before an earlier one has finished.
func (l *Linker) apply(ctx context.Context, steps ...step) error {
	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	for _, s := range steps {
		var stepErr error
		run := s.run
		op := l.applier.sfs.CustomOperationWithID(s.id, func(ctx context.Context, _ filesystem.FileSystem) error {
			stepErr = run()
			return stepErr
		})

		result, err := synthfs.RunWithOptions(ctx, l.applier.fs, options, op)
		l.logResult(result)
		if stepErr != nil {
			return stepErr
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "operation %s failed", s.id)
		}
	}
	return nil
}

func (l *Linker) logResult(result *synthfs.Result) {
	if result == nil {
		return
	}
	for _, op := range result.GetOperations() {
		r, ok := op.(synthfs.OperationResult)
		if !ok {
			continue
		}
		event := l.logger.Trace()
		if r.Status != synthfs.StatusSuccess {
			event = l.logger.Debug().Err(r.Error)
		}
		event.
			Str("operation", string(r.OperationID)).
			Dur("duration", r.Duration).
			Msg("Operation finished")
	}
}
