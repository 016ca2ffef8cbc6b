package linker

import (
	"github.com/arthur-debert/modlink/pkg/filesystem"
	"github.com/arthur-debert/modlink/pkg/ignore"
	"github.com/arthur-debert/modlink/pkg/logging"
	"github.com/arthur-debert/modlink/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultBackupSuffix is appended to a colliding file when it is moved aside
const DefaultBackupSuffix = ".old"

// Action tells what happened, or would happen in a dry run, to one entry
type Action string

const (
	ActionLink    Action = "link"    // new link created
	ActionReplace Action = "replace" // existing symlink replaced
	ActionBackup  Action = "backup"  // existing file moved aside, then linked
	ActionUnlink  Action = "unlink"  // symlink removed
	ActionRestore Action = "restore" // symlink removed, backup moved back
	ActionSkip    Action = "skip"    // nothing to do for this entry
)

// Entry is one file of the module and the place it is exposed at
type Entry struct {
	// Rel is the path relative to both the module root and the framework root
	Rel string `json:"rel"`
	// Source is the absolute path of the module file, used as link target
	Source string `json:"source"`
	// Dest is the absolute path of the link inside the framework
	Dest string `json:"dest"`
}

// Outcome records the action taken for an entry
type Outcome struct {
	Entry
	Action Action `json:"action"`
	// Backup is set for ActionBackup and ActionRestore
	Backup string `json:"backup,omitempty"`
}

// Result is returned by Link and Unlink
type Result struct {
	Plan     *Plan     `json:"plan"`
	Outcomes []Outcome `json:"outcomes"`
	DryRun   bool      `json:"dry_run"`
}

// Count returns how many outcomes carry the given action
func (r *Result) Count(action Action) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Action == action {
			n++
		}
	}
	return n
}

// Options configures a Linker
type Options struct {
	// FS defaults to the OS filesystem
	FS types.FS
	// Ignore defaults to ignore.Default()
	Ignore *ignore.Matcher
	// BackupSuffix defaults to DefaultBackupSuffix
	BackupSuffix string
	// CreateDirs creates missing framework directories instead of failing
	CreateDirs bool
	// RestoreBackups moves <dest><suffix> back in place on Unlink
	RestoreBackups bool
	// DryRun reports the actions without touching the filesystem
	DryRun bool
	// Notify is called for every outcome as soon as it happens
	Notify func(Outcome)
}

// Linker links and unlinks module trees
type Linker struct {
	fs      types.FS
	opts    Options
	logger  zerolog.Logger
	applier *applier
}

// New creates a Linker, filling in defaults for unset options
func New(opts Options) *Linker {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Ignore == nil {
		opts.Ignore = ignore.Default()
	}
	if opts.BackupSuffix == "" {
		opts.BackupSuffix = DefaultBackupSuffix
	}
	return &Linker{
		fs:      opts.FS,
		opts:    opts,
		logger:  logging.GetLogger("linker"),
		applier: newApplier(),
	}
}

// Link links sourceDir into destDir with default options and creating
// missing directories.
func Link(sourceDir, destDir string) error {
	_, err := New(Options{CreateDirs: true}).Link(sourceDir, destDir)
	return err
}

// Unlink removes the links Link created for sourceDir in destDir, using
// default options.
func Unlink(sourceDir, destDir string) error {
	_, err := New(Options{}).Unlink(sourceDir, destDir)
	return err
}

func (l *Linker) notify(o Outcome) {
	if l.opts.Notify != nil {
		l.opts.Notify(o)
	}
}
