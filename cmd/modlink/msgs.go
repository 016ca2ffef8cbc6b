package modlink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Link a module checkout into a framework installation"
	MsgLinkShort       = "Symlink every module file into the framework"
	MsgUnlinkShort     = "Remove the symlinks created by link"
	MsgPlanShort       = "List the files link and unlink would act on"
	MsgCheckShort      = "Compare the package manifest with the module tree"
	MsgConfigShort     = "Print the effective configuration"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgManWritten = "Wrote man pages to %s\n"

	// Error messages
	MsgErrNoCommand      = "no command specified"
	MsgErrLoadConfig     = "failed to load configuration: %w"
	MsgErrLink           = "failed to link module: %w"
	MsgErrUnlink         = "failed to unlink module: %w"
	MsgErrPlan           = "failed to plan module: %w"
	MsgErrCheck          = "failed to check module: %w"
	MsgErrManifestDiffer = "manifest %s and module tree differ"
	MsgErrGenMan         = "failed to generate man pages: %w"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun         = "Preview changes without executing them"
	MsgFlagNoCheck        = "Do not verify that the destination is a framework root"
	MsgFlagFormat         = "Output format: auto, terminal, text or json"
	MsgFlagConfig         = "Path to the user configuration file"
	MsgFlagBackupSuffix   = "Suffix appended to files moved out of the way"
	MsgFlagNoCreateDirs   = "Fail instead of creating missing framework directories"
	MsgFlagRestoreBackups = "Move backups made by link back into place"
	MsgFlagDefaults       = "Print the built-in defaults only"
	MsgFlagManDir         = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimRight(msgLinkExampleRaw, "\n")

	//go:embed msgs/unlink-long.txt
	msgUnlinkLongRaw string
	MsgUnlinkLong    = strings.TrimSpace(msgUnlinkLongRaw)

	//go:embed msgs/unlink-example.txt
	msgUnlinkExampleRaw string
	MsgUnlinkExample    = strings.TrimRight(msgUnlinkExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
