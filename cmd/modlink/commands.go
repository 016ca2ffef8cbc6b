package modlink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/modlink/internal/version"
	"github.com/arthur-debert/modlink/pkg/cobrax/topics"
	"github.com/arthur-debert/modlink/pkg/config"
	"github.com/arthur-debert/modlink/pkg/errors"
	"github.com/arthur-debert/modlink/pkg/framework"
	"github.com/arthur-debert/modlink/pkg/linker"
	"github.com/arthur-debert/modlink/pkg/logging"
	"github.com/arthur-debert/modlink/pkg/manifest"
	"github.com/arthur-debert/modlink/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity  int
		dryRun     bool
		noCheck    bool
		format     string
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:     "modlink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			if _, err := ui.ParseFormat(format); err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format").WithDetail("format", format)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&noCheck, "no-check", false, MsgFlagNoCheck)
	rootCmd.PersistentFlags().StringVar(&format, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", MsgFlagConfig)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newUnlinkCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	// Initialize topic-based help system from the embedded topics
	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if _, err := topics.Initialize(rootCmd, topicsFS(), opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// globals are the persistent flags shared by every command
type globals struct {
	dryRun     bool
	noCheck    bool
	format     ui.Format
	configPath string
}

func getGlobals(cmd *cobra.Command) globals {
	flags := cmd.Root().PersistentFlags()
	dryRun, _ := flags.GetBool("dry-run")
	noCheck, _ := flags.GetBool("no-check")
	formatName, _ := flags.GetString("format")
	configPath, _ := flags.GetString("config")

	// Validated in PersistentPreRunE
	format, _ := ui.ParseFormat(formatName)

	return globals{
		dryRun:     dryRun,
		noCheck:    noCheck,
		format:     format,
		configPath: configPath,
	}
}

// ReportError prints err on the command's error stream in the selected format
func ReportError(cmd *cobra.Command, err error) {
	ui.NewPrinter(cmd.ErrOrStderr(), getGlobals(cmd).format, false).Error(err)
}

// loadConfig merges the configuration for moduleDir with command-line
// overrides. overrides may be nil.
func loadConfig(cmd *cobra.Command, moduleDir string, overrides map[string]interface{}) (*config.Config, error) {
	g := getGlobals(cmd)
	if overrides == nil {
		overrides = make(map[string]interface{})
	}
	if g.noCheck {
		overrides["framework.check"] = false
	}

	cfg, err := config.Load(config.LoadOptions{
		ModuleDir:      moduleDir,
		UserConfigPath: g.configPath,
		Overrides:      overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

func newLinker(cfg *config.Config, dryRun bool, printer *ui.Printer) *linker.Linker {
	opts := linker.Options{
		Ignore:         cfg.Matcher(),
		BackupSuffix:   cfg.Link.BackupSuffix,
		CreateDirs:     cfg.Link.CreateDirs,
		RestoreBackups: cfg.Unlink.RestoreBackups,
		DryRun:         dryRun,
	}
	if printer != nil {
		opts.Notify = printer.Outcome
	}
	return linker.New(opts)
}

// checkFramework refuses destinations that do not look like a framework
// root. A missing destination is left to the linker, which reports it with
// its own error code.
func checkFramework(cfg *config.Config, dir string) error {
	if !cfg.Framework.Check {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}
	return framework.Require(dir, cfg.Framework.Markers)
}

func newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "link <module-dir> <framework-dir>",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			moduleDir, frameworkDir := args[0], args[1]
			g := getGlobals(cmd)

			overrides := make(map[string]interface{})
			if cmd.Flags().Changed("backup-suffix") {
				suffix, _ := cmd.Flags().GetString("backup-suffix")
				overrides["link.backup_suffix"] = suffix
			}
			if noCreate, _ := cmd.Flags().GetBool("no-create-dirs"); noCreate {
				overrides["link.create_dirs"] = false
			}

			cfg, err := loadConfig(cmd, moduleDir, overrides)
			if err != nil {
				return err
			}
			if err := checkFramework(cfg, frameworkDir); err != nil {
				return fmt.Errorf(MsgErrLink, err)
			}

			log.Info().
				Str("module", moduleDir).
				Str("framework", frameworkDir).
				Bool("dry_run", g.dryRun).
				Msg("Linking module")

			printer := ui.NewPrinter(cmd.OutOrStdout(), g.format, g.dryRun)
			result, err := newLinker(cfg, g.dryRun, printer).Link(moduleDir, frameworkDir)
			if err != nil {
				return fmt.Errorf(MsgErrLink, err)
			}
			return printer.LinkSummary(result)
		},
	}

	cmd.Flags().String("backup-suffix", linker.DefaultBackupSuffix, MsgFlagBackupSuffix)
	cmd.Flags().Bool("no-create-dirs", false, MsgFlagNoCreateDirs)

	return cmd
}

func newUnlinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unlink <module-dir> <framework-dir>",
		Short:   MsgUnlinkShort,
		Long:    MsgUnlinkLong,
		Example: MsgUnlinkExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			moduleDir, frameworkDir := args[0], args[1]
			g := getGlobals(cmd)

			overrides := make(map[string]interface{})
			if restore, _ := cmd.Flags().GetBool("restore-backups"); restore {
				overrides["unlink.restore_backups"] = true
			}

			cfg, err := loadConfig(cmd, moduleDir, overrides)
			if err != nil {
				return err
			}

			log.Info().
				Str("module", moduleDir).
				Str("framework", frameworkDir).
				Bool("dry_run", g.dryRun).
				Msg("Unlinking module")

			printer := ui.NewPrinter(cmd.OutOrStdout(), g.format, g.dryRun)
			result, err := newLinker(cfg, g.dryRun, printer).Unlink(moduleDir, frameworkDir)
			if err != nil {
				return fmt.Errorf(MsgErrUnlink, err)
			}
			return printer.UnlinkSummary(result)
		},
	}

	cmd.Flags().Bool("restore-backups", false, MsgFlagRestoreBackups)

	return cmd
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "plan <module-dir> <framework-dir>",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := getGlobals(cmd)
			cfg, err := loadConfig(cmd, args[0], nil)
			if err != nil {
				return err
			}

			plan, err := newLinker(cfg, true, nil).Plan(args[0], args[1])
			if err != nil {
				return fmt.Errorf(MsgErrPlan, err)
			}
			return ui.NewPrinter(cmd.OutOrStdout(), g.format, false).Plan(plan)
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check <module-dir>",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moduleDir := args[0]
			g := getGlobals(cmd)

			cfg, err := loadConfig(cmd, moduleDir, nil)
			if err != nil {
				return err
			}

			manifestPath, err := manifest.Find(moduleDir)
			if err != nil {
				return fmt.Errorf(MsgErrCheck, err)
			}
			m, err := manifest.Load(manifestPath)
			if err != nil {
				return fmt.Errorf(MsgErrCheck, err)
			}
			plan, err := newLinker(cfg, true, nil).Files(moduleDir)
			if err != nil {
				return fmt.Errorf(MsgErrCheck, err)
			}

			diff := m.Compare(plan.Rels())
			if diff.Modes, err = m.CompareModes(plan.SourceDir); err != nil {
				return fmt.Errorf(MsgErrCheck, err)
			}
			if err := ui.NewPrinter(cmd.OutOrStdout(), g.format, false).Diff(m, diff); err != nil {
				return err
			}
			if !diff.Clean() {
				return errors.Newf(errors.ErrManifestMismatch, MsgErrManifestDiffer, filepath.Base(manifestPath)).
					WithDetail("missing", len(diff.Missing)).
					WithDetail("unlisted", len(diff.Unlisted)).
					WithDetail("modes", len(diff.Modes))
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config [module-dir]",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults, _ := cmd.Flags().GetBool("defaults"); defaults {
				_, err := fmt.Fprint(out, config.DefaultsContent())
				return err
			}

			moduleDir := ""
			if len(args) == 1 {
				moduleDir = args[0]
			}
			cfg, err := loadConfig(cmd, moduleDir, nil)
			if err != nil {
				return err
			}

			data, err := cfg.TOML()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().Bool("defaults", false, MsgFlagDefaults)

	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// ManHeader is the header used for generated man pages
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "MODLINK",
		Section: "1",
		Source:  "modlink " + version.Version,
		Manual:  "modlink manual",
	}
}

func newManCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir).WithDetail("path", dir)
			}
			if err := doc.GenManTree(cmd.Root(), ManHeader(), dir); err != nil {
				return fmt.Errorf(MsgErrGenMan, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return nil
		},
	}

	cmd.Flags().String("dir", ".", MsgFlagManDir)

	return cmd
}
