package wflink

import (
	"os"

	"github.com/arthur-debert/wflink/internal/version"
	"github.com/arthur-debert/wflink/pkg/config"
	"github.com/arthur-debert/wflink/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity    int
	quiet        bool
	dryRun       bool
	repo         string
	workflowsDir string
	configFile   string
	prefsFile    string
}

// runtime is built once in PersistentPreRunE and read by the commands
type runtime struct {
	cfg         *config.Config
	logger      zerolog.Logger
	closeLogger func() error
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}
	rt := &runtime{logger: zerolog.Nop(), closeLogger: func() error { return nil }}

	rootCmd := &cobra.Command{
		Use:     "wflink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.closeLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, opts, rt)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, MsgFlagQuiet)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVar(&opts.repo, "repo", "", MsgFlagRepo)
	flags.StringVar(&opts.workflowsDir, "workflows-dir", "", MsgFlagWorkflowsDir)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&opts.prefsFile, "prefs", "", MsgFlagPrefs)
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newLinkCmd(opts, rt))
	rootCmd.AddCommand(newStatusCmd(opts, rt))
	rootCmd.AddCommand(newLocateCmd(opts, rt))
	rootCmd.AddCommand(newConfigCmd(opts, rt))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// setup loads configuration and builds the one logger for this process
func (rt *runtime) setup(cmd *cobra.Command, opts *globalOptions) error {
	overrides := map[string]interface{}{}
	if opts.prefsFile != "" {
		overrides["prefs_file"] = opts.prefsFile
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: opts.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}
	rt.cfg = cfg

	logOpts := logging.Options{
		Verbosity: 1 + opts.verbosity,
		Out:       cmd.ErrOrStderr(),
		NoColor:   !isTerminal(os.Stderr),
	}
	if opts.quiet {
		logOpts.Verbosity = 0
	}
	if cfg.LogFile {
		logOpts.LogFile = logging.DefaultLogFilePath()
	}

	rt.logger, rt.closeLogger = logging.New(logOpts)
	rt.logger.Debug().Str("command", cmd.Name()).Msg("Command started")
	return nil
}
