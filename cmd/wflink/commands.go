package wflink

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/wflink/internal/version"
	"github.com/arthur-debert/wflink/pkg/commands"
	"github.com/arthur-debert/wflink/pkg/config"
	"github.com/arthur-debert/wflink/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newLinkCmd(opts *globalOptions, rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "link",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, opts, rt)
		},
	}
}

func runLink(cmd *cobra.Command, opts *globalOptions, rt *runtime) error {
	result, err := commands.LinkAssets(cmd.Context(), commands.LinkAssetsOptions{
		RepoRoot:     opts.repo,
		WorkflowsDir: opts.workflowsDir,
		DryRun:       opts.dryRun,
		Config:       rt.cfg,
		Logger:       rt.logger,
	})
	if err != nil {
		// Assets linked before the failure stay linked
		if result != nil && len(result.Linked) > 0 {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, formatBold(MsgLinkedPartial), len(result.Linked), result.WorkflowPath)
			printLinked(out, result.Linked)
		}
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case len(result.Linked) == 0:
		fmt.Fprintf(out, MsgNothingToLink, result.WorkflowPath)
	case result.DryRun:
		fmt.Fprintf(out, formatBold(MsgWouldLinkHeader), len(result.Linked), result.WorkflowPath)
	default:
		fmt.Fprintf(out, formatBold(MsgLinkedHeader), len(result.Linked), result.WorkflowPath)
	}
	printLinked(out, result.Linked)
	if result.DryRun {
		fmt.Fprintln(out, MsgDryRunNotice)
	}
	return nil
}

func printLinked(out io.Writer, linked []types.LinkedAsset) {
	for _, l := range linked {
		fmt.Fprintf(out, MsgLinkedItem, l.OriginalPath, l.RepoPath)
	}
}

func newStatusCmd(opts *globalOptions, rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Status(cmd.Context(), commands.StatusOptions{
				RepoRoot:     opts.repo,
				WorkflowsDir: opts.workflowsDir,
				Config:       rt.cfg,
				Logger:       rt.logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgStatusBundle, result.BundleID)
			fmt.Fprintf(out, MsgStatusRepo, result.RepoRoot)
			fmt.Fprintf(out, MsgStatusWorkflow, result.WorkflowPath)

			fmt.Fprintf(out, formatBold(MsgPendingHeader), len(result.Pending))
			for _, path := range result.Pending {
				fmt.Fprintf(out, MsgListItem, path)
			}

			fmt.Fprintf(out, formatBold(MsgManifestHeader), result.BuildFile, len(result.ManifestEntries))
			for _, entry := range result.ManifestEntries {
				fmt.Fprintf(out, MsgListItem, entry)
			}
			return nil
		},
	}
}

func newLocateCmd(opts *globalOptions, rt *runtime) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "locate [bundle-id]",
		Short: MsgLocateShort,
		Long:  MsgLocateLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var bundleID string
			if len(args) == 1 {
				bundleID = args[0]
			}

			result, err := commands.Locate(cmd.Context(), commands.LocateOptions{
				BundleID:     bundleID,
				RepoRoot:     opts.repo,
				WorkflowsDir: opts.workflowsDir,
				All:          all,
				Config:       rt.cfg,
				Logger:       rt.logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.WorkflowPath)
			if all {
				fmt.Fprintf(out, formatBold(MsgInstalledHeader), result.InstallRoot)
				for _, w := range result.Installed {
					fmt.Fprintf(out, MsgInstalledItem, w.BundleID, w.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)
	return cmd
}

func newConfigCmd(opts *globalOptions, rt *runtime) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
				return err
			}

			data, err := config.Marshal(rt.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			fmt.Fprintf(out, MsgVersionCommit, version.Commit)
			fmt.Fprintf(out, MsgVersionDate, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(wflink completion bash)

Zsh:
  $ wflink completion zsh > "${fpath[1]}/_wflink"

Fish:
  $ wflink completion fish | source

PowerShell:
  PS> wflink completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "man [dir]",
		Short: MsgManShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}

			header := &doc.GenManHeader{
				Title:   "WFLINK",
				Section: "1",
				Source:  version.Short(),
				Manual:  "wflink manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManPagesWritten, dir)
			return nil
		},
	}
}
