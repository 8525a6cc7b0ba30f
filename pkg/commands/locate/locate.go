// Package locate finds the installed workflow for a bundle id.
package locate

import (
	"context"

	"github.com/arthur-debert/wflink/pkg/commands/internal"
	"github.com/arthur-debert/wflink/pkg/config"
	"github.com/arthur-debert/wflink/pkg/filesystem"
	"github.com/arthur-debert/wflink/pkg/logging"
	"github.com/arthur-debert/wflink/pkg/types"
	"github.com/arthur-debert/wflink/pkg/workflow"
	"github.com/rs/zerolog"
)

// LocateOptions defines the options for the Locate command
type LocateOptions struct {
	// BundleID to look up. Empty means the bundle id of the repository.
	BundleID     string
	RepoRoot     string
	WorkDir      string
	WorkflowsDir string
	// All also lists every installed workflow
	All        bool
	Config     *config.Config
	FileSystem filesystem.FS
	Logger     zerolog.Logger
}

// Locate returns the install path of the workflow with the requested
// bundle id
func Locate(ctx context.Context, opts LocateOptions) (*types.LocateResult, error) {
	logger := logging.WithComponent(opts.Logger, "commands.locate")
	logging.LogCommand(logger, "locate", []string{opts.BundleID})

	resolver := internal.NewResolver(opts.Config, opts.FileSystem, logger)
	ws, err := resolver.Resolve(ctx, internal.ResolveOptions{
		RepoRoot:     opts.RepoRoot,
		WorkDir:      opts.WorkDir,
		WorkflowsDir: opts.WorkflowsDir,
		BundleID:     opts.BundleID,
	})
	if err != nil {
		return nil, err
	}

	result := &types.LocateResult{Workspace: *ws}
	if opts.All {
		installed, err := workflow.NewLocator(ws.InstallRoot, resolver.FS, logger).List()
		if err != nil {
			return nil, err
		}
		result.Installed = installed
	}
	return result, nil
}
