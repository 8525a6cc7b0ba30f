// Package link moves the unlinked assets of an installed workflow into the
// repository that tracks it.
package link

import (
	"context"

	"github.com/arthur-debert/wflink/pkg/commands/internal"
	"github.com/arthur-debert/wflink/pkg/config"
	"github.com/arthur-debert/wflink/pkg/filesystem"
	"github.com/arthur-debert/wflink/pkg/linker"
	"github.com/arthur-debert/wflink/pkg/logging"
	"github.com/arthur-debert/wflink/pkg/types"
	"github.com/arthur-debert/wflink/pkg/workflow"
	"github.com/rs/zerolog"
)

// LinkAssetsOptions defines the options for the LinkAssets command
type LinkAssetsOptions struct {
	// RepoRoot is the repository to link into. Empty means the git
	// repository containing WorkDir.
	RepoRoot string
	WorkDir  string
	// WorkflowsDir overrides the install root from Alfred's preferences
	WorkflowsDir string
	// DryRun checks each asset and logs what would happen without touching
	// any file
	DryRun     bool
	Config     *config.Config
	FileSystem filesystem.FS // Allow injecting a filesystem for testing
	Logger     zerolog.Logger
}

// LinkAssets resolves the repository and its installed workflow, then
// links every unlinked asset one at a time in scan order. The first failed
// asset aborts the run; assets linked before it stay linked.
func LinkAssets(ctx context.Context, opts LinkAssetsOptions) (*types.LinkResult, error) {
	logger := logging.WithComponent(opts.Logger, "commands.link")
	logging.LogCommand(logger, "link", nil)
	done := logging.LogOperationStart(logger, "link")
	defer done()

	resolver := internal.NewResolver(opts.Config, opts.FileSystem, logger)
	ws, err := resolver.Resolve(ctx, internal.ResolveOptions{
		RepoRoot:     opts.RepoRoot,
		WorkDir:      opts.WorkDir,
		WorkflowsDir: opts.WorkflowsDir,
	})
	if err != nil {
		return nil, err
	}

	result := &types.LinkResult{
		Workspace: *ws,
		Linked:    []types.LinkedAsset{},
		DryRun:    opts.DryRun,
	}

	logger.Info().Str("workflow", ws.WorkflowPath).Msgf("Looking for files in Workflow path %s", ws.WorkflowPath)

	scanner := workflow.NewScanner(resolver.FS, resolver.Config.AssetExt, logger)
	assets, err := scanner.ScanAssets(ws.WorkflowPath)
	if err != nil {
		return nil, err
	}

	l := linker.New(linker.Options{
		RepoRoot:   ws.RepoRoot,
		BuildFile:  resolver.Config.BuildFile,
		Marker:     resolver.Config.ManifestMarker,
		DryRun:     opts.DryRun,
		FileSystem: resolver.FS,
	}, logger)

	for asset := range assets {
		logger.Info().Str("asset", asset).Msgf("Linking file %s", asset)
		linked, err := l.Link(asset)
		if err != nil {
			logLink(logger, result, err)
			return result, err
		}
		result.Linked = append(result.Linked, *linked)
	}

	logLink(logger, result, nil)
	return result, nil
}

func logLink(logger zerolog.Logger, result *types.LinkResult, err error) {
	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err)
	}

	event.
		Str("command", "link").
		Str("bundle_id", result.BundleID).
		Str("repo", result.RepoRoot).
		Int("linked", len(result.Linked)).
		Bool("dry_run", result.DryRun).
		Msg("Link finished")
}
