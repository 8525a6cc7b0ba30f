// Package status reports which assets 'link' would move without changing
// anything.
package status

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/arthur-debert/wflink/pkg/commands/internal"
	"github.com/arthur-debert/wflink/pkg/config"
	"github.com/arthur-debert/wflink/pkg/filesystem"
	"github.com/arthur-debert/wflink/pkg/logging"
	"github.com/arthur-debert/wflink/pkg/manifest"
	"github.com/arthur-debert/wflink/pkg/types"
	"github.com/arthur-debert/wflink/pkg/workflow"
	"github.com/rs/zerolog"
)

// StatusOptions defines the options for the Status command
type StatusOptions struct {
	RepoRoot     string
	WorkDir      string
	WorkflowsDir string
	Config       *config.Config
	FileSystem   filesystem.FS
	Logger       zerolog.Logger
}

// Status resolves the workspace, lists pending assets and reads the
// manifest line. A build file without the marker is an error here too, so
// the problem shows before 'link' runs.
func Status(ctx context.Context, opts StatusOptions) (*types.StatusResult, error) {
	logger := logging.WithComponent(opts.Logger, "commands.status")
	logging.LogCommand(logger, "status", nil)

	resolver := internal.NewResolver(opts.Config, opts.FileSystem, logger)
	ws, err := resolver.Resolve(ctx, internal.ResolveOptions{
		RepoRoot:     opts.RepoRoot,
		WorkDir:      opts.WorkDir,
		WorkflowsDir: opts.WorkflowsDir,
	})
	if err != nil {
		return nil, err
	}

	assets, err := workflow.NewScanner(resolver.FS, resolver.Config.AssetExt, logger).ScanAssets(ws.WorkflowPath)
	if err != nil {
		return nil, err
	}

	buildFile := filepath.Join(ws.RepoRoot, resolver.Config.BuildFile)
	entries, err := manifest.Entries(resolver.FS, buildFile, resolver.Config.ManifestMarker)
	if err != nil {
		return nil, err
	}

	pending := slices.Collect(assets)
	if pending == nil {
		pending = []string{}
	}

	logger.Debug().Int("pending", len(pending)).Int("manifest_entries", len(entries)).Msg("Status computed")

	return &types.StatusResult{
		Workspace:       *ws,
		Pending:         pending,
		BuildFile:       buildFile,
		ManifestEntries: entries,
	}, nil
}
