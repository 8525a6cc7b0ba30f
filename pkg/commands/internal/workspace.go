// Package internal resolves the repository, its bundle id and the matching
// installed workflow for the command implementations.
package internal

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/wflink/pkg/config"
	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/arthur-debert/wflink/pkg/filesystem"
	"github.com/arthur-debert/wflink/pkg/paths"
	"github.com/arthur-debert/wflink/pkg/prefs"
	"github.com/arthur-debert/wflink/pkg/types"
	"github.com/arthur-debert/wflink/pkg/workflow"
	"github.com/rs/zerolog"
)

// Resolver holds what every command needs to find its workspace
type Resolver struct {
	Config *config.Config
	FS     filesystem.FS
	Logger zerolog.Logger
}

// ResolveOptions are the per-invocation overrides
type ResolveOptions struct {
	// RepoRoot skips the git lookup when set
	RepoRoot string
	// WorkDir is where the git lookup starts; empty means the current directory
	WorkDir string
	// WorkflowsDir replaces the install root read from Alfred's preferences
	WorkflowsDir string
	// BundleID replaces the repository's own bundle id
	BundleID string
	// NeedRepo forces repository resolution even when BundleID is given
	NeedRepo bool
}

// NewResolver fills defaults for nil config and filesystem
func NewResolver(cfg *config.Config, fsys filesystem.FS, logger zerolog.Logger) *Resolver {
	if cfg == nil {
		cfg = config.Default()
	}
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return &Resolver{Config: cfg, FS: fsys, Logger: logger}
}

// Resolve finds the repository, the bundle id it declares and the installed
// workflow carrying that id. A missing workflow is logged at error level
// with the bundle id and returned as ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, opts ResolveOptions) (*types.Workspace, error) {
	ws := &types.Workspace{BundleID: opts.BundleID}

	if opts.BundleID == "" || opts.NeedRepo {
		repoRoot, err := r.RepoRoot(ctx, opts.RepoRoot, opts.WorkDir)
		if err != nil {
			return nil, err
		}
		ws.RepoRoot = repoRoot
		r.Logger.Debug().Str("repo", repoRoot).Msg("Repo at")
	}

	if ws.BundleID == "" {
		bundleID, err := workflow.ReadBundleID(r.FS, paths.DescriptorPath(ws.RepoRoot))
		if err != nil {
			return nil, err
		}
		ws.BundleID = bundleID
	}
	r.Logger.Debug().Str("bundle_id", ws.BundleID).Msg("Bundle ID")

	installRoot, err := r.InstallRoot(opts.WorkflowsDir)
	if err != nil {
		return nil, err
	}
	ws.InstallRoot = installRoot

	workflowPath, err := workflow.NewLocator(installRoot, r.FS, r.Logger).Find(ws.BundleID)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			r.Logger.Error().
				Str("bundle_id", ws.BundleID).
				Str("install_root", installRoot).
				Msgf("Could not find workflow with bundle ID '%s'", ws.BundleID)
		}
		return nil, err
	}
	ws.WorkflowPath = workflowPath

	return ws, nil
}

// RepoRoot returns explicit as an absolute path, or asks git for the
// repository containing workDir
func (r *Resolver) RepoRoot(ctx context.Context, explicit, workDir string) (string, error) {
	if explicit == "" {
		return paths.FindRepoRoot(ctx, workDir)
	}

	abs, err := filepath.Abs(paths.ExpandHome(explicit))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "cannot resolve repository path").
			WithDetail("path", explicit)
	}

	info, err := r.FS.Stat(abs)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot access repository").
			WithDetail("path", abs)
	}
	if !info.IsDir() {
		return "", errors.New(errors.ErrInvalidInput, "repository path is not a directory").
			WithDetail("path", abs)
	}
	return abs, nil
}

// InstallRoot returns explicit when set, otherwise the workflows directory
// named by Alfred's preferences
func (r *Resolver) InstallRoot(explicit string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(paths.ExpandHome(explicit))
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInvalidInput, "cannot resolve workflows directory").
				WithDetail("path", explicit)
		}
		return abs, nil
	}

	prefsFile, err := r.Config.ResolvedPrefsFile()
	if err != nil {
		return "", err
	}

	root, err := prefs.NewStore(prefsFile, r.Config.WorkflowsSubdir).InstallRoot()
	if err != nil {
		return "", err
	}
	r.Logger.Debug().Str("prefs", prefsFile).Str("install_root", root).Msg("Looking for workflow in path")
	return root, nil
}
