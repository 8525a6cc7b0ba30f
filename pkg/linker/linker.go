package linker

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/arthur-debert/wflink/pkg/filesystem"
	"github.com/arthur-debert/wflink/pkg/logging"
	"github.com/arthur-debert/wflink/pkg/manifest"
	"github.com/arthur-debert/wflink/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Linker
type Options struct {
	// RepoRoot receives the asset copies; it must be absolute
	RepoRoot string
	// BuildFile is relative to RepoRoot
	BuildFile string
	// Marker starts the manifest line
	Marker string
	// DryRun runs the preflight checks and only logs the other steps
	DryRun     bool
	FileSystem filesystem.FS // Allow injecting a filesystem for testing
}

// Linker links assets into one repository
type Linker struct {
	opts   Options
	fs     filesystem.FS
	logger zerolog.Logger
}

// New returns a Linker. A nil FileSystem means the OS filesystem.
func New(opts Options, logger zerolog.Logger) *Linker {
	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Linker{
		opts:   opts,
		fs:     fs,
		logger: logging.WithComponent(logger, "linker"),
	}
}

// BuildFilePath returns the absolute build file location
func (l *Linker) BuildFilePath() string {
	return filepath.Join(l.opts.RepoRoot, l.opts.BuildFile)
}

// Plan returns the steps that link assetPath, without running any
func (l *Linker) Plan(assetPath string) []Step {
	name := filepath.Base(assetPath)
	repoPath := filepath.Join(l.opts.RepoRoot, name)
	buildFile := l.BuildFilePath()

	return []Step{
		{
			Name:        StepPreflight,
			Description: "check " + buildFile + " and " + assetPath,
			Reversible:  true,
			Run:         func() error { return l.preflight(assetPath, repoPath, buildFile) },
		},
		{
			Name:        StepCopy,
			Description: "copy " + assetPath + " to " + repoPath,
			Run:         func() error { return l.copyFile(assetPath, repoPath) },
		},
		{
			Name:        StepRemove,
			Description: "remove " + assetPath,
			Run: func() error {
				if err := l.fs.Remove(assetPath); err != nil {
					return errors.Wrap(err, errors.ErrFileAccess, "cannot remove original asset").
						WithDetail("path", assetPath)
				}
				return nil
			},
		},
		{
			Name:        StepSymlink,
			Description: "link " + assetPath + " -> " + repoPath,
			Run: func() error {
				if err := l.fs.Symlink(repoPath, assetPath); err != nil {
					return errors.Wrap(err, errors.ErrFileAccess, "cannot create symlink").
						WithDetail("link", assetPath).
						WithDetail("target", repoPath)
				}
				return nil
			},
		},
		{
			Name:        StepManifest,
			Description: "append " + name + " to " + buildFile,
			Run:         func() error { return manifest.Append(l.fs, buildFile, l.opts.Marker, name) },
		},
	}
}

// Link runs the plan for assetPath, stopping at the first failed step
func (l *Linker) Link(assetPath string) (*types.LinkedAsset, error) {
	linked := &types.LinkedAsset{
		Name:         filepath.Base(assetPath),
		OriginalPath: assetPath,
		RepoPath:     filepath.Join(l.opts.RepoRoot, filepath.Base(assetPath)),
		DryRun:       l.opts.DryRun,
	}

	for _, step := range l.Plan(assetPath) {
		// Checks without side effects still run in dry-run mode
		if l.opts.DryRun && !step.Reversible {
			l.logger.Info().Str("step", step.Name).Msg("Would " + step.Description)
			continue
		}

		l.logger.Debug().Str("step", step.Name).Msg(step.Description)
		if err := step.Run(); err != nil {
			l.logger.Error().
				Err(err).
				Str("step", step.Name).
				Str("asset", assetPath).
				Bool("reversible", step.Reversible).
				Msg("Link step failed")
			return nil, &StepError{Step: step.Name, Asset: assetPath, Err: err}
		}
	}

	return linked, nil
}

func (l *Linker) preflight(assetPath, repoPath, buildFile string) error {
	if !filepath.IsAbs(l.opts.RepoRoot) {
		return errors.New(errors.ErrInvalidInput, "repository root must be absolute").
			WithDetail("path", l.opts.RepoRoot)
	}

	info, err := l.fs.Lstat(assetPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot stat asset").
			WithDetail("path", assetPath)
	}
	if !info.Mode().IsRegular() {
		return errors.New(errors.ErrInvalidInput, "asset is not a regular file").
			WithDetail("path", assetPath)
	}

	// A workflow symlinked to the repository would link the asset to itself
	if repoInfo, err := l.fs.Stat(repoPath); err == nil && os.SameFile(info, repoInfo) {
		return errors.New(errors.ErrInvalidInput, "asset is already the repository copy").
			WithDetail("path", assetPath).
			WithDetail("repo_path", repoPath)
	}

	found, err := manifest.Contains(l.fs, buildFile, l.opts.Marker)
	if err != nil {
		return err
	}
	if !found {
		return errors.Newf(errors.ErrMalformedData, "build file has no line starting with %q", l.opts.Marker).
			WithDetail("path", buildFile).
			WithDetail("marker", l.opts.Marker)
	}
	return nil
}

// copyFile copies src over dst, replacing whatever is there, and gives dst
// the permission bits of src
func (l *Linker) copyFile(src, dst string) error {
	info, err := l.fs.Stat(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot stat asset").
			WithDetail("path", src)
	}

	data, err := l.fs.ReadFile(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read asset").
			WithDetail("path", src)
	}

	// Replace a link at dst instead of writing through it
	if existing, err := l.fs.Lstat(dst); err == nil && !existing.Mode().IsRegular() {
		if err := l.fs.Remove(dst); err != nil {
			return errors.Wrap(err, errors.ErrFileAccess, "cannot replace repository copy").
				WithDetail("path", dst)
		}
	} else if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot stat repository copy").
			WithDetail("path", dst)
	}

	perm := info.Mode().Perm()
	if err := l.fs.WriteFile(dst, data, perm); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot write repository copy").
			WithDetail("path", dst)
	}
	if err := l.fs.Chmod(dst, perm); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot set repository copy mode").
			WithDetail("path", dst)
	}
	return nil
}
