package workflow

import (
	"path/filepath"

	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/arthur-debert/wflink/pkg/filesystem"
	"github.com/arthur-debert/wflink/pkg/logging"
	"github.com/arthur-debert/wflink/pkg/paths"
	"github.com/rs/zerolog"
)

// Installed is one workflow directory under the install root
type Installed struct {
	Path     string
	BundleID string
}

// Locator finds installed workflows under one install root
type Locator struct {
	root   string
	fs     filesystem.FS
	logger zerolog.Logger
}

// NewLocator returns a Locator over root
func NewLocator(root string, fsys filesystem.FS, logger zerolog.Logger) *Locator {
	return &Locator{
		root:   root,
		fs:     fsys,
		logger: logging.WithComponent(logger, "locator"),
	}
}

// Root returns the install root
func (l *Locator) Root() string {
	return l.root
}

// Find returns the absolute path of the first installed workflow, in
// directory listing order, whose descriptor declares bundleID. No match is
// ErrNotFound carrying the bundle id.
func (l *Locator) Find(bundleID string) (string, error) {
	var match string
	err := l.walk(func(w Installed) bool {
		if w.BundleID != bundleID {
			return true
		}
		match = w.Path
		return false
	})
	if err != nil {
		return "", err
	}

	if match == "" {
		return "", errors.Newf(errors.ErrNotFound, "no installed workflow has bundle id %s", bundleID).
			WithDetail("bundle_id", bundleID).
			WithDetail("install_root", l.root)
	}

	l.logger.Debug().Str("bundle_id", bundleID).Str("path", match).Msg("Found workflow")
	return match, nil
}

// List returns every installed workflow with a readable descriptor
func (l *Locator) List() ([]Installed, error) {
	var all []Installed
	err := l.walk(func(w Installed) bool {
		all = append(all, w)
		return true
	})
	return all, err
}

// walk visits installed workflows until visit returns false. Entries that
// are not directories are ignored; directories whose descriptor cannot be
// read are logged and skipped.
func (l *Locator) walk(visit func(Installed) bool) error {
	root, err := filepath.Abs(l.root)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot resolve install root").
			WithDetail("path", l.root)
	}

	entries, err := l.fs.ReadDir(root)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot list install root").
			WithDetail("path", root)
	}

	l.logger.Trace().Str("root", root).Int("entries", len(entries)).Msg("Listing install root")

	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())

		// Follows links; installed workflows may be symlinked directories
		info, err := l.fs.Stat(dir)
		if err != nil || !info.IsDir() {
			l.logger.Trace().Str("path", dir).Msg("Skipping non-directory entry")
			continue
		}

		bundleID, err := ReadBundleID(l.fs, paths.DescriptorPath(dir))
		if err != nil {
			l.logger.Warn().Err(err).Str("path", dir).Msg("Skipping workflow with unreadable descriptor")
			continue
		}

		if !visit(Installed{Path: dir, BundleID: bundleID}) {
			return nil
		}
	}

	return nil
}
