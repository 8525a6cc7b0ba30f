package workflow

import (
	"iter"
	"path/filepath"

	"github.com/arthur-debert/wflink/pkg/filesystem"
	"github.com/arthur-debert/wflink/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultAssetExt is appended to an object uid to name its icon
const DefaultAssetExt = ".png"

// Scanner finds icon assets that are still regular files
type Scanner struct {
	fs     filesystem.FS
	ext    string
	logger zerolog.Logger
}

// NewScanner returns a Scanner naming assets {uid}{ext}. Empty ext means
// DefaultAssetExt.
func NewScanner(fsys filesystem.FS, ext string, logger zerolog.Logger) *Scanner {
	if ext == "" {
		ext = DefaultAssetExt
	}
	return &Scanner{
		fs:     fsys,
		ext:    ext,
		logger: logging.WithComponent(logger, "scanner"),
	}
}

// AssetPath returns the conventional asset location for uid inside dir
func (s *Scanner) AssetPath(dir, uid string) string {
	return filepath.Join(dir, uid+s.ext)
}

// ScanAssets loads the descriptor in dir and returns the asset paths that
// exist and are not symbolic links, in object order. The descriptor is read
// up front, so a malformed one fails here; each candidate is checked only
// when the consumer pulls it.
func (s *Scanner) ScanAssets(dir string) (iter.Seq[string], error) {
	desc, err := LoadDescriptor(s.fs, dir)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("workflow", dir).
		Int("objects", len(desc.Objects)).
		Msg("Scanning workflow objects")

	return func(yield func(string) bool) {
		for _, obj := range desc.Objects {
			path := s.AssetPath(dir, obj.UID)
			if !s.isUnlinked(path) {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}, nil
}

// isUnlinked reports whether path exists and is not a symbolic link. Any
// Lstat failure counts as absent.
func (s *Scanner) isUnlinked(path string) bool {
	info, err := s.fs.Lstat(path)
	if err != nil {
		s.logger.Debug().Str("path", path).Err(err).Msg("Asset absent")
		return false
	}
	if filesystem.IsSymlink(info) {
		s.logger.Trace().Str("path", path).Msg("Asset already linked")
		return false
	}
	return true
}
