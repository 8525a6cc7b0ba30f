// Package prefs reads Alfred's prefs.json to find where workflows are installed.
package prefs

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/arthur-debert/wflink/pkg/paths"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// CurrentKey names the active Alfred preferences root in prefs.json
const CurrentKey = "current"

// Store resolves the workflow install root from one preferences file
type Store struct {
	path            string
	workflowsSubdir string
}

// NewStore returns a Store reading path. workflowsSubdir is joined onto the
// active preferences root; empty means paths.WorkflowsSubdir.
func NewStore(path, workflowsSubdir string) *Store {
	if workflowsSubdir == "" {
		workflowsSubdir = paths.WorkflowsSubdir
	}
	return &Store{path: path, workflowsSubdir: workflowsSubdir}
}

// Path returns the preferences file this store reads
func (s *Store) Path() string {
	return s.path
}

// PreferencesRoot returns the active preferences root named by "current".
// An unreadable file is ErrFileAccess; invalid JSON or a missing, empty or
// non-string field is ErrMalformedData.
func (s *Store) PreferencesRoot() (string, error) {
	raw, err := file.Provider(s.path).ReadBytes()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot read Alfred preferences").
			WithDetail("path", s.path)
	}

	parsed, err := json.Parser().Unmarshal(raw)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrMalformedData, "Alfred preferences are not valid JSON").
			WithDetail("path", s.path)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(parsed, "."), nil); err != nil {
		return "", errors.Wrap(err, errors.ErrMalformedData, "cannot load Alfred preferences").
			WithDetail("path", s.path)
	}

	if !k.Exists(CurrentKey) {
		return "", errors.Newf(errors.ErrMalformedData, "Alfred preferences have no %q field", CurrentKey).
			WithDetail("path", s.path)
	}

	current, ok := k.Get(CurrentKey).(string)
	if !ok || strings.TrimSpace(current) == "" {
		return "", errors.Newf(errors.ErrMalformedData, "Alfred preferences field %q is not a path", CurrentKey).
			WithDetail("path", s.path)
	}

	return paths.ExpandHome(current), nil
}

// InstallRoot returns the directory holding one subdirectory per installed
// workflow
func (s *Store) InstallRoot() (string, error) {
	root, err := s.PreferencesRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, s.workflowsSubdir), nil
}
