package paths

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/wflink/pkg/errors"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvConfigDir overrides the XDG config directory for wflink
	EnvConfigDir = "WFLINK_CONFIG_DIR"
)

// Fixed names. Alfred's layout is not configurable on its side, so these
// only change through wflink's own config file.
const (
	// AppDirName is the directory name for wflink-specific files
	AppDirName = "wflink"

	// ConfigFileName is the user configuration file inside ConfigDir
	ConfigFileName = "config.toml"

	// DescriptorFile is the workflow descriptor in every workflow and repo root
	DescriptorFile = "info.plist"

	// WorkflowsSubdir is the directory under Alfred's preferences root that
	// holds one directory per installed workflow
	WorkflowsSubdir = "workflows"
)

// alfredPrefsRel is prefs.json relative to the home directory
var alfredPrefsRel = filepath.Join("Library", "Application Support", "Alfred", "prefs.json")

// gitCommand is swapped in tests
var gitCommand = "git"

// FindRepoRoot returns the top-level directory of the git repository that
// contains dir (the current directory when dir is empty). It runs
// 'git rev-parse --show-toplevel'; a non-zero exit or empty output is an
// ErrExternalCommand.
func FindRepoRoot(ctx context.Context, dir string) (string, error) {
	args := []string{"rev-parse", "--show-toplevel"}
	cmd := exec.CommandContext(ctx, gitCommand, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Wrap(err, errors.ErrExternalCommand, "git rev-parse --show-toplevel failed").
			WithDetail("dir", dir).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
	}

	root := strings.TrimSpace(stdout.String())
	if root == "" {
		return "", errors.New(errors.ErrExternalCommand, "git root is empty").
			WithDetail("dir", dir)
	}

	return root, nil
}

// GetHomeDirectory returns the user's home directory, falling back to $HOME
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return "", errors.Wrap(err, errors.ErrFileAccess, "cannot determine home directory")
		}
	}
	return homeDir, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		// Can't expand, return as-is
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// AlfredPrefsPath returns the well-known location of Alfred's prefs.json
func AlfredPrefsPath() (string, error) {
	homeDir, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, alfredPrefsRel), nil
}

// ConfigDir returns the wflink config directory, honoring WFLINK_CONFIG_DIR
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the user configuration file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// DescriptorPath returns the descriptor location inside a workflow or repo dir
func DescriptorPath(dir string) string {
	return filepath.Join(dir, DescriptorFile)
}
