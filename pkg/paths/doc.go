// Package paths provides centralized path handling for wflink.
//
// It handles:
//
//   - Repository root discovery through git
//   - Home directory expansion
//   - The well-known location of Alfred's prefs.json
//   - XDG config directory for wflink's own configuration
//
// # Environment Variables
//
//   - WFLINK_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/wflink)
package paths
