package types

import "github.com/arthur-debert/wflink/pkg/workflow"

// Workspace is what every command resolves before doing its work
type Workspace struct {
	// RepoRoot is empty when the command did not need a repository
	RepoRoot     string
	BundleID     string
	InstallRoot  string
	WorkflowPath string
}

// LinkedAsset describes one asset moved into the repository
type LinkedAsset struct {
	Name string
	// OriginalPath is a symbolic link to RepoPath once linked
	OriginalPath string
	RepoPath     string
	DryRun       bool
}

// LinkResult holds the result of the 'link' command
type LinkResult struct {
	Workspace
	Linked []LinkedAsset
	DryRun bool
}

// StatusResult holds the result of the 'status' command
type StatusResult struct {
	Workspace
	// Pending are assets that 'link' would move, in scan order
	Pending   []string
	BuildFile string
	// ManifestEntries are the filenames already on the manifest line
	ManifestEntries []string
}

// LocateResult holds the result of the 'locate' command
type LocateResult struct {
	Workspace
	// Installed lists every workflow under the install root when requested
	Installed []workflow.Installed
}
