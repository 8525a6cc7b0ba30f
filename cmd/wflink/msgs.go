package wflink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Move Alfred workflow assets into their git repository"
	MsgLinkShort       = "Link unlinked workflow assets into the repository"
	MsgStatusShort     = "Show assets waiting to be linked"
	MsgLocateShort     = "Print the install path of a workflow"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Output
	MsgDryRunNotice    = "\nDRY RUN MODE - No changes were made"
	MsgNothingToLink   = "No unlinked assets in %s\n"
	MsgLinkedHeader    = "Linked %d asset(s) from %s:\n"
	MsgLinkedPartial   = "Linked %d asset(s) from %s before the failure:\n"
	MsgWouldLinkHeader = "Would link %d asset(s) from %s:\n"
	MsgLinkedItem      = "  ✓ %s -> %s\n"
	MsgStatusBundle    = "Bundle ID:   %s\n"
	MsgStatusRepo      = "Repository:  %s\n"
	MsgStatusWorkflow  = "Workflow:    %s\n"
	MsgPendingHeader   = "\nPending (%d):\n"
	MsgManifestHeader  = "\nManifest %s (%d):\n"
	MsgListItem        = "  %s\n"
	MsgInstalledItem   = "  %-40s %s\n"
	MsgInstalledHeader = "\nInstalled workflows in %s:\n"
	MsgVersionFormat   = "wflink version %s\n"
	MsgVersionCommit   = "  commit: %s\n"
	MsgVersionDate     = "  built:  %s\n"
	MsgManPagesWritten = "Man pages written to %s\n"
	MsgErrorPrefix     = "Error: "
	MsgErrorDetail     = "  %s: %v\n"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v DEBUG, -vv TRACE)"
	MsgFlagQuiet        = "Only log warnings and errors"
	MsgFlagDryRun       = "Preview changes without executing them"
	MsgFlagRepo         = "Repository root (default: git top-level of the current directory)"
	MsgFlagWorkflowsDir = "Alfred workflows directory (default: read from Alfred's prefs.json)"
	MsgFlagConfig       = "Config file (default: $XDG_CONFIG_HOME/wflink/config.toml)"
	MsgFlagPrefs        = "Alfred prefs.json to read the install root from"
	MsgFlagAll          = "Also list every installed workflow"
	MsgFlagDefaults     = "Print the built-in defaults instead of the effective configuration"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimRight(msgLinkExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/locate-long.txt
	msgLocateLongRaw string
	MsgLocateLong    = strings.TrimSpace(msgLocateLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
