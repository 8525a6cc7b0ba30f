// Package version carries the build information stamped in by the release
// build.
package version

import "fmt"

// Build information set by ldflags:
//
//	-X github.com/arthur-debert/wflink/internal/version.Version={{.Version}}
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns "wflink <version>", used in man page headers
func Short() string {
	return fmt.Sprintf("wflink %s", Version)
}
