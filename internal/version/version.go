// Package version holds the relog version information.
// This is a separate package to avoid import cycles - it has no dependencies
// and can be safely imported from any package.
package version

import "fmt"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// String returns the version for display. Development builds include the
// commit and build date so bug reports can pin the exact build.
func String() string {
	if IsDevBuild() {
		return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
	}
	return Version
}
