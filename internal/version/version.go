package version

import "fmt"

// Overridden at build time with -ldflags "-X .../internal/version.Version=...".
var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String renders the build stamp shown by -version and in report footers.
func String() string {
	return fmt.Sprintf("telemetry-report %s (%s, built %s)", Version, GitSHA, BuildTime)
}
