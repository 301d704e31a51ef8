// Package version contains version information.
package version

// Version information for check-container-by-query, set via -ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the full version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns version with build metadata
func GetFullVersion() string {
	return Version + " (build: " + BuildDate + ", commit: " + GitCommit + ")"
}

// GetUserAgent identifies the check to the Docker daemon.
func GetUserAgent() string {
	return "check-container-by-query/" + Version
}
