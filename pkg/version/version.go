// Package version provides build version information for the tcdev binary.
package version

// Build-time variables set via -ldflags.
//
//nolint:gochecknoglobals // Overridden at link time by goreleaser/Makefile
var (
	// Version is the semantic version of the build (e.g., "v0.3.1").
	Version = "dev"
	// Commit is the git commit hash the binary was built from.
	Commit = "none"
	// Date is the build timestamp in RFC3339 format.
	Date = "unknown"
)

// GetVersion returns the version string for display in --version output.
func GetVersion() string {
	return Version
}

// GetFullVersion returns version, commit, and build date for verbose output.
func GetFullVersion() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
