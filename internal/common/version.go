package common

import "fmt"

// Version variables injected at build time via ldflags
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the semantic version string
func GetVersion() string {
	return Version
}

// GetBuild returns the build timestamp
func GetBuild() string {
	return Build
}

// GetGitCommit returns the source commit the binary was built from.
func GetGitCommit() string {
	return GitCommit
}

// VersionString returns the full version line for banners and --version.
func VersionString() string {
	return fmt.Sprintf("ratiolens %s (build %s, commit %s)", Version, Build, GitCommit)
}
