// Package version exposes build metadata set via -ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the release version, set at build time.
	Version = "dev"
	// Commit is the git commit SHA, set at build time.
	Commit = "none"
	// BuildTime is the build timestamp, set at build time.
	BuildTime = "unknown"
)

// Short returns only the version number.
func Short() string {
	return Version
}

// Info returns detailed version information.
func Info() string {
	return fmt.Sprintf("codepane %s (commit: %s, built: %s, %s)", Version, Commit, BuildTime, runtime.Version())
}
