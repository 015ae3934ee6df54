// Package build holds version information set at link time.
package build

// Build information, overridden with -ldflags "-X go.trai.ch/pipgen/internal/build.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
