package domain

// Stamp records what the last generation run produced.
type Stamp struct {
	// Digest fingerprints the lock file content and generator inputs.
	Digest string `json:"digest"`

	// BzlFile is the absolute path the source rules were written to.
	BzlFile string `json:"bzl_file"`

	// Packages lists the package directories written by the run.
	Packages []string `json:"packages"`
}
