package domain

import (
	"path"
	"regexp"
	"slices"
	"strings"
)

// SourceRepoPrefix namespaces the external repositories declared for sources.
const SourceRepoPrefix = "pip"

var (
	canonicalSeparators = regexp.MustCompile(`[-_.]+`)
	invalidLabelChars   = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// NormalizeName returns the form of a distribution name used for build graph
// cross references: lower-cased with hyphens converted to underscores. Dots are
// kept. "My-Package" and "my_package" normalize to the same value.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

// CanonicalizeName returns the index-style canonical form of a distribution
// name: lower-cased, with runs of "-", "_" and "." collapsed to a single "-".
func CanonicalizeName(name string) string {
	return canonicalSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// CanonicalPlatform maps an interpreter platform tag onto the build system's
// platform vocabulary. Unknown tags are returned unchanged.
func CanonicalPlatform(sysPlatform string) string {
	switch {
	case sysPlatform == "darwin":
		return "osx"
	case strings.Contains(sysPlatform, "linux"):
		return "linux"
	default:
		return sysPlatform
	}
}

// LocalSourceName derives the source name of a locally vendored wheel from its path.
func LocalSourceName(wheelPath string) string {
	return sourceNameFromStem(wheelPath)
}

// RemoteSourceName derives the source name of a remote artifact from its URL path.
func RemoteSourceName(urlPath string) string {
	return sourceNameFromStem(urlPath)
}

func sourceNameFromStem(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	stem := strings.TrimSuffix(base, path.Ext(base))
	return invalidLabelChars.ReplaceAllString(stem, "_")
}

// SourceRepoName returns the external repository name for a source.
func SourceRepoName(sourceName string) string {
	return SourceRepoPrefix + "__" + sourceName
}

// SortedSet returns a sorted copy of values with duplicates and empty strings removed.
// It returns an empty, non-nil slice for empty input so serialized output is stable.
func SortedSet(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
