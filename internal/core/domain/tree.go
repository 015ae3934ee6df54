package domain

import (
	"maps"
	"slices"
)

// RequirementDetail is the resolved state of one package in one environment cell.
type RequirementDetail struct {
	Version      string
	Source       string
	Dependencies []string
	IsDirect     bool
	Extras       []string
}

// PlatformSubtree maps canonical platforms to requirement details.
type PlatformSubtree map[string]RequirementDetail

// Platforms returns the platforms in sorted order.
func (p PlatformSubtree) Platforms() []string {
	return slices.Sorted(maps.Keys(p))
}

// VersionSubtree maps interpreter major versions to platform subtrees.
type VersionSubtree map[int]PlatformSubtree

// Versions returns the interpreter versions in ascending order.
func (v VersionSubtree) Versions() []int {
	return slices.Sorted(maps.Keys(v))
}

// RequirementTree maps normalized package names to their version subtrees.
type RequirementTree map[string]VersionSubtree

// Packages returns the package names in sorted order.
func (t RequirementTree) Packages() []string {
	return slices.Sorted(maps.Keys(t))
}

// GeneratedPackage is the rendered build description of one package.
type GeneratedPackage struct {
	// Name is the normalized package name, used as the directory name.
	Name string

	// BuildFile holds the per-environment targets and alias chain.
	BuildFile []byte

	// ReposFile exposes the labels of the resolved sources as named values.
	ReposFile []byte
}
