// Package tree reshapes lock file environments into a per-package lookup.
package tree

import (
	"maps"
	"slices"

	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/zerr"
)

// Build returns the requirement tree of lf: normalized package name, then
// interpreter version, then canonical platform. Dependency names are
// normalized so that every edge targets a tree entry by the same key.
//
// Two requirements landing in the same cell, such as "Foo" in both a "linux"
// and a "linux2" environment, are reported as domain.ErrTreeCellConflict.
func Build(lf *domain.LockFile) (domain.RequirementTree, error) {
	t := make(domain.RequirementTree)

	for _, envName := range lf.EnvironmentNames() {
		env := lf.Environments[envName]
		platform := domain.CanonicalPlatform(env.SysPlatform)

		for _, reqName := range slices.Sorted(maps.Keys(env.Requirements)) {
			req := env.Requirements[reqName]
			name := domain.NormalizeName(reqName)

			versions, ok := t[name]
			if !ok {
				versions = make(domain.VersionSubtree)
				t[name] = versions
			}
			platforms, ok := versions[env.PythonVersion]
			if !ok {
				platforms = make(domain.PlatformSubtree)
				versions[env.PythonVersion] = platforms
			}
			if _, taken := platforms[platform]; taken {
				err := zerr.With(domain.ErrTreeCellConflict, "package", name)
				err = zerr.With(err, "python_version", env.PythonVersion)
				err = zerr.With(err, "platform", platform)
				return nil, zerr.With(err, "environment", envName)
			}

			platforms[platform] = domain.RequirementDetail{
				Version:      req.Version,
				Source:       req.Source,
				Dependencies: normalizeDependencies(name, req.Dependencies),
				IsDirect:     req.IsDirect,
				Extras:       domain.SortedSet(req.Extras),
			}
		}
	}

	return t, nil
}

// normalizeDependencies normalizes and sorts dependency names, dropping
// edges back to the package itself (a package required with extras lists
// itself among its dependencies).
func normalizeDependencies(self string, deps []string) []string {
	out := make([]string, 0, len(deps))
	for _, dep := range deps {
		if n := domain.NormalizeName(dep); n != self {
			out = append(out, n)
		}
	}
	return domain.SortedSet(out)
}
