package compiler

import (
	"bytes"
	"slices"

	"go.trai.ch/pipgen/internal/core/domain"
)

// CompilePackage renders the BUILD and repos.bzl files of one package.
func (c *Compiler) CompilePackage(name string, versions domain.VersionSubtree) (domain.GeneratedPackage, error) {
	build, err := c.renderBuild(name, versions)
	if err != nil {
		return domain.GeneratedPackage{}, err
	}
	return domain.GeneratedPackage{
		Name:      name,
		BuildFile: build,
		ReposFile: renderRepos(versions),
	}, nil
}

func (c *Compiler) renderBuild(name string, versions domain.VersionSubtree) ([]byte, error) {
	var blocks []block

	top := alias{Name: name, Visibility: visibilitySubpackages}

	for _, version := range versions.Versions() {
		platforms := versions[version]
		versionAlias := alias{Name: versionTarget(version), Visibility: visibilityPrivate}

		for _, platform := range platforms.Platforms() {
			detail := platforms[platform]
			target := environmentTarget(version, platform)

			blocks = append(blocks, block{template: "library", data: library{
				Name: target,
				Deps: dependencyLabels(detail),
			}})
			versionAlias.Arms = append(versionAlias.Arms, selectArm{
				Condition: platformLabel(c.rulesRepo, platform),
				Target:    local(target),
			})

			if detail.IsDirect {
				top.Visibility = visibilityPublic
			}
		}

		if first, ok := uniformCell(platforms); ok {
			versionAlias.Actual = local(environmentTarget(version, first))
			versionAlias.Arms = nil
		}
		blocks = append(blocks, block{template: "alias", data: versionAlias})

		top.Arms = append(top.Arms, selectArm{
			Condition: pythonVersionLabel(version),
			Target:    local(versionTarget(version)),
		})
	}

	if uniformVersions(versions) {
		top.Actual = local(versionTarget(versions.Versions()[0]))
		top.Arms = nil
	}
	blocks = append(blocks, block{template: "alias", data: top})

	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteString("\n")
	if err := renderBlocks(&buf, blocks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// dependencyLabels lists the source library followed by the top-level
// target of every dependency.
func dependencyLabels(detail domain.RequirementDetail) []string {
	labels := make([]string, 0, len(detail.Dependencies)+1)
	labels = append(labels, sourceLibLabel(detail.Source))
	for _, dep := range detail.Dependencies {
		labels = append(labels, packageLabel(dep))
	}
	return labels
}

// uniformCell reports whether every platform of a version reaches the same
// source with the same dependencies, returning the first platform.
func uniformCell(platforms domain.PlatformSubtree) (string, bool) {
	names := platforms.Platforms()
	if len(names) == 0 {
		return "", false
	}
	first := platforms[names[0]]
	for _, name := range names[1:] {
		if !sameEdges(first, platforms[name]) {
			return "", false
		}
	}
	return names[0], true
}

// uniformVersions reports whether every cell of every version matches the
// first cell of the first version.
func uniformVersions(versions domain.VersionSubtree) bool {
	var first *domain.RequirementDetail
	for _, version := range versions.Versions() {
		for _, platform := range versions[version].Platforms() {
			detail := versions[version][platform]
			if first == nil {
				first = &detail
				continue
			}
			if !sameEdges(*first, detail) {
				return false
			}
		}
	}
	return first != nil
}

func sameEdges(a, b domain.RequirementDetail) bool {
	return a.Source == b.Source && slices.Equal(a.Dependencies, b.Dependencies)
}

// renderRepos exposes the source repository of every cell, of every version
// that resolves to a single source, and of the whole package when it does.
func renderRepos(versions domain.VersionSubtree) []byte {
	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteString("\n")

	all := make(map[string]struct{})
	for _, version := range versions.Versions() {
		platforms := versions[version]
		seen := make(map[string]struct{})

		for _, platform := range platforms.Platforms() {
			label := sourceRepoLabel(platforms[platform].Source)
			writeVariable(&buf, environmentTarget(version, platform), label)
			seen[label] = struct{}{}
			all[label] = struct{}{}
		}

		if label, ok := single(seen); ok {
			writeVariable(&buf, versionTarget(version), label)
		}
	}

	if label, ok := single(all); ok {
		writeVariable(&buf, "all", label)
	}
	return buf.Bytes()
}

func writeVariable(buf *bytes.Buffer, name, value string) {
	buf.WriteString(name + " = " + quote(value) + "\n")
}

func single(set map[string]struct{}) (string, bool) {
	if len(set) != 1 {
		return "", false
	}
	for v := range set {
		return v, true
	}
	return "", false
}
