// Package compiler turns a requirement tree into build descriptions.
//
// Every package gets one py_library per (python version, platform) cell, one
// alias per python version selecting on the platform, and a top-level alias
// named after the package selecting on the python version. Whenever all arms
// of a select reach the same source with the same dependency edges, the
// select collapses into a plain alias.
package compiler

import (
	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/zerr"
)

// Compiler renders build descriptions against one rules repository.
type Compiler struct {
	rulesRepo string
}

// New creates a Compiler whose platform conditions and wheel rules live in rulesRepo.
func New(rulesRepo string) *Compiler {
	return &Compiler{rulesRepo: rulesRepo}
}

// Compile renders every package of t, sorted by name.
func (c *Compiler) Compile(t domain.RequirementTree) ([]domain.GeneratedPackage, error) {
	packages := make([]domain.GeneratedPackage, 0, len(t))
	for _, name := range t.Packages() {
		pkg, err := c.CompilePackage(name, t[name])
		if err != nil {
			return nil, zerr.With(err, "package", name)
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}
