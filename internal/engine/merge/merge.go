// Package merge folds a fresh resolution into an existing lock file.
package merge

import (
	"github.com/brunoga/deep"
	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/pipgen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Merger updates lock files one environment at a time.
type Merger struct {
	logger ports.Logger
}

// New creates a new Merger.
func New(logger ports.Logger) *Merger {
	return &Merger{logger: logger}
}

// UpdateForCurrentEnvironment returns a copy of lf in which the requirements
// of env are replaced by resolved. Sources are derived from the resolved
// provenance and sources no longer referenced by any environment are purged.
//
// Drift is reported with one warning per affected record: either a source
// name now carries different provenance, or a package of env moved to a
// different source.
//
// Every record is validated before anything changes; on error lf is
// returned untouched alongside the error.
func (m *Merger) UpdateForCurrentEnvironment(
	lf *domain.LockFile,
	env domain.EnvironmentKey,
	resolved []domain.ResolvedRequirement,
) (*domain.LockFile, error) {
	if lf == nil {
		lf = domain.NewLockFile()
	}
	if err := env.Validate(); err != nil {
		return lf, zerr.With(err, "environment", env.Name())
	}
	if err := validateResolved(resolved); err != nil {
		return lf, zerr.With(err, "environment", env.Name())
	}

	next, err := deep.Copy(lf)
	if err != nil {
		return lf, zerr.Wrap(err, "failed to copy lock file")
	}
	if next.Environments == nil {
		next.Environments = make(map[string]domain.Environment)
	}
	if next.Sources == nil {
		next.Sources = make(map[string]domain.Source)
	}

	previous := make(map[string]domain.Requirement)
	for name, req := range next.RequirementsFor(env) {
		previous[domain.NormalizeName(name)] = req
	}

	requirements := make(map[string]domain.Requirement, len(resolved))
	warned := make(map[string]bool)
	for _, r := range resolved {
		sourceName := r.Source.Name()
		source := r.Source.Source()

		existing, known := next.Sources[sourceName]
		switch {
		case known && !existing.Equal(source):
			if !warned[sourceName] {
				m.logger.Warn("changing source " + sourceName + " in lock file")
				warned[sourceName] = true
			}
		default:
			if old, ok := previous[domain.NormalizeName(r.Name)]; ok && old.Source != sourceName {
				m.logger.Warn("changing source of " + r.Name + " in " + env.Name() +
					" from " + old.Source + " to " + sourceName)
			}
		}
		next.Sources[sourceName] = source

		requirements[r.Name] = domain.Requirement{
			Version:      r.Version,
			IsDirect:     r.IsDirect,
			Source:       sourceName,
			Dependencies: normalizeAll(r.Dependencies),
			Extras:       domain.SortedSet(r.Extras),
		}
	}

	next.Environments[env.Name()] = domain.Environment{
		SysPlatform:   env.SysPlatform,
		PythonVersion: env.PythonVersion,
		Requirements:  requirements,
	}
	next.PurgeUnusedSources()

	return next, nil
}

func validateResolved(resolved []domain.ResolvedRequirement) error {
	seen := make(map[string]string, len(resolved))
	for _, r := range resolved {
		if err := r.Validate(); err != nil {
			return err
		}
		key := domain.NormalizeName(r.Name)
		if first, ok := seen[key]; ok {
			err := zerr.With(domain.ErrDuplicateRequirement, "package", r.Name)
			return zerr.With(err, "conflicts_with", first)
		}
		seen[key] = r.Name
	}
	return nil
}

func normalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, domain.NormalizeName(name))
	}
	return domain.SortedSet(out)
}
