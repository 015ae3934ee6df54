// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/pipgen/internal/core/domain"
)

// Resolver is the dependency resolution engine.
//
// Implementations take the package requests for one environment and return
// one record per resolved package, transitive dependencies included. When
// packages cannot be resolved or their wheels cannot be built, implementations
// return a *domain.ResolutionError naming every failed package.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type Resolver interface {
	Resolve(
		ctx context.Context,
		env domain.EnvironmentKey,
		requests domain.RequirementSet,
	) ([]domain.ResolvedRequirement, error)
}

// ResolverProvider selects the resolution engine described by a configuration.
type ResolverProvider interface {
	ForConfig(cfg domain.ResolverConfig) (Resolver, error)
}
