package resolver

import (
	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/pipgen/internal/core/ports"
)

var _ ports.ResolverProvider = (*Provider)(nil)

// Provider picks the resolver matching a configuration. A resolved file wins
// over a command.
type Provider struct {
	logger ports.Logger
}

// NewProvider creates a new Provider.
func NewProvider(logger ports.Logger) *Provider {
	return &Provider{logger: logger}
}

// ForConfig returns the configured resolver.
func (p *Provider) ForConfig(cfg domain.ResolverConfig) (ports.Resolver, error) {
	switch {
	case cfg.ResolvedFile != "":
		return NewFileResolver(cfg.ResolvedFile, p.logger), nil
	case len(cfg.Command) > 0:
		return NewCommandResolver(cfg.Command, cfg.Dir, p.logger), nil
	default:
		return nil, domain.ErrResolverNotConfigured
	}
}
