package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pipgen/internal/adapters/logger"
	"go.trai.ch/pipgen/internal/core/ports"
)

// NodeID is the unique identifier for the resolver provider Graft node.
const NodeID graft.ID = "adapter.resolver_provider"

func init() {
	graft.Register(graft.Node[ports.ResolverProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ResolverProvider, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(log), nil
		},
	})
}
