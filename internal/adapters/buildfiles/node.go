package buildfiles

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pipgen/internal/adapters/logger"
	"go.trai.ch/pipgen/internal/core/ports"
)

// NodeID is the unique identifier for the output writer Graft node.
const NodeID graft.ID = "adapter.buildfiles"

func init() {
	graft.Register(graft.Node[ports.OutputWriter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.OutputWriter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWriter(log), nil
		},
	})
}
