package requirements

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pipgen/internal/adapters/logger"
	"go.trai.ch/pipgen/internal/core/ports"
)

// NodeID is the unique identifier for the requirements parser Graft node.
const NodeID graft.ID = "adapter.requirements_parser"

func init() {
	graft.Register(graft.Node[ports.RequirementsParser]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.RequirementsParser, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewParser(log), nil
		},
	})
}
