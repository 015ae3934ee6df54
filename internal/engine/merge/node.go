package merge

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pipgen/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pipgen/internal/core/ports"
)

// NodeID is the unique identifier for the merger Graft node.
const NodeID graft.ID = "engine.merge"

func init() {
	graft.Register(graft.Node[*Merger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Merger, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
