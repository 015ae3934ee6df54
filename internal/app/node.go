package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pipgen/internal/adapters/buildfiles"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pipgen/internal/adapters/config"       //nolint:depguard // Wired in app layer
	"go.trai.ch/pipgen/internal/adapters/fs"           //nolint:depguard // Wired in app layer
	"go.trai.ch/pipgen/internal/adapters/lockfile"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pipgen/internal/adapters/logger"       //nolint:depguard // Wired in app layer
	"go.trai.ch/pipgen/internal/adapters/requirements" //nolint:depguard // Wired in app layer
	"go.trai.ch/pipgen/internal/adapters/resolver"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pipgen/internal/core/ports"
	"go.trai.ch/pipgen/internal/engine/merge"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lockfile.NodeID,
			requirements.NodeID,
			resolver.NodeID,
			merge.NodeID,
			buildfiles.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}

	parser, err := graft.Dep[ports.RequirementsParser](ctx)
	if err != nil {
		return nil, err
	}

	resolvers, err := graft.Dep[ports.ResolverProvider](ctx)
	if err != nil {
		return nil, err
	}

	merger, err := graft.Dep[*merge.Merger](ctx)
	if err != nil {
		return nil, err
	}

	output, err := graft.Dep[ports.OutputWriter](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, store, parser, resolvers, merger, output, hasher, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
