package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/npmwrap/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/npmwrap/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/npmwrap/internal/adapters/nix"       //nolint:depguard // Wired in app layer
	"go.trai.ch/npmwrap/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/npmwrap/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/npmwrap/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components is everything main needs to run a command.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			nix.ResolverNodeID,
			nix.ManagerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	inner, err := graft.Dep[ports.Launcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.DependencyResolver](ctx)
	if err != nil {
		return nil, err
	}

	manager, err := graft.Dep[ports.PackageManager](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, inner, log, tracer, resolver, manager), nil
}
