package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/npmwrap/internal/adapters/logger"
	"go.trai.ch/npmwrap/internal/core/ports"
)

// NodeID is the unique identifier for the launcher Graft node.
const NodeID graft.ID = "adapter.launcher"

func init() {
	graft.Register(graft.Node[ports.Launcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Launcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLauncher(log), nil
		},
	})
}
