package nix

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/npmwrap/internal/core/domain"
	"go.trai.ch/npmwrap/internal/core/ports"
)

const (
	ResolverNodeID graft.ID = "adapter.nix.resolver"
	ManagerNodeID  graft.ID = "adapter.nix.manager"
)

func init() {
	graft.Register(graft.Node[ports.DependencyResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DependencyResolver, error) {
			return NewResolver(domain.DefaultNixHubCachePath()), nil
		},
	})

	graft.Register(graft.Node[ports.PackageManager]{
		ID:        ManagerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageManager, error) {
			return NewManager(domain.DefaultStorePathCachePath()), nil
		},
	})
}
