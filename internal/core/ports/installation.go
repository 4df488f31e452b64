package ports

import (
	"context"

	"go.trai.ch/npmwrap/internal/core/domain"
)

// InstallationRegistry looks up configured tool installations by name.
//
//go:generate go run go.uber.org/mock/mockgen -source=installation.go -destination=mocks/mock_installation.go -package=mocks
type InstallationRegistry interface {
	// FindByName returns the installation with the given name.
	FindByName(name string) (InstallationHandle, bool)
	// Names returns every configured installation name, in configuration order.
	Names() []string
}

// InstallationHandle is a configured installation that can be translated for a node.
type InstallationHandle interface {
	// Name returns the configured installation name.
	Name() string
	// ResolveFor translates the installation for node, then for env.
	// It may block while the tool is materialized and must honour ctx.
	ResolveFor(ctx context.Context, node *domain.ExecutionNode, env *domain.Environment) (domain.ResolvedInstallation, error)
}
