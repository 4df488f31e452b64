// Package tools resolves configured tool installations for execution nodes.
package tools

import (
	"context"
	"os"

	"go.trai.ch/npmwrap/internal/core/domain"
	"go.trai.ch/npmwrap/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry implements ports.InstallationRegistry over the configured installations.
type Registry struct {
	installations []domain.Installation
	resolver      ports.DependencyResolver
	manager       ports.PackageManager
}

// NewRegistry creates a Registry. resolver and manager are only used by
// installations that declare a nix spec and have no home for the node.
func NewRegistry(
	installations []domain.Installation,
	resolver ports.DependencyResolver,
	manager ports.PackageManager,
) *Registry {
	return &Registry{
		installations: installations,
		resolver:      resolver,
		manager:       manager,
	}
}

// FindByName returns the installation with the given name.
func (r *Registry) FindByName(name string) (ports.InstallationHandle, bool) {
	for i := range r.installations {
		if r.installations[i].Name == name {
			return &handle{inst: r.installations[i], registry: r}, true
		}
	}
	return nil, false
}

// Names returns the configured installation names in configuration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.installations))
	for _, inst := range r.installations {
		names = append(names, inst.Name)
	}
	return names
}

type handle struct {
	inst     domain.Installation
	registry *Registry
}

func (h *handle) Name() string {
	return h.inst.Name
}

// ResolveFor translates the installation for node, then expands variables
// in the resulting home against env.
func (h *handle) ResolveFor(
	ctx context.Context,
	node *domain.ExecutionNode,
	env *domain.Environment,
) (domain.ResolvedInstallation, error) {
	if err := ctx.Err(); err != nil {
		return domain.ResolvedInstallation{}, err
	}

	home, err := h.forNode(ctx, node)
	if err != nil {
		return domain.ResolvedInstallation{}, err
	}

	home = forEnvironment(home, env)
	if home == "" {
		emptyErr := zerr.With(domain.ErrEmptyInstallationHome, "installation", h.inst.Name)
		return domain.ResolvedInstallation{}, zerr.With(emptyErr, "node", nodeName(node))
	}

	platform := domain.PlatformUnix
	if node != nil {
		platform = node.Platform
	}

	return domain.ResolvedInstallation{
		Name:   h.inst.Name,
		Home:   home,
		BinDir: domain.BinFolder(platform, home),
	}, nil
}

// forNode picks the home for node: a per-node override, then the configured
// home, then a nix materialization.
func (h *handle) forNode(ctx context.Context, node *domain.ExecutionNode) (string, error) {
	if node != nil {
		if home, ok := h.inst.NodeHomes[node.Name]; ok && home != "" {
			return home, nil
		}
	}
	if h.inst.Home != "" {
		return h.inst.Home, nil
	}
	if h.inst.Nix == nil {
		return "", nil
	}
	return h.materialize(ctx)
}

func (h *handle) materialize(ctx context.Context) (string, error) {
	spec := h.inst.Nix
	if h.registry.resolver == nil || h.registry.manager == nil {
		return "", zerr.With(domain.ErrNixInstallFailed, "tool", spec.String())
	}

	commit, attrPath, err := h.registry.resolver.Resolve(ctx, spec.Package, spec.Version)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve tool"), "tool", spec.String())
	}

	storePath, err := h.registry.manager.Install(ctx, attrPath, commit)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to install tool"), "tool", spec.String())
	}
	return storePath, nil
}

// forEnvironment expands $VAR and ${VAR} in home against env. Unknown
// variables are left in place so the failure shows up as a bad path.
func forEnvironment(home string, env *domain.Environment) string {
	return os.Expand(home, func(name string) string {
		if v, ok := env.Get(name); ok {
			return v
		}
		return "${" + name + "}"
	})
}

func nodeName(node *domain.ExecutionNode) string {
	if node == nil {
		return ""
	}
	return node.Name
}
