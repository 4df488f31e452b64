// Package nodes describes the execution nodes a wrapped command can run on.
package nodes

import (
	"context"
	"maps"
	"os"
	"runtime"

	"go.trai.ch/npmwrap/internal/core/domain"
	"go.trai.ch/zerr"
)

type declared struct {
	node       *domain.ExecutionNode
	env        map[string]string
	properties map[string]string
}

// Provider implements ports.NodeEnvironmentProvider and ports.NodeDirectory.
// It knows the local node and every node declared in the configuration.
type Provider struct {
	local    *domain.ExecutionNode
	environ  func() []string
	order    []string
	declared map[string]declared
}

// NewProvider creates a Provider for the local machine plus defs.
func NewProvider(defs []domain.NodeDefinition) *Provider {
	p := &Provider{
		local:    domain.LocalNode(runtime.GOOS),
		environ:  os.Environ,
		declared: make(map[string]declared, len(defs)),
	}
	for _, def := range defs {
		platform := def.Platform
		if platform == "" {
			platform = domain.PlatformUnix
		}
		p.order = append(p.order, def.Name)
		p.declared[def.Name] = declared{
			node:       &domain.ExecutionNode{Name: def.Name, Platform: platform},
			env:        maps.Clone(def.Env),
			properties: maps.Clone(def.Properties),
		}
	}
	return p
}

// Node returns the node with the given name.
func (p *Provider) Node(name string) (*domain.ExecutionNode, bool) {
	if name == "" || name == domain.LocalNodeName {
		return p.local, true
	}
	d, ok := p.declared[name]
	if !ok {
		return nil, false
	}
	return d.node, true
}

// Nodes returns the local node followed by the declared nodes in file order.
func (p *Provider) Nodes() []*domain.ExecutionNode {
	out := make([]*domain.ExecutionNode, 0, len(p.order)+1)
	out = append(out, p.local)
	for _, name := range p.order {
		out = append(out, p.declared[name].node)
	}
	return out
}

// AmbientEnvironment returns a fresh copy of the node's environment.
func (p *Provider) AmbientEnvironment(ctx context.Context, node *domain.ExecutionNode) (*domain.Environment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.isLocal(node) {
		return domain.EnvironmentFromLines(p.environ()), nil
	}
	d, err := p.lookup(node)
	if err != nil {
		return nil, err
	}
	return domain.EnvironmentFromMap(d.env), nil
}

// SystemProperty returns a property advertised by the node.
// Declared nodes advertise only what the configuration lists.
func (p *Provider) SystemProperty(
	ctx context.Context,
	node *domain.ExecutionNode,
	key string,
) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if p.isLocal(node) {
		switch key {
		case domain.PropertyPathSeparator:
			return string(os.PathListSeparator), true, nil
		case domain.PropertyOSName:
			return runtime.GOOS, true, nil
		default:
			return "", false, nil
		}
	}
	d, err := p.lookup(node)
	if err != nil {
		return "", false, err
	}
	v, ok := d.properties[key]
	return v, ok, nil
}

func (p *Provider) isLocal(node *domain.ExecutionNode) bool {
	return node != nil && node.Name == p.local.Name
}

func (p *Provider) lookup(node *domain.ExecutionNode) (declared, error) {
	if node == nil {
		return declared{}, domain.ErrNodeDeleted
	}
	d, ok := p.declared[node.Name]
	if !ok {
		return declared{}, zerr.With(domain.ErrNodeDeleted, "node", node.Name)
	}
	return d, nil
}
