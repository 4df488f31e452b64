package ports

import (
	"context"

	"go.trai.ch/npmwrap/internal/core/domain"
)

// NodeEnvironmentProvider reports what an execution node looks like at launch time.
//
//go:generate go run go.uber.org/mock/mockgen -source=node.go -destination=mocks/mock_node.go -package=mocks
type NodeEnvironmentProvider interface {
	// AmbientEnvironment returns the node's current environment. Callers get
	// a fresh copy on every call.
	AmbientEnvironment(ctx context.Context, node *domain.ExecutionNode) (*domain.Environment, error)
	// SystemProperty returns a property advertised by the node, such as
	// "path.separator". ok is false when the node does not advertise it.
	SystemProperty(ctx context.Context, node *domain.ExecutionNode, key string) (value string, ok bool, err error)
}

// NodeDirectory looks up execution nodes by name.
type NodeDirectory interface {
	// Node returns the node with the given name. A removed or unknown node reports false.
	Node(name string) (*domain.ExecutionNode, bool)
	// Nodes returns every known node, the local node first.
	Nodes() []*domain.ExecutionNode
}
