// Package launcher decorates process launchers so that build steps see a
// configured tool installation on their PATH.
package launcher

import (
	"context"
	"errors"

	"go.trai.ch/npmwrap/internal/core/domain"
	"go.trai.ch/npmwrap/internal/core/ports"
	"go.trai.ch/zerr"
)

// BuildWrapper injects one named installation into every process launched
// through the launchers it decorates.
//
// A BuildWrapper holds no per-launch state. Installation lookup, the node
// environment, and the separator are all read fresh on every launch, so a
// single wrapper may decorate launchers used concurrently.
type BuildWrapper struct {
	// InstallationName selects the installation from Registry.
	InstallationName string
	// Registry is the read-only installation registry.
	Registry ports.InstallationRegistry
	// Nodes reports each node's ambient environment and system properties.
	Nodes ports.NodeEnvironmentProvider
	// DefaultSeparator is the controller's own path-list separator. It is
	// used when the node does not advertise one.
	DefaultSeparator string
}

// NewBuildWrapper creates a BuildWrapper for the named installation.
func NewBuildWrapper(
	installationName string,
	registry ports.InstallationRegistry,
	nodes ports.NodeEnvironmentProvider,
	defaultSeparator string,
) *BuildWrapper {
	return &BuildWrapper{
		InstallationName: installationName,
		Registry:         registry,
		Nodes:            nodes,
		DefaultSeparator: defaultSeparator,
	}
}

// DecorateLauncher returns a launcher that composes the environment for node
// before delegating to inner. It fails immediately if node has been deleted.
func (w *BuildWrapper) DecorateLauncher(node *domain.ExecutionNode, inner ports.Launcher) (ports.Launcher, error) {
	if node == nil {
		return nil, domain.NewLaunchError(domain.FailureConfiguration, domain.ErrNodeDeleted)
	}
	return &decorated{wrapper: w, node: node, inner: inner}, nil
}

// Environment returns the environment a process launched on node with the
// given override lines would receive. A nil slice means no overrides.
func (w *BuildWrapper) Environment(
	ctx context.Context,
	node *domain.ExecutionNode,
	overrideLines []string,
) (*domain.Environment, error) {
	env, _, err := w.compose(ctx, node, overrideLines)
	return env, err
}

// Resolve returns the installation as it would be translated for node and the
// given override lines.
func (w *BuildWrapper) Resolve(
	ctx context.Context,
	node *domain.ExecutionNode,
	overrideLines []string,
) (domain.ResolvedInstallation, error) {
	_, resolved, err := w.compose(ctx, node, overrideLines)
	return resolved, err
}

func (w *BuildWrapper) compose(
	ctx context.Context,
	node *domain.ExecutionNode,
	overrideLines []string,
) (*domain.Environment, domain.ResolvedInstallation, error) {
	var none domain.ResolvedInstallation

	if err := ctx.Err(); err != nil {
		return nil, none, cancelled(err)
	}

	if node == nil {
		return nil, none, domain.NewLaunchError(domain.FailureConfiguration, domain.ErrNodeDeleted)
	}

	handle, ok := w.Registry.FindByName(w.InstallationName)
	if !ok {
		err := zerr.With(domain.ErrInstallationNotFound, "installation", w.InstallationName)
		return nil, none, domain.NewLaunchError(domain.FailureConfiguration, err)
	}

	baseline, err := w.Nodes.AmbientEnvironment(ctx, node)
	if err != nil {
		return nil, none, nodeFailure(ctx, node, zerr.Wrap(err, domain.ErrBaselineEnvironmentFailed.Error()))
	}

	// The installation is translated against the environment the process
	// will actually see, overrides included.
	working := domain.ApplyOverrides(baseline, overrideLines)

	resolved, err := handle.ResolveFor(ctx, node, working)
	if err != nil {
		if interrupted(ctx, err) {
			return nil, none, cancelled(err)
		}
		wrapped := zerr.Wrap(err, domain.ErrResolutionFailed.Error())
		wrapped = zerr.With(wrapped, "installation", w.InstallationName)
		wrapped = zerr.With(wrapped, "node", node.Name)
		return nil, none, domain.NewLaunchError(domain.FailureResolution, wrapped)
	}

	advertised, ok, err := w.Nodes.SystemProperty(ctx, node, domain.PropertyPathSeparator)
	if err != nil {
		return nil, none, nodeFailure(ctx, node, zerr.Wrap(err, "failed to read node system properties"))
	}
	separator := domain.SelectSeparator(w.DefaultSeparator, advertised, ok)

	return domain.PrependPath(working, resolved.BinDir, separator), resolved, nil
}

// interrupted reports whether err is the result of ctx ending. A killed child
// process surfaces as an exit error rather than ctx.Err(), so ctx is checked too.
func interrupted(ctx context.Context, err error) bool {
	return domain.IsCancellation(err) || ctx.Err() != nil
}

// nodeFailure classifies an error raised while querying node.
func nodeFailure(ctx context.Context, node *domain.ExecutionNode, err error) error {
	if interrupted(ctx, err) {
		return cancelled(err)
	}
	err = zerr.With(err, "node", node.Name)
	if errors.Is(err, domain.ErrNodeDeleted) {
		return domain.NewLaunchError(domain.FailureConfiguration, err)
	}
	return err
}

func cancelled(cause error) error {
	return domain.NewLaunchError(domain.FailureCancelled, zerr.Wrap(cause, domain.ErrLaunchCancelled.Error()))
}

type decorated struct {
	wrapper *BuildWrapper
	node    *domain.ExecutionNode
	inner   ports.Launcher
}

// Launch composes the environment and hands a copy of req, with Env replaced
// by the full composed environment, to the inner launcher.
func (d *decorated) Launch(ctx context.Context, req *domain.LaunchRequest) (ports.Process, error) {
	if req == nil {
		req = &domain.LaunchRequest{}
	}

	env, _, err := d.wrapper.compose(ctx, d.node, req.Env)
	if err != nil {
		return nil, err
	}

	out := *req
	out.Env = env.Lines()
	return d.inner.Launch(ctx, &out)
}
