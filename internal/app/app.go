// Package app implements the application layer for npmwrap.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"go.trai.ch/npmwrap/internal/adapters/nodes" //nolint:depguard // Built per call from the loaded config
	"go.trai.ch/npmwrap/internal/adapters/tools" //nolint:depguard // Built per call from the loaded config
	"go.trai.ch/npmwrap/internal/core/domain"
	"go.trai.ch/npmwrap/internal/core/ports"
	"go.trai.ch/npmwrap/internal/engine/launcher"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	launcher     ports.Launcher
	logger       ports.Logger
	tracer       ports.Tracer
	resolver     ports.DependencyResolver
	manager      ports.PackageManager
	separator    string
	workDir      string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	inner ports.Launcher,
	log ports.Logger,
	tracer ports.Tracer,
	resolver ports.DependencyResolver,
	manager ports.PackageManager,
) *App {
	return &App{
		configLoader: loader,
		launcher:     inner,
		logger:       log,
		tracer:       tracer,
		resolver:     resolver,
		manager:      manager,
		separator:    string(os.PathListSeparator),
		workDir:      ".",
	}
}

// WithWorkDir sets the directory from which the configuration is searched.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Installation overrides the configured wrapper installation.
	Installation string
	// Node names the execution node. Empty means the local node.
	Node string
	// Env holds NAME=value overrides applied before PATH is composed.
	Env []string
	// Command is the program followed by its arguments.
	Command []string
	// Dir is the working directory of the process.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// EnvOptions configuration for the Env method.
type EnvOptions struct {
	Installation string
	Node         string
	Env          []string
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	// Node names the execution node. Empty means the local node.
	Node string
	// Installations limits the check. Empty means every installation.
	Installations []string
}

// CheckResult is the outcome of resolving one installation.
type CheckResult struct {
	Installation string
	Node         string
	Resolved     domain.ResolvedInstallation
	Err          error
}

// InstallationInfo describes a configured installation.
type InstallationInfo struct {
	Name    string
	Home    string
	Nix     string
	Default bool
}

// session is everything a single command needs, built from a fresh config load.
type session struct {
	cfg      *domain.Config
	registry *tools.Registry
	nodes    *nodes.Provider
}

func (a *App) load() (*session, error) {
	cfg, err := a.configLoader.Load(a.workDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return &session{
		cfg:      cfg,
		registry: tools.NewRegistry(cfg.Installations, a.resolver, a.manager),
		nodes:    nodes.NewProvider(cfg.Nodes),
	}, nil
}

func (s *session) installation(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if s.cfg.DefaultInstallation != "" {
		return s.cfg.DefaultInstallation, nil
	}
	return "", domain.ErrNoInstallationSelected
}

// node returns nil for an unknown name so the wrapper reports it as deleted.
func (s *session) node(name string) *domain.ExecutionNode {
	node, ok := s.nodes.Node(name)
	if !ok {
		return nil
	}
	return node
}

func (a *App) wrapper(s *session, installation string) *launcher.BuildWrapper {
	return launcher.NewBuildWrapper(installation, s.registry, s.nodes, a.separator)
}

// Run launches opts.Command with the selected installation injected and waits for it.
func (a *App) Run(ctx context.Context, opts RunOptions) (err error) {
	if len(opts.Command) == 0 {
		return domain.ErrEmptyCommand
	}
	if err := validateOverrides(opts.Env); err != nil {
		return err
	}

	s, err := a.load()
	if err != nil {
		return err
	}
	name, err := s.installation(opts.Installation)
	if err != nil {
		return err
	}

	ctx, span := a.tracer.Start(ctx, "run",
		ports.WithAttribute("installation", name),
		ports.WithAttribute("node", nodeLabel(opts.Node)),
		ports.WithAttribute("command", opts.Command),
	)
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	decorated, err := a.wrapper(s, name).DecorateLauncher(s.node(opts.Node), a.launcher)
	if err != nil {
		return withNode(err, opts.Node)
	}

	req := &domain.LaunchRequest{
		Command: opts.Command,
		Dir:     opts.Dir,
		Env:     opts.Env,
		Stderr:  opts.Stderr,
	}
	if opts.Stdout != nil {
		req.Stdout = io.MultiWriter(opts.Stdout, span)
	}

	proc, err := decorated.Launch(ctx, req)
	if err != nil {
		return err
	}
	return proc.Wait()
}

// Env returns the environment a launch with opts would receive.
func (a *App) Env(ctx context.Context, opts EnvOptions) (*domain.Environment, error) {
	if err := validateOverrides(opts.Env); err != nil {
		return nil, err
	}

	s, err := a.load()
	if err != nil {
		return nil, err
	}
	name, err := s.installation(opts.Installation)
	if err != nil {
		return nil, err
	}

	env, err := a.wrapper(s, name).Environment(ctx, s.node(opts.Node), opts.Env)
	if err != nil {
		return nil, withNode(err, opts.Node)
	}
	return env, nil
}

// Installations lists the configured installations in file order.
func (a *App) Installations(_ context.Context) ([]InstallationInfo, error) {
	s, err := a.load()
	if err != nil {
		return nil, err
	}

	infos := make([]InstallationInfo, 0, len(s.cfg.Installations))
	for _, inst := range s.cfg.Installations {
		info := InstallationInfo{
			Name:    inst.Name,
			Home:    inst.Home,
			Default: inst.Name == s.cfg.DefaultInstallation,
		}
		if inst.Nix != nil {
			info.Nix = inst.Nix.String()
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Check resolves installations for a node concurrently. Results keep the
// configuration order. A failing installation does not stop the others.
func (a *App) Check(ctx context.Context, opts CheckOptions) ([]CheckResult, error) {
	s, err := a.load()
	if err != nil {
		return nil, err
	}

	names := opts.Installations
	if len(names) == 0 {
		names = s.registry.Names()
	}
	node := s.node(opts.Node)

	results := make([]CheckResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, name := range names {
		g.Go(func() error {
			results[i] = a.checkOne(gctx, s, name, node, opts.Node)
			// Cancellation stops the remaining checks; resolution failures do not.
			if domain.FailureKindOf(results[i].Err) == domain.FailureCancelled {
				return results[i].Err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	var failed []string
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Installation)
		}
	}
	if len(failed) > 0 {
		return results, zerr.With(domain.ErrInstallationCheckFailed, "failed", strings.Join(failed, ", "))
	}
	return results, nil
}

func (a *App) checkOne(
	ctx context.Context,
	s *session,
	name string,
	node *domain.ExecutionNode,
	nodeName string,
) CheckResult {
	ctx, span := a.tracer.Start(ctx, "check "+name,
		ports.WithAttribute("installation", name),
		ports.WithAttribute("node", nodeLabel(nodeName)),
	)
	defer span.End()

	resolved, err := a.wrapper(s, name).Resolve(ctx, node, nil)
	if err != nil {
		err = withNode(err, nodeName)
		span.RecordError(err)
		a.logger.Warn(fmt.Sprintf("installation %q cannot be resolved on node %q", name, nodeLabel(nodeName)))
	} else {
		span.SetAttribute("bin_dir", resolved.BinDir)
	}

	return CheckResult{
		Installation: name,
		Node:         nodeLabel(nodeName),
		Resolved:     resolved,
		Err:          err,
	}
}

func validateOverrides(lines []string) error {
	for _, line := range lines {
		name, _, ok := strings.Cut(line, "=")
		if !ok || name == "" {
			return zerr.With(domain.ErrInvalidEnvOverride, "override", line)
		}
	}
	return nil
}

// withNode names the requested node on deleted-node failures, since the
// wrapper only ever sees nil for it.
func withNode(err error, name string) error {
	if name != "" && errors.Is(err, domain.ErrNodeDeleted) {
		return zerr.With(zerr.Wrap(err, "execution node unavailable"), "node", name)
	}
	return err
}

func nodeLabel(name string) string {
	if name == "" {
		return domain.LocalNodeName
	}
	return name
}
