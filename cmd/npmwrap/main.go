// Package main is the entry point for npmwrap.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/npmwrap/cmd/npmwrap/commands"
	"go.trai.ch/npmwrap/internal/adapters/detector"
	"go.trai.ch/npmwrap/internal/adapters/telemetry"
	"go.trai.ch/npmwrap/internal/app"
	"go.trai.ch/npmwrap/internal/core/ports"
	_ "go.trai.ch/npmwrap/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

// modeSetter is implemented by loggers that can switch rendering at runtime.
type modeSetter interface {
	SetJSON(enable bool)
	SetCI(enable bool)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	shutdown := func(context.Context) error { return nil }
	cli := commands.New(components.App, commands.WithSetup(func(s commands.Settings) error {
		configureLogger(components.Logger, s.LogFormat)
		if s.Trace {
			shutdown = telemetry.Setup(components.Logger)
		}
		return nil
	}))
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 3. Execution
	err = cli.Execute(ctx)
	_ = shutdown(context.WithoutCancel(ctx))
	return exitCode(components.Logger, err)
}

func configureLogger(log ports.Logger, format string) {
	setter, ok := log.(modeSetter)
	if !ok {
		return
	}
	switch detector.ResolveMode(detector.DetectEnvironment(), format) {
	case detector.ModeJSON:
		setter.SetJSON(true)
	case detector.ModeCI:
		setter.SetCI(true)
	default:
	}
}

// exitCode reports the wrapped command's own status when it ran and failed.
func exitCode(log ports.Logger, err error) int {
	if err == nil {
		return 0
	}
	log.Error(err)

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
