package app_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/npmwrap/internal/adapters/nix"
	"go.trai.ch/npmwrap/internal/adapters/telemetry"
	"go.trai.ch/npmwrap/internal/app"
	"go.trai.ch/npmwrap/internal/core/domain"
	"go.trai.ch/npmwrap/internal/core/ports"
	"go.trai.ch/npmwrap/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader   *mocks.MockConfigLoader
	launcher *mocks.MockLauncher
	logger   *mocks.MockLogger
	resolver *mocks.MockDependencyResolver
	manager  *mocks.MockPackageManager
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		launcher: mocks.NewMockLauncher(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		resolver: mocks.NewMockDependencyResolver(ctrl),
		manager:  mocks.NewMockPackageManager(ctrl),
	}
	f.app = app.New(f.loader, f.launcher, f.logger, telemetry.NewNoOpTracer(), f.resolver, f.manager).
		WithWorkDir("/work")
	return f
}

func testConfig() *domain.Config {
	return &domain.Config{
		Root:                "/work",
		DefaultInstallation: "node-18",
		Installations: []domain.Installation{
			{Name: "node-18", Home: "/opt/node-18"},
			{Name: "node-20", Home: "/opt/node-20", NodeHomes: map[string]string{"win-agent": `C:\node-20`}},
			{Name: "broken"},
		},
		Nodes: []domain.NodeDefinition{
			{
				Name:       "agent",
				Platform:   domain.PlatformUnix,
				Env:        map[string]string{"HOME": "/home/ci", "PATH": "/usr/bin"},
				Properties: map[string]string{domain.PropertyPathSeparator: ":"},
			},
			{
				Name:       "win-agent",
				Platform:   domain.PlatformWindows,
				Env:        map[string]string{"PATH": `C:\Windows`},
				Properties: map[string]string{domain.PropertyPathSeparator: ";"},
			},
		},
	}
}

func TestApp_Run(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	proc := mocks.NewMockProcess(ctrl)

	f.loader.EXPECT().Load("/work").Return(testConfig(), nil)
	f.launcher.EXPECT().
		Launch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.LaunchRequest) (ports.Process, error) {
			assert.Equal(t, []string{"npm", "ci"}, req.Command)
			assert.Equal(t, "/work/app", req.Dir)
			assert.Equal(t, []string{
				"HOME=/home/ci",
				"PATH=/opt/node-18/bin:/usr/bin",
				"NODE_ENV=production",
			}, req.Env)
			_, _ = req.Stdout.Write([]byte("added 1 package\n"))
			return proc, nil
		})
	proc.EXPECT().Wait().Return(nil)

	var stdout bytes.Buffer
	err := f.app.Run(context.Background(), app.RunOptions{
		Node:    "agent",
		Env:     []string{"NODE_ENV=production"},
		Command: []string{"npm", "ci"},
		Dir:     "/work/app",
		Stdout:  &stdout,
	})
	require.NoError(t, err)
	assert.Equal(t, "added 1 package\n", stdout.String())
}

func TestApp_Run_ExplicitInstallationOnWindows(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	proc := mocks.NewMockProcess(ctrl)

	f.loader.EXPECT().Load("/work").Return(testConfig(), nil)
	f.launcher.EXPECT().
		Launch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.LaunchRequest) (ports.Process, error) {
			assert.Equal(t, []string{`PATH=C:\node-20;C:\Windows`}, req.Env)
			assert.Nil(t, req.Stdout)
			return proc, nil
		})
	proc.EXPECT().Wait().Return(nil)

	err := f.app.Run(context.Background(), app.RunOptions{
		Installation: "node-20",
		Node:         "win-agent",
		Command:      []string{"npm.cmd", "test"},
	})
	require.NoError(t, err)
}

func TestApp_Run_ProcessFailure(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	proc := mocks.NewMockProcess(ctrl)

	exitErr := errors.New("exit status 1")
	f.loader.EXPECT().Load("/work").Return(testConfig(), nil)
	f.launcher.EXPECT().Launch(gomock.Any(), gomock.Any()).Return(proc, nil)
	proc.EXPECT().Wait().Return(exitErr)

	err := f.app.Run(context.Background(), app.RunOptions{Node: "agent", Command: []string{"npm", "test"}})
	require.ErrorIs(t, err, exitErr)
}

func TestApp_Run_RecordsSpan(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	inner := mocks.NewMockLauncher(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)

	a := app.New(loader, inner, mocks.NewMockLogger(ctrl), tracer, nil, nil)

	loader.EXPECT().Load(".").Return(testConfig(), nil)
	tracer.EXPECT().
		Start(gomock.Any(), "run", gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, opts ...ports.SpanOption) (context.Context, ports.Span) {
			cfg := &ports.SpanConfig{}
			for _, opt := range opts {
				opt(cfg)
			}
			assert.Equal(t, "node-18", cfg.Attributes["installation"])
			assert.Equal(t, "ghost", cfg.Attributes["node"])
			return ctx, span
		})
	span.EXPECT().RecordError(gomock.Not(gomock.Nil()))
	span.EXPECT().End()

	err := a.Run(context.Background(), app.RunOptions{Node: "ghost", Command: []string{"npm"}})
	require.Error(t, err)
	assert.Equal(t, domain.FailureConfiguration, domain.FailureKindOf(err))
	assert.Contains(t, err.Error(), "execution node unavailable")
}

func TestApp_Run_InstallationNotFound(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("/work").Return(testConfig(), nil)

	err := f.app.Run(context.Background(), app.RunOptions{
		Installation: "node-v18",
		Command:      []string{"npm"},
	})
	require.Error(t, err)

	var launchErr *domain.LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, domain.FailureConfiguration, launchErr.Kind)
	assert.Contains(t, err.Error(), domain.ErrInstallationNotFound.Error())
}

func TestApp_Run_InputErrors(t *testing.T) {
	t.Run("empty command", func(t *testing.T) {
		f := newFixture(t)
		err := f.app.Run(context.Background(), app.RunOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrEmptyCommand.Error())
	})

	t.Run("bad override", func(t *testing.T) {
		f := newFixture(t)
		err := f.app.Run(context.Background(), app.RunOptions{Command: []string{"npm"}, Env: []string{"NOEQUALS"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrInvalidEnvOverride.Error())
	})

	t.Run("no installation selected", func(t *testing.T) {
		f := newFixture(t)
		cfg := testConfig()
		cfg.DefaultInstallation = ""
		f.loader.EXPECT().Load("/work").Return(cfg, nil)

		err := f.app.Run(context.Background(), app.RunOptions{Command: []string{"npm"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrNoInstallationSelected.Error())
	})

	t.Run("config load failure", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load("/work").Return(nil, domain.ErrConfigNotFound)

		err := f.app.Run(context.Background(), app.RunOptions{Command: []string{"npm"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load configuration")
	})
}

func TestApp_Env(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("/work").Return(testConfig(), nil)

	env, err := f.app.Env(context.Background(), app.EnvOptions{
		Node: "agent",
		Env:  []string{"PATH=/custom/bin"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"HOME=/home/ci", "PATH=/opt/node-18/bin:/custom/bin"}, env.Lines())
}

func TestApp_Env_Cancelled(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("/work").Return(testConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.app.Env(ctx, app.EnvOptions{Node: "agent"})
	require.Error(t, err)
	assert.Equal(t, domain.FailureCancelled, domain.FailureKindOf(err))
}

func TestApp_Env_InterruptedNixBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	resolver := mocks.NewMockDependencyResolver(ctrl)

	cfg := testConfig()
	cfg.Installations = append(cfg.Installations, domain.Installation{
		Name: "node-nix",
		Nix:  &domain.ToolSpec{Package: "nodejs", Version: "18.17.0"},
	})
	loader.EXPECT().Load("/work").Return(cfg, nil)
	resolver.EXPECT().Resolve(gomock.Any(), "nodejs", "18.17.0").Return("commit123", "nodejs_18", nil)

	// The build is a real process, so cancellation kills it.
	manager := nix.NewManagerWithRunner(t.TempDir(), func(ctx context.Context, _ string, _ ...string) ([]byte, error) {
		return exec.CommandContext(ctx, "sleep", "5").Output()
	})
	a := app.New(loader, mocks.NewMockLauncher(ctrl), mocks.NewMockLogger(ctrl), telemetry.NewNoOpTracer(), resolver, manager).
		WithWorkDir("/work")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := a.Env(ctx, app.EnvOptions{Installation: "node-nix"})
	require.Error(t, err)
	assert.Equal(t, domain.FailureCancelled, domain.FailureKindOf(err))
}

func TestApp_Installations(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	cfg.Installations = append(cfg.Installations, domain.Installation{
		Name: "node-nix",
		Nix:  &domain.ToolSpec{Package: "nodejs", Version: "18.17.0"},
	})
	f.loader.EXPECT().Load("/work").Return(cfg, nil)

	infos, err := f.app.Installations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []app.InstallationInfo{
		{Name: "node-18", Home: "/opt/node-18", Default: true},
		{Name: "node-20", Home: "/opt/node-20"},
		{Name: "broken"},
		{Name: "node-nix", Nix: "nodejs@18.17.0"},
	}, infos)
}

func TestApp_Check(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("/work").Return(testConfig(), nil)
	f.logger.EXPECT().Warn(`installation "broken" cannot be resolved on node "agent"`)

	results, err := f.app.Check(context.Background(), app.CheckOptions{Node: "agent"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInstallationCheckFailed.Error())

	require.Len(t, results, 3)
	assert.Equal(t, "node-18", results[0].Installation)
	assert.Equal(t, "/opt/node-18/bin", results[0].Resolved.BinDir)
	assert.NoError(t, results[0].Err)

	assert.Equal(t, "node-20", results[1].Installation)
	assert.Equal(t, "/opt/node-20/bin", results[1].Resolved.BinDir)
	assert.NoError(t, results[1].Err)

	assert.Equal(t, "broken", results[2].Installation)
	require.Error(t, results[2].Err)
	assert.Equal(t, domain.FailureResolution, domain.FailureKindOf(results[2].Err))
}

func TestApp_Check_Subset(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("/work").Return(testConfig(), nil)

	results, err := f.app.Check(context.Background(), app.CheckOptions{
		Node:          "win-agent",
		Installations: []string{"node-20"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "win-agent", results[0].Node)
	assert.Equal(t, `C:\node-20`, results[0].Resolved.BinDir)
}

func TestApp_Check_Nix(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	cfg.Installations = []domain.Installation{{
		Name: "node-nix",
		Nix:  &domain.ToolSpec{Package: "nodejs", Version: "18.17.0"},
	}}
	f.loader.EXPECT().Load("/work").Return(cfg, nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), "nodejs", "18.17.0").Return("commit123", "nodejs_18", nil)
	f.manager.EXPECT().Install(gomock.Any(), "nodejs_18", "commit123").Return("/nix/store/abc-nodejs", nil)

	results, err := f.app.Check(context.Background(), app.CheckOptions{Node: "agent"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "/nix/store/abc-nodejs/bin", results[0].Resolved.BinDir)
}
