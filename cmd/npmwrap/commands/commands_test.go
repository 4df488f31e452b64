package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/npmwrap/cmd/npmwrap/commands"
	"go.trai.ch/npmwrap/internal/app"
	"go.trai.ch/npmwrap/internal/build"
	"go.trai.ch/npmwrap/internal/core/domain"
)

type mockApp struct {
	runFunc           func(ctx context.Context, opts app.RunOptions) error
	envFunc           func(ctx context.Context, opts app.EnvOptions) (*domain.Environment, error)
	installationsFunc func(ctx context.Context) ([]app.InstallationInfo, error)
	checkFunc         func(ctx context.Context, opts app.CheckOptions) ([]app.CheckResult, error)
}

func (m *mockApp) Run(ctx context.Context, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Env(ctx context.Context, opts app.EnvOptions) (*domain.Environment, error) {
	if m.envFunc != nil {
		return m.envFunc(ctx, opts)
	}
	return domain.NewEnvironment(), nil
}

func (m *mockApp) Installations(ctx context.Context) ([]app.InstallationInfo, error) {
	if m.installationsFunc != nil {
		return m.installationsFunc(ctx)
	}
	return nil, nil
}

func (m *mockApp) Check(ctx context.Context, opts app.CheckOptions) ([]app.CheckResult, error) {
	if m.checkFunc != nil {
		return m.checkFunc(ctx, opts)
	}
	return nil, nil
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.RunOptions
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				called = true
				return nil
			},
		}

		_, err := execute(t, mock,
			"run", "-i", "node-20", "--node", "agent", "-e", "CI=true", "-e", "FOO=bar", "-C", "web",
			"--", "npm", "run", "build", "--verbose")
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "node-20", captured.Installation)
		assert.Equal(t, "agent", captured.Node)
		assert.Equal(t, []string{"CI=true", "FOO=bar"}, captured.Env)
		assert.Equal(t, "web", captured.Dir)
		assert.Equal(t, []string{"npm", "run", "build", "--verbose"}, captured.Command)
		assert.NotNil(t, captured.Stdout)
		assert.NotNil(t, captured.Stderr)
	})

	t.Run("command flags stay with the command", func(t *testing.T) {
		var captured app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				return nil
			},
		}

		_, err := execute(t, mock, "run", "npm", "-e", "x")
		require.NoError(t, err)
		assert.Equal(t, []string{"npm", "-e", "x"}, captured.Command)
		assert.Empty(t, captured.Env)
	})

	t.Run("json mode leaves output to the launcher", func(t *testing.T) {
		var captured app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				return nil
			},
		}

		_, err := execute(t, mock, "--log-format", "json", "run", "--", "npm", "ci")
		require.NoError(t, err)
		assert.Nil(t, captured.Stdout)
		assert.Nil(t, captured.Stderr)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "run", "--", "npm", "ci")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no command provided", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		out, err := execute(t, mock, "run")
		require.NoError(t, err)
		assert.Contains(t, out, "Usage:")
	})
}

func TestCommands_Env(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var captured app.EnvOptions
	mock := &mockApp{
		envFunc: func(_ context.Context, opts app.EnvOptions) (*domain.Environment, error) {
			captured = opts
			return domain.EnvironmentFromLines([]string{
				"HOME=/home/ci",
				"PATH=/opt/node-18/bin:/usr/bin",
				"CI=true",
			}), nil
		},
	}

	out, err := execute(t, mock, "env", "--installation", "node-18", "-n", "agent", "-e", "CI=true")
	require.NoError(t, err)
	assert.Equal(t, app.EnvOptions{Installation: "node-18", Node: "agent", Env: []string{"CI=true"}}, captured)

	g := goldie.New(t)
	g.Assert(t, "env", []byte(out))
}

func TestCommands_EnvError(t *testing.T) {
	mock := &mockApp{
		envFunc: func(_ context.Context, _ app.EnvOptions) (*domain.Environment, error) {
			return nil, domain.ErrInstallationNotFound
		},
	}

	out, err := execute(t, mock, "env")
	require.ErrorIs(t, err, domain.ErrInstallationNotFound)
	assert.Empty(t, out)
}

func TestCommands_Installations(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	mock := &mockApp{
		installationsFunc: func(_ context.Context) ([]app.InstallationInfo, error) {
			return []app.InstallationInfo{
				{Name: "node-18", Home: "/opt/node-18", Default: true},
				{Name: "node-20-nix", Nix: "nodejs@20.11.0"},
				{Name: "empty"},
			}, nil
		},
	}

	out, err := execute(t, mock, "installations")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "installations", []byte(out))
}

func TestCommands_Check(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	t.Run("all resolved", func(t *testing.T) {
		var captured app.CheckOptions
		mock := &mockApp{
			checkFunc: func(_ context.Context, opts app.CheckOptions) ([]app.CheckResult, error) {
				captured = opts
				return []app.CheckResult{
					{
						Installation: "node-18",
						Node:         "agent",
						Resolved:     domain.ResolvedInstallation{Name: "node-18", Home: "/opt/node-18", BinDir: "/opt/node-18/bin"},
					},
					{
						Installation: "node-20",
						Node:         "agent",
						Resolved:     domain.ResolvedInstallation{Name: "node-20", Home: "/opt/node-20", BinDir: "/opt/node-20/bin"},
					},
				}, nil
			},
		}

		out, err := execute(t, mock, "check", "--node", "agent", "node-18", "node-20")
		require.NoError(t, err)
		assert.Equal(t, app.CheckOptions{Node: "agent", Installations: []string{"node-18", "node-20"}}, captured)

		g := goldie.New(t)
		g.Assert(t, "check_ok", []byte(out))
	})

	t.Run("reports failures and returns the error", func(t *testing.T) {
		mock := &mockApp{
			checkFunc: func(_ context.Context, _ app.CheckOptions) ([]app.CheckResult, error) {
				return []app.CheckResult{
					{
						Installation: "node-18",
						Node:         "built-in",
						Resolved:     domain.ResolvedInstallation{Name: "node-18", Home: "/opt/node-18", BinDir: "/opt/node-18/bin"},
					},
					{
						Installation: "broken",
						Node:         "built-in",
						Err:          errors.New("installation home is empty"),
					},
				}, domain.ErrInstallationCheckFailed
			},
		}

		out, err := execute(t, mock, "check")
		require.ErrorIs(t, err, domain.ErrInstallationCheckFailed)

		g := goldie.New(t)
		g.Assert(t, "check_failed", []byte(out))
	})
}

func TestCommands_Setup(t *testing.T) {
	var got commands.Settings
	calls := 0
	cli := commands.New(&mockApp{}, commands.WithSetup(func(s commands.Settings) error {
		got = s
		calls++
		return nil
	}))
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"--log-format", "ci", "--trace", "installations"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, 1, calls)
	assert.Equal(t, commands.Settings{LogFormat: "ci", Trace: true}, got)
}

func TestCommands_SetupError(t *testing.T) {
	mock := &mockApp{
		installationsFunc: func(_ context.Context) ([]app.InstallationInfo, error) {
			panic("should not be called")
		},
	}
	cli := commands.New(mock, commands.WithSetup(func(commands.Settings) error {
		return errors.New("setup failed")
	}))
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"installations"})

	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup failed")
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)

	assert.Contains(t, out, build.Version)
	assert.Contains(t, out, "commit: "+build.Commit)
}

func TestCommands_VersionFlag(t *testing.T) {
	out, err := execute(t, &mockApp{}, "--version")
	require.NoError(t, err)

	assert.Equal(t, "npmwrap version dev (commit: none, date: unknown)\n", out)
}
