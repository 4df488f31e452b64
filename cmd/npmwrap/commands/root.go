// Package commands implements the CLI commands for npmwrap.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/npmwrap/internal/app"
	"go.trai.ch/npmwrap/internal/build"
	"go.trai.ch/npmwrap/internal/core/domain"
)

// CLI represents the command line interface for npmwrap.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	setup    func(Settings) error
	settings Settings
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Env(ctx context.Context, opts app.EnvOptions) (*domain.Environment, error)
	Installations(ctx context.Context) ([]app.InstallationInfo, error)
	Check(ctx context.Context, opts app.CheckOptions) ([]app.CheckResult, error)
}

// Settings are the global flags, handed to the setup hook before any command runs.
type Settings struct {
	// LogFormat is one of auto, pretty, ci or json.
	LogFormat string
	// Trace reports each traced operation when it finishes.
	Trace bool
}

// Option configures a CLI.
type Option func(*CLI)

// WithSetup registers fn to run with the parsed global flags.
func WithSetup(fn func(Settings) error) Option {
	return func(c *CLI) {
		c.setup = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "npmwrap",
		Short:         "Run build steps with a configured Node.js installation on PATH",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(versionLine())
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentFlags().StringVar(&c.settings.LogFormat, "log-format", "auto",
		"Log format: auto, pretty, ci, or json")
	rootCmd.PersistentFlags().BoolVar(&c.settings.Trace, "trace", false,
		"Report how long each operation took")
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if c.setup == nil {
			return nil
		}
		return c.setup(c.settings)
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newEnvCmd())
	rootCmd.AddCommand(c.newInstallationsCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// addSelectionFlags registers the installation, node and env flags shared by run and env.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("installation", "i", "", "Installation to inject (defaults to wrapper.installation)")
	cmd.Flags().StringP("node", "n", "", "Execution node (defaults to the local node)")
	cmd.Flags().StringArrayP("env", "e", nil, "Environment override NAME=value, applied before PATH is composed")
}

func selectionFlags(cmd *cobra.Command) (installation, node string, env []string) {
	installation, _ = cmd.Flags().GetString("installation")
	node, _ = cmd.Flags().GetString("node")
	env, _ = cmd.Flags().GetStringArray("env")
	return installation, node, env
}
