package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/npmwrap/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] -- command [args...]",
		Short: "Run a command with the installation's bin directory on PATH",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			installation, node, env := selectionFlags(cmd)
			dir, _ := cmd.Flags().GetString("dir")

			opts := app.RunOptions{
				Installation: installation,
				Node:         node,
				Env:          env,
				Command:      args,
				Dir:          dir,
			}
			// In JSON mode output goes through the logger so every line is a record.
			if c.settings.LogFormat != "json" {
				opts.Stdout = cmd.OutOrStdout()
				opts.Stderr = cmd.ErrOrStderr()
			}

			return c.app.Run(cmd.Context(), opts)
		},
	}
	addSelectionFlags(cmd)
	cmd.Flags().StringP("dir", "C", "", "Working directory for the command")
	// Everything after the command name belongs to the command.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
