package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/npmwrap/internal/app"
)

func (c *CLI) newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the environment a wrapped command would receive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			installation, node, env := selectionFlags(cmd)

			composed, err := c.app.Env(cmd.Context(), app.EnvOptions{
				Installation: installation,
				Node:         node,
				Env:          env,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, line := range composed.Lines() {
				_, _ = fmt.Fprintln(w, line)
			}
			return nil
		},
	}
	addSelectionFlags(cmd)
	return cmd
}
