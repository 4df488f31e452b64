package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/npmwrap/internal/app"
	"go.trai.ch/npmwrap/internal/ui/output"
	"go.trai.ch/npmwrap/internal/ui/style"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [installations...]",
		Short: "Resolve installations for a node and report where their tools live",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			node, _ := cmd.Flags().GetString("node")

			results, err := c.app.Check(cmd.Context(), app.CheckOptions{
				Node:          node,
				Installations: args,
			})

			out := output.New(cmd.OutOrStdout())
			width := 0
			for _, r := range results {
				width = max(width, len(r.Installation))
			}
			for _, r := range results {
				name := fmt.Sprintf("%-*s", width, r.Installation)
				if r.Err != nil {
					msg, _, _ := strings.Cut(r.Err.Error(), "\n")
					_, _ = fmt.Fprintf(out, "%s %s  %s\n", style.Paint(out, style.Red, style.Cross), name, msg)
					continue
				}
				_, _ = fmt.Fprintf(out, "%s %s  %s\n", style.Paint(out, style.Green, style.Check), name, r.Resolved.BinDir)
			}
			return err
		},
	}
	cmd.Flags().StringP("node", "n", "", "Execution node (defaults to the local node)")
	return cmd
}
