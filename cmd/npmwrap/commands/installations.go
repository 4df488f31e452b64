package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/npmwrap/internal/ui/output"
	"go.trai.ch/npmwrap/internal/ui/style"
)

func (c *CLI) newInstallationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "installations",
		Aliases: []string{"ls"},
		Short:   "List configured installations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := c.app.Installations(cmd.Context())
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			width := 0
			for _, info := range infos {
				width = max(width, len(info.Name))
			}

			for _, info := range infos {
				marker := " "
				if info.Default {
					marker = style.Paint(out, style.Green, "*")
				}

				source := style.Paint(out, style.Slate, "(no home)")
				switch {
				case info.Home != "":
					source = info.Home
				case info.Nix != "":
					source = "nix " + info.Nix
				}

				name := style.Paint(out, style.Iris, fmt.Sprintf("%-*s", width, info.Name))
				_, _ = fmt.Fprintf(out, "%s %s  %s\n", marker, name, source)
			}
			return nil
		},
	}
}
