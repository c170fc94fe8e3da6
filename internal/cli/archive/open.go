package archive

import (
	"context"
	"fmt"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/spf13/cobra"
)

// OpenCmd returns the archive open subcommand
func OpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Ask running board watch views to show the archive panel",
		Args:  cobra.NoArgs,
		RunE:  runOpen,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runOpen(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		c.App.ArchiveService.RequestOpenPanel(ctx)
		if f.JSON {
			return f.Success("requested", true)
		}
		if !f.Quiet {
			fmt.Fprintln(f.Writer(), "✓ Archive panel requested")
		}
		return nil
	})
}
