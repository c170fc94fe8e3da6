package archive

import (
	"context"
	"fmt"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/spf13/cobra"
)

// RepurposeCmd returns the archive repurpose subcommand
func RepurposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repurpose [entry]",
		Short: "Start a new item from an archive entry's content",
		Long: `Copy the content of an archive entry into a new ideation item. The entry
stays in the archive; production progress and dates start over.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRepurpose,
	}

	cmd.Flags().String("id", "", "Archive entry ID or unique prefix")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runRepurpose(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		entryID, err := cli.ResolveArchiveID(ctx, c, cli.IDArg(cmd, args))
		if err != nil {
			return f.Fail(err)
		}
		it, err := c.App.ArchiveService.Repurpose(ctx, entryID)
		if err != nil {
			return f.Fail(err)
		}

		if f.JSON || f.Quiet {
			return f.Success("item", it)
		}
		fmt.Fprintf(f.Writer(), "✓ Repurposed %q as %s\n", it.Title, cli.ShortID(it.ID))
		return nil
	})
}
