package archive

import (
	"context"
	"fmt"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/spf13/cobra"
)

// AddCmd returns the archive add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [id]",
		Short: "Record a board item in the archive",
		Long: `Record a copy of a board item in the archive. The item stays on the board
unless --remove is given.

Examples:
  planner archive add 3f2a
  planner archive add 3f2a --remove --quiet
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().String("id", "", "Item ID or unique prefix")
	cmd.Flags().Bool("remove", false, "Remove the item from the board")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveItemID(ctx, c, cli.IDArg(cmd, args))
		if err != nil {
			return f.Fail(err)
		}

		record := c.App.ArchiveService.Archive
		if remove, _ := cmd.Flags().GetBool("remove"); remove {
			record = c.App.ArchiveService.ArchiveAndRemove
		}
		entry, err := record(ctx, id)
		if err != nil {
			return f.Fail(err)
		}

		if f.JSON || f.Quiet {
			return f.Success("entry", entry)
		}
		fmt.Fprintf(f.Writer(), "✓ Archived %q as %s\n", entry.Title, cli.ShortID(entry.ID))
		return nil
	})
}
