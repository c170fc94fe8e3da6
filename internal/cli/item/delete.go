package item

import (
	"context"
	"fmt"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	archiveservice "github.com/pattyalex/brand-journey-tracker/internal/services/archive"
	"github.com/spf13/cobra"
)

// DeleteCmd returns the item delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Permanently delete an item",
		Long: `Remove an item from the board without archiving it. This cannot be undone,
so --force is required. Use 'planner archive add --remove' to keep a copy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().String("id", "", "Item ID or unique prefix")
	cmd.Flags().Bool("force", false, "Confirm the permanent delete")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveItemID(ctx, c, cli.IDArg(cmd, args))
		if err != nil {
			return f.Fail(err)
		}
		force, _ := cmd.Flags().GetBool("force")

		if err := c.App.ArchiveService.Delete(ctx, archiveservice.DeleteRequest{ItemID: id, Confirm: force}); err != nil {
			return f.Fail(err)
		}

		if f.Quiet {
			fmt.Fprintln(f.Writer(), id)
			return nil
		}
		if f.JSON {
			return f.Success("deleted", id)
		}
		fmt.Fprintf(f.Writer(), "✓ Deleted %s\n", cli.ShortID(id))
		return nil
	})
}
