package item

import (
	"context"
	"fmt"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	boardservice "github.com/pattyalex/brand-journey-tracker/internal/services/board"
	"github.com/spf13/cobra"
)

// UpdateCmd returns the item update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update item fields",
		Long: `Update any content field of an item. Only the flags given are changed;
the item stays in its stage.

Examples:
  planner item update 3f2a --hook="Wait for the twist"
  planner item update 3f2a --shot="wide entrance" --shot="close-up on pantry"
  planner item update 3f2a --pinned=false --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("id", "", "Item ID or unique prefix")
	cmd.Flags().String("title", "", "New title")
	addContentFlags(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveItemID(ctx, c, cli.IDArg(cmd, args))
		if err != nil {
			return f.Fail(err)
		}

		patch, err := contentPatch(cmd)
		if err != nil {
			return f.Fail(err)
		}

		it, err := c.App.BoardService.UpdateItem(ctx, boardservice.UpdateItemRequest{ItemID: id, Patch: patch})
		if err != nil {
			return f.Fail(err)
		}

		if f.Quiet || f.JSON {
			return f.Success("item", it)
		}
		fmt.Fprintf(f.Writer(), "✓ Updated %q (%s)\n", it.Title, cli.ShortID(it.ID))
		return nil
	})
}
