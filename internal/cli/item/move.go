package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/reorder"
	"github.com/pattyalex/brand-journey-tracker/internal/transition"
	"github.com/spf13/cobra"
)

// MoveCmd returns the item move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move [id] <stage>",
		Short: "Move an item to a stage or position",
		Long: `Move an item to another stage, or to another position within its stage.
Items never return to ideation once they have left it. Moving to posted
archives the item and removes it from the board.

Examples:
  # Append to the end of a stage
  planner item move 3f2a scripting

  # Insert at the top of a stage
  planner item move 3f2a shooting --position 1

  # Reorder within the current stage
  planner item move 3f2a editing --position 3

  # Entering scheduling with a planned date requires a decision
  planner item move 3f2a scheduling --planned=adopt
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runMove,
	}

	cmd.Flags().String("id", "", "Item ID or unique prefix")
	cmd.Flags().Int("position", 0, "1-based position in the target stage (defaults to the end)")
	cmd.Flags().String("planned", "", "Planned date decision when entering scheduling: adopt or discard")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		rawID, stageArg := "", args[len(args)-1]
		if len(args) == 2 {
			rawID = args[0]
		} else {
			rawID, _ = cmd.Flags().GetString("id")
		}

		id, err := cli.ResolveItemID(ctx, c, rawID)
		if err != nil {
			return f.Fail(err)
		}
		to, err := cli.ParseStage(stageArg)
		if err != nil {
			return f.Fail(err)
		}
		plannedFlag, _ := cmd.Flags().GetString("planned")
		choice, err := transition.ParsePlannedDateChoice(plannedFlag)
		if err != nil {
			return f.FailWith("INVALID_PLANNED_CHOICE", cli.ExitUsage, err, "Use --planned=adopt or --planned=discard")
		}

		loc, err := c.App.BoardService.FindItem(ctx, id)
		if err != nil {
			return f.Fail(err)
		}

		// The command line is one drag gesture: pick up, hover a slot, drop
		drag := c.App.Drag
		drag.Begin(id, loc.Stage)
		position, _ := cmd.Flags().GetInt("position")
		if position > 0 {
			current := -1
			if to == loc.Stage {
				current = loc.Index
			}
			err = drag.HoverSlot(to, reorder.SlotForIndex(position-1, current))
		} else {
			err = drag.HoverEmpty(to)
		}
		if err != nil {
			drag.Cancel()
			return f.Fail(err)
		}
		if _, err := drag.Drop(ctx, choice); err != nil {
			return f.Fail(err)
		}

		after, err := c.App.BoardService.FindItem(ctx, id)
		archived := errors.Is(err, models.ErrItemNotFound)
		if err != nil && !archived {
			return f.Fail(err)
		}

		if f.Quiet {
			fmt.Fprintln(f.Writer(), id)
			return nil
		}
		if f.JSON {
			result := map[string]any{"from": loc.Stage, "archived": archived}
			if !archived {
				result["item"], result["stage"], result["index"] = after.Item, after.Stage, after.Index
			}
			return f.Success("move", result)
		}

		if archived {
			fmt.Fprintf(f.Writer(), "✓ Posted %q; it now lives in the archive\n", loc.Item.Title)
			return nil
		}
		fmt.Fprintf(f.Writer(), "✓ Moved %q from %s to %s (position %d)\n",
			after.Item.Title, models.StageTitle(loc.Stage), models.StageTitle(after.Stage), after.Index+1)
		return nil
	})
}
