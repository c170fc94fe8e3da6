package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	calendar "github.com/pattyalex/brand-journey-tracker/internal/schedule"
	scheduleservice "github.com/pattyalex/brand-journey-tracker/internal/services/schedule"
	"github.com/spf13/cobra"
)

// MoveCmd returns the schedule move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Move an item to another calendar day",
		Long: `Move an item to another day, as when dragging it on the calendar. A planned
item simply takes the new planned date. A scheduled item needs a confirmed
start time, given with --start.

Examples:
  planner schedule move 3f2a --date=2025-03-05 --start=14:00
  planner schedule move 3f2a --date=2025-04-02
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMove,
	}

	cmd.Flags().String("id", "", "Item ID or unique prefix")
	cmd.Flags().String("date", "", "Target day YYYY-MM-DD (required)")
	cmd.Flags().String("start", "", "Confirmed start time HH:MM for scheduled items")
	cmd.Flags().String("end", "", "End time HH:MM")
	_ = cmd.MarkFlagRequired("date")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveItemID(ctx, c, cli.IDArg(cmd, args))
		if err != nil {
			return f.Fail(err)
		}
		raw, _ := cmd.Flags().GetString("date")
		date, err := cli.ParseDay(raw, time.Now())
		if err != nil {
			return f.Fail(err)
		}

		res, err := c.App.ScheduleService.DropOnDate(ctx, id, date)
		if err != nil {
			return f.Fail(err)
		}

		switch res.Outcome {
		case calendar.DropUpdatePlanned:
			return reportItem(f, res.Item, "Replanned")
		case calendar.DropNeedsTime:
			start, _ := cmd.Flags().GetString("start")
			if start == "" {
				return f.FailWith("START_TIME_REQUIRED", cli.ExitUsage,
					fmt.Errorf("%q is scheduled; confirm a start time for %s", res.Item.Title, raw),
					fmt.Sprintf("Re-run with --start=%s", res.Item.StartTime))
			}
			end, _ := cmd.Flags().GetString("end")
			it, err := c.App.ScheduleService.Reschedule(ctx, scheduleservice.ScheduleRequest{
				ItemID:    id,
				Date:      res.Date,
				StartTime: start,
				EndTime:   end,
			})
			if err != nil {
				return f.Fail(err)
			}
			return reportItem(f, it, "Rescheduled")
		default:
			return f.Fail(scheduleservice.ErrNotOnCalendar)
		}
	})
}
