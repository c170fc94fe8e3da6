package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	scheduleservice "github.com/pattyalex/brand-journey-tracker/internal/services/schedule"
	"github.com/spf13/cobra"
)

// SetCmd returns the schedule set subcommand
func SetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [id]",
		Short: "Commit an item to a firm date and time",
		Long: `Commit an item to a calendar slot. The end time defaults to the start plus
the configured slot length. A planned date is left untouched.

Examples:
  planner schedule set 3f2a --date=2025-03-05 --start=14:00
  planner schedule set 3f2a --date=tomorrow --start=09:30 --end=11:00 --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSet,
	}

	cmd.Flags().String("id", "", "Item ID or unique prefix")
	cmd.Flags().String("date", "", "Date YYYY-MM-DD, today or tomorrow (required)")
	if err := cmd.MarkFlagRequired("date"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("start", "", "Start time HH:MM (defaults to the configured start)")
	cmd.Flags().String("end", "", "End time HH:MM")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveItemID(ctx, c, cli.IDArg(cmd, args))
		if err != nil {
			return f.Fail(err)
		}
		rawDate, _ := cmd.Flags().GetString("date")
		date, err := cli.ParseDay(rawDate, time.Now())
		if err != nil {
			return f.Fail(err)
		}
		start, _ := cmd.Flags().GetString("start")
		if start == "" {
			start = c.App.Config.Workflow.DefaultStartTime
		}
		end, _ := cmd.Flags().GetString("end")

		it, err := c.App.ScheduleService.Schedule(ctx, scheduleservice.ScheduleRequest{
			ItemID:    id,
			Date:      date,
			StartTime: start,
			EndTime:   end,
		})
		if err != nil {
			return f.Fail(err)
		}
		return reportItem(f, it, "Scheduled")
	})
}

// reportItem prints the calendar state of an item after a change
func reportItem(f *cli.OutputFormatter, it models.Item, verb string) error {
	if f.Quiet || f.JSON {
		return f.Success("item", it)
	}
	switch {
	case it.IsScheduled():
		fmt.Fprintf(f.Writer(), "✓ %s %q on %s %s-%s\n", verb, it.Title,
			models.DateKey(*it.ScheduledDate), it.StartTime, it.EndTime)
	case it.IsPlanned():
		fmt.Fprintf(f.Writer(), "✓ %s %q, planned for %s\n", verb, it.Title, models.DateKey(*it.PlannedDate))
	default:
		fmt.Fprintf(f.Writer(), "✓ %s %q, not on the calendar\n", verb, it.Title)
	}
	return nil
}
