package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/spf13/cobra"
)

// PlanCmd returns the schedule plan subcommand
func PlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [id]",
		Short: "Set or clear an item's tentative date",
		Long: `Set a tentative planned date for an item, independent of any firm date.

Examples:
  planner schedule plan 3f2a --date=2025-04-01
  planner schedule plan 3f2a --clear
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPlan,
	}

	cmd.Flags().String("id", "", "Item ID or unique prefix")
	cmd.Flags().String("date", "", "Planned date YYYY-MM-DD, today or tomorrow")
	cmd.Flags().Bool("clear", false, "Remove the planned date")
	cmd.MarkFlagsMutuallyExclusive("date", "clear")
	cmd.MarkFlagsOneRequired("date", "clear")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runPlan(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveItemID(ctx, c, cli.IDArg(cmd, args))
		if err != nil {
			return f.Fail(err)
		}

		var date *time.Time
		if clearDate, _ := cmd.Flags().GetBool("clear"); !clearDate {
			raw, _ := cmd.Flags().GetString("date")
			day, err := cli.ParseDay(raw, time.Now())
			if err != nil {
				return f.Fail(err)
			}
			date = &day
		}

		it, err := c.App.ScheduleService.PlanDate(ctx, id, date)
		if err != nil {
			return f.Fail(err)
		}
		if date == nil && !f.JSON && !f.Quiet {
			fmt.Fprintf(f.Writer(), "✓ Cleared planned date of %q\n", it.Title)
			return nil
		}
		return reportItem(f, it, "Planned")
	})
}
