package schedule

import (
	"context"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/spf13/cobra"
)

// ClearCmd returns the schedule clear subcommand
func ClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear [id]",
		Short: "Remove an item's firm date",
		Long:  "Remove the firm date and times of an item. Its planned date, if any, is kept.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runClear,
	}

	cmd.Flags().String("id", "", "Item ID or unique prefix")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveItemID(ctx, c, cli.IDArg(cmd, args))
		if err != nil {
			return f.Fail(err)
		}
		it, err := c.App.ScheduleService.Unschedule(ctx, id)
		if err != nil {
			return f.Fail(err)
		}
		return reportItem(f, it, "Unscheduled")
	})
}
