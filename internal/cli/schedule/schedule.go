package schedule

import (
	"github.com/spf13/cobra"
)

// ScheduleCmd returns the schedule parent command
func ScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Plan and schedule items on the calendar",
	}

	cmd.AddCommand(SetCmd())
	cmd.AddCommand(ClearCmd())
	cmd.AddCommand(PlanCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(CalendarCmd())

	return cmd
}
