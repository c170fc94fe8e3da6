package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/cli/styles"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	calendar "github.com/pattyalex/brand-journey-tracker/internal/schedule"
	"github.com/spf13/cobra"
)

// defaultSpan is the number of days shown when --to is omitted
const defaultSpan = 7

// CalendarCmd returns the schedule calendar subcommand
func CalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show scheduled and planned items by day",
		Long: `Show the calendar between two days, inclusive. Only days with items are
listed. Defaults to the seven days starting today.

Examples:
  planner schedule calendar
  planner schedule calendar --from=2025-03-01 --to=2025-03-31 --json
`,
		Args: cobra.NoArgs,
		RunE: runCalendar,
	}

	cmd.Flags().String("from", "", "First day YYYY-MM-DD (default today)")
	cmd.Flags().String("to", "", "Last day YYYY-MM-DD (default six days after --from)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runCalendar(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		from, to, err := calendarRange(cmd, time.Now())
		if err != nil {
			return f.Fail(err)
		}
		days, err := c.App.ScheduleService.Calendar(ctx, from, to)
		if err != nil {
			return f.Fail(err)
		}

		if f.JSON {
			return f.Success("days", days)
		}
		if f.Quiet {
			for _, d := range days {
				fmt.Fprintln(f.Writer(), d.Date)
			}
			return nil
		}

		styles.Init(c.App.Config.ColorScheme)
		fmt.Fprintln(f.Writer(), renderCalendar(days, from, to))
		return nil
	})
}

func calendarRange(cmd *cobra.Command, now time.Time) (time.Time, time.Time, error) {
	rawFrom, _ := cmd.Flags().GetString("from")
	rawTo, _ := cmd.Flags().GetString("to")

	from := models.DateOnly(now)
	if rawFrom != "" {
		d, err := cli.ParseDay(rawFrom, now)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = d
	}
	to := from.AddDate(0, 0, defaultSpan-1)
	if rawTo != "" {
		d, err := cli.ParseDay(rawTo, now)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = d
	}
	return from, to, nil
}

func renderCalendar(days []calendar.Day, from, to time.Time) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Calendar %s to %s", models.DateKey(from), models.DateKey(to))))
	b.WriteString("\n")
	if len(days) == 0 {
		b.WriteString(styles.SubtitleStyle.Render("Nothing on the calendar"))
		return b.String()
	}
	for _, d := range days {
		b.WriteString("\n")
		b.WriteString(styles.SectionStyle.Render(dayHeading(d.Date)))
		b.WriteString("\n")
		for _, it := range d.Scheduled {
			slot := styles.ScheduledStyle.Render(it.StartTime + "-" + it.EndTime)
			fmt.Fprintf(&b, "  %s %s  %s\n", slot, it.Title, styles.SubtitleStyle.Render(cli.ShortID(it.ID)))
		}
		for _, it := range d.Planned {
			fmt.Fprintf(&b, "  %s %s  %s\n", styles.PlannedStyle.Render("planned    "), it.Title,
				styles.SubtitleStyle.Render(cli.ShortID(it.ID)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func dayHeading(key string) string {
	d, err := models.ParseDate(key)
	if err != nil {
		return key
	}
	return d.Format("Mon Jan 2, 2006")
}
