package item

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/transition"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
	"github.com/pattyalex/brand-journey-tracker/internal/wizard"
	"github.com/spf13/cobra"
)

// stepFlags lists the flags each wizard step owns, in step order
var stepFlags = []struct {
	stage types.StageID
	flags []string
}{
	{types.StageIdeation, []string{"title", "hook", "notes", "platforms", "planned-date"}},
	{types.StageScripting, []string{"script", "formats", "location", "props"}},
	{types.StageShooting, []string{"shot", "status"}},
	{types.StageEditing, []string{"check"}},
	{types.StageScheduling, []string{"date", "start", "end", "unschedule"}},
}

// EditCmd returns the item edit subcommand
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit an item through the step wizard",
		Long: `Walk an item through the step wizard non-interactively. The wizard opens at
the item's first incomplete step, visits each step whose fields are given,
saves them, and on close moves the item to the stage its content implies.

Steps: 1 ideation, 2 scripting, 3 shooting, 4 editing, 5 scheduling.

Examples:
  # Add a script; the item moves to scripting when the wizard closes
  planner item edit 3f2a --script="Cold open in the car"

  # Fill several steps at once
  planner item edit 3f2a --shot="wide" --check="color grade" --date=2025-03-05 --start=14:00
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().String("id", "", "Item ID or unique prefix")
	cmd.Flags().String("title", "", "Title (step 1)")
	cmd.Flags().String("planned-date", "", "Tentative date YYYY-MM-DD, or none (step 1)")
	cmd.Flags().String("date", "", "Firm date YYYY-MM-DD (step 5)")
	cmd.Flags().String("start", "", "Start time HH:MM (step 5)")
	cmd.Flags().String("end", "", "End time HH:MM (step 5, defaults to start plus the slot)")
	cmd.Flags().Bool("unschedule", false, "Clear the firm date (step 5)")
	cmd.Flags().String("planned", "", "Planned date decision if the item enters scheduling: adopt or discard")
	addContentFlags(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveItemID(ctx, c, cli.IDArg(cmd, args))
		if err != nil {
			return f.Fail(err)
		}
		plannedFlag, _ := cmd.Flags().GetString("planned")
		choice, err := transition.ParsePlannedDateChoice(plannedFlag)
		if err != nil {
			return f.FailWith("INVALID_PLANNED_CHOICE", cli.ExitUsage, err, "Use --planned=adopt or --planned=discard")
		}
		patch, err := contentPatch(cmd)
		if err != nil {
			return f.Fail(err)
		}
		edits, err := scheduleEdits(cmd, time.Now())
		if err != nil {
			return f.Fail(err)
		}
		edits.defaultStart = c.App.Config.Workflow.DefaultStartTime

		wiz := c.App.Wizard
		if _, err := wiz.Open(ctx, id); err != nil {
			return f.Fail(err)
		}
		// One command is one wizard session; never leave it open
		defer wiz.Discard()

		for _, step := range stepFlags {
			if !anyChanged(cmd, step.flags) {
				continue
			}
			if _, err := wiz.Navigate(ctx, step.stage, nil); err != nil {
				return f.Fail(err)
			}
			stage := step.stage
			if err := wiz.Edit(func(d *wizard.Draft) { fillDraft(d, stage, patch, edits) }); err != nil {
				return f.Fail(err)
			}
		}

		// Pinning belongs to no step; it rides along as an override
		if patch.Pinned != nil {
			current := wiz.State().Step
			if _, err := wiz.Navigate(ctx, current, &models.ItemPatch{Pinned: patch.Pinned}); err != nil {
				return f.Fail(err)
			}
		}

		// A pending planned-date decision leaves the edits saved and the item in place
		res, err := wiz.Close(ctx, choice)
		if err != nil {
			return f.Fail(err)
		}

		if f.Quiet {
			fmt.Fprintln(f.Writer(), res.Item.ID)
			return nil
		}
		if f.JSON {
			return f.Success("edit", map[string]any{
				"item":  res.Item,
				"from":  res.From,
				"stage": res.Stage,
				"moved": res.Moved,
			})
		}
		if res.Moved {
			fmt.Fprintf(f.Writer(), "✓ Saved %q and moved it from %s to %s\n",
				res.Item.Title, models.StageTitle(res.From), models.StageTitle(res.Stage))
			return nil
		}
		fmt.Fprintf(f.Writer(), "✓ Saved %q in %s\n", res.Item.Title, models.StageTitle(res.Stage))
		return nil
	})
}

// calendarEdits are the parsed date flags of the edit command
type calendarEdits struct {
	planned      *time.Time
	clearPlanned bool
	date         *time.Time
	start, end   *string
	unschedule   bool
	defaultStart string
}

func scheduleEdits(cmd *cobra.Command, now time.Time) (calendarEdits, error) {
	var e calendarEdits
	fl := cmd.Flags()

	if fl.Changed("planned-date") {
		raw, _ := fl.GetString("planned-date")
		if strings.EqualFold(strings.TrimSpace(raw), "none") || strings.TrimSpace(raw) == "" {
			e.clearPlanned = true
		} else {
			day, err := cli.ParseDay(raw, now)
			if err != nil {
				return e, err
			}
			e.planned = &day
		}
	}
	if fl.Changed("date") {
		raw, _ := fl.GetString("date")
		day, err := cli.ParseDay(raw, now)
		if err != nil {
			return e, err
		}
		e.date = &day
	}
	if fl.Changed("start") {
		v, _ := fl.GetString("start")
		e.start = &v
	}
	if fl.Changed("end") {
		v, _ := fl.GetString("end")
		e.end = &v
	}
	e.unschedule, _ = fl.GetBool("unschedule")
	return e, nil
}

// fillDraft copies the values owned by step into the wizard draft
func fillDraft(d *wizard.Draft, step types.StageID, p models.ItemPatch, e calendarEdits) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setList := func(dst *[]string, src *[]string) {
		if src != nil {
			*dst = *src
		}
	}

	switch step {
	case types.StageIdeation:
		setStr(&d.Title, p.Title)
		setStr(&d.Hook, p.Hook)
		setStr(&d.Notes, p.Notes)
		setList(&d.Platforms, p.Platforms)
		if e.clearPlanned {
			d.PlannedDate = nil
		} else if e.planned != nil {
			d.PlannedDate = e.planned
		}
	case types.StageScripting:
		setStr(&d.Script, p.Script)
		setList(&d.Formats, p.Formats)
		setStr(&d.ShootLocation, p.ShootLocation)
		setStr(&d.ShootProps, p.ShootProps)
	case types.StageShooting:
		if p.Shots != nil {
			d.Shots = *p.Shots
		}
		setStr(&d.ProductionStatus, p.ProductionStatus)
	case types.StageEditing:
		if p.EditChecklist != nil {
			d.EditChecklist = *p.EditChecklist
		}
	case types.StageScheduling:
		if e.unschedule {
			d.ScheduledDate, d.StartTime, d.EndTime = nil, "", ""
			return
		}
		if e.date != nil {
			d.ScheduledDate = e.date
		}
		if e.start != nil {
			d.StartTime = *e.start
			// A new start without an explicit end takes the default slot
			if e.end == nil {
				d.EndTime = ""
			}
		}
		setStr(&d.EndTime, e.end)
		if d.ScheduledDate != nil && d.StartTime == "" {
			d.StartTime = e.defaultStart
		}
	}
}

func anyChanged(cmd *cobra.Command, names []string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
