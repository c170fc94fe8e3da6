package item

import (
	"context"
	"fmt"
	"strings"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/cli/styles"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	boardservice "github.com/pattyalex/brand-journey-tracker/internal/services/board"
	"github.com/spf13/cobra"
)

// ShowCmd returns the item show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show item details",
		Long:  "Display all details of an item including its script, shots, checklist and calendar dates.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().String("id", "", "Item ID or unique prefix (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ResolveItemID(ctx, c, cli.IDArg(cmd, args))
		if err != nil {
			return f.Fail(err)
		}

		loc, err := c.App.BoardService.FindItem(ctx, id)
		if err != nil {
			return f.Fail(err)
		}

		if f.Quiet {
			return f.Success("item", loc.Item)
		}
		if f.JSON {
			return f.Success("item", map[string]any{
				"item":  loc.Item,
				"stage": loc.Stage,
				"index": loc.Index,
			})
		}

		styles.Init(c.App.Config.ColorScheme)
		_, err = fmt.Fprintln(f.Writer(), renderDetail(loc))
		return err
	})
}

func renderDetail(loc boardservice.Location) string {
	it := loc.Item
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(it.Title))
	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render(string(it.ID)))
	content.WriteString("\n\n")

	field := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		content.WriteString(styles.LabelStyle.Render(label+":") + " " + styles.ValueStyle.Render(value) + "\n")
	}

	step, _ := models.StepNumber(loc.Stage)
	field("Stage", fmt.Sprintf("%s (step %d, position %d)", models.StageTitle(loc.Stage), step, loc.Index+1))
	field("Hook", it.Hook)
	field("Platforms", strings.Join(it.Platforms, ", "))
	field("Formats", strings.Join(it.Formats, ", "))
	field("Location", it.ShootLocation)
	field("Props", it.ShootProps)
	field("Production", it.ProductionStatus)
	field("Scheduling", string(it.SchedulingStatus))
	if dates := styles.RenderDates(it); dates != "" {
		content.WriteString(styles.LabelStyle.Render("Calendar:") + " " + dates + "\n")
	}
	if it.Pinned {
		content.WriteString(styles.PinnedStyle.Render("★ pinned") + "\n")
	}

	width := styles.CardWidth - 8
	if script := styles.RenderMarkdown(it.Script, width); script != "" {
		content.WriteString(styles.SectionStyle.Render("Script"))
		content.WriteString("\n" + script + "\n")
	}

	if len(it.Shots) > 0 {
		content.WriteString(styles.SectionStyle.Render("Shots"))
		content.WriteString("\n")
		for _, shot := range it.Shots {
			content.WriteString(fmt.Sprintf("  %s %s\n", checkbox(shot.Done), shot.Description))
		}
	}

	if len(it.EditChecklist) > 0 {
		content.WriteString(styles.SectionStyle.Render("Edit checklist"))
		content.WriteString("\n")
		for _, entry := range it.EditChecklist {
			content.WriteString(fmt.Sprintf("  %s %s\n", checkbox(entry.Checked), entry.Text))
		}
	}

	if notes := styles.RenderMarkdown(it.Notes, width); notes != "" {
		content.WriteString(styles.SectionStyle.Render("Notes"))
		content.WriteString("\n" + notes + "\n")
	}

	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Created %s · Updated %s",
		it.CreatedAt.Format("2006-01-02 15:04"), it.UpdatedAt.Format("2006-01-02 15:04"))))

	return styles.RenderCard(content.String())
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
