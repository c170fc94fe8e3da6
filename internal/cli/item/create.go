package item

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	boardservice "github.com/pattyalex/brand-journey-tracker/internal/services/board"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
	"github.com/spf13/cobra"
)

// CreateCmd returns the item create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new content item",
		Long: `Create a new content item, by default at the end of the ideation stage.

Examples:
  # Simple idea (human-readable output)
  planner item create --title="Morning routine"

  # JSON output for agents
  planner item create --title="Morning routine" --json

  # Quiet mode for bash capture
  ITEM_ID=$(planner item create --title="Morning routine" --quiet)

  # Straight into scripting with a script from stdin
  cat script.md | planner item create --title="Kitchen tour" --stage=scripting --script=-
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("title", "", "Item title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("stage", "", "Stage to create the item in (defaults to ideation)")
	addContentFlags(cmd)

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		title, _ := cmd.Flags().GetString("title")
		stageFlag, _ := cmd.Flags().GetString("stage")

		var stageID types.StageID
		if stageFlag != "" {
			parsed, err := cli.ParseStage(stageFlag)
			if err != nil {
				return f.Fail(err)
			}
			stageID = parsed
		}

		patch, err := contentPatch(cmd)
		if err != nil {
			return f.Fail(err)
		}
		patch.Title = nil

		it, err := c.App.BoardService.CreateItem(ctx, boardservice.CreateItemRequest{
			Title:   title,
			StageID: stageID,
			Patch:   patch,
		})
		if err != nil {
			return f.Fail(err)
		}

		if f.Quiet || f.JSON {
			return f.Success("item", it)
		}
		fmt.Fprintf(f.Writer(), "✓ Created %q in %s (%s)\n", it.Title, models.StageTitle(it.StageID), cli.ShortID(it.ID))
		return nil
	})
}
