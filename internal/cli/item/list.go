package item

import (
	"context"
	"fmt"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
	"github.com/spf13/cobra"
)

// ListCmd returns the item list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		Long:  "List the items of every stage in board order, or of one stage.",
		RunE:  runList,
	}

	cmd.Flags().String("stage", "", "Only list this stage")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		stageFlag, _ := cmd.Flags().GetString("stage")

		stages := models.EditableStages()
		if stageFlag != "" {
			stageID, err := cli.ParseStage(stageFlag)
			if err != nil {
				return f.Fail(err)
			}
			stages = []types.StageID{stageID}
		}

		var all []models.Item
		byStage := make(map[types.StageID][]models.Item, len(stages))
		for _, stageID := range stages {
			items, err := c.App.BoardService.GetItemsInStage(ctx, stageID)
			if err != nil {
				return f.Fail(err)
			}
			byStage[stageID] = items
			all = append(all, items...)
		}

		// Output in appropriate format
		if f.Quiet {
			for _, it := range all {
				fmt.Fprintln(f.Writer(), it.ID)
			}
			return nil
		}

		if f.JSON {
			return f.Success("items", all)
		}

		if len(all) == 0 {
			fmt.Fprintln(f.Writer(), "No items found")
			return nil
		}

		fmt.Fprintf(f.Writer(), "Found %d items:\n", len(all))
		for _, stageID := range stages {
			items := byStage[stageID]
			if len(items) == 0 {
				continue
			}
			fmt.Fprintf(f.Writer(), "\n%s\n", models.StageTitle(stageID))
			for _, it := range items {
				pin := " "
				if it.Pinned {
					pin = "*"
				}
				fmt.Fprintf(f.Writer(), " %s[%s] %s\n", pin, cli.ShortID(it.ID), it.Title)
			}
		}
		return nil
	})
}
