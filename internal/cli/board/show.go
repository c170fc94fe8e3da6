package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/cli/styles"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/spf13/cobra"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show every stage and its items in order",
		Long: `Show the board with one column per stage. Stages are laid out side by side
unless --stacked is given.

Examples:
  planner board show
  planner board show --stacked
  planner board show --json
`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}

	cmd.Flags().Bool("stacked", false, "Render stages one below the other")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		board := c.App.BoardService.GetBoard(ctx)

		if f.Quiet {
			for _, it := range board.AllItems() {
				fmt.Fprintln(f.Writer(), it.ID)
			}
			return nil
		}
		if f.JSON {
			return f.Success("stages", board.Stages)
		}

		styles.Init(c.App.Config.ColorScheme)
		stacked, _ := cmd.Flags().GetBool("stacked")
		fmt.Fprintln(f.Writer(), renderBoard(board, stacked))
		return nil
	})
}

func renderBoard(board *models.Board, stacked bool) string {
	columns := make([]string, 0, len(board.Stages))
	for _, stage := range board.Stages {
		lines := make([]string, len(stage.Cards))
		for i, it := range stage.Cards {
			lines[i] = styles.RenderItemLine(it, cli.ShortID(it.ID))
		}
		columns = append(columns, styles.RenderStage(stage.Title, lines))
	}
	if stacked {
		return strings.Join(columns, "\n")
	}
	return styles.JoinStages(columns)
}
