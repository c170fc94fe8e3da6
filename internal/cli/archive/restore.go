package archive

import (
	"context"
	"fmt"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	archiveservice "github.com/pattyalex/brand-journey-tracker/internal/services/archive"
	"github.com/spf13/cobra"
)

// RestoreCmd returns the archive restore subcommand
func RestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [entry]",
		Short: "Move an archive entry back onto the board",
		Long: `Move an archive entry back onto the board as a new item at the head of a
stage. The firm schedule is dropped and the entry leaves the archive.

Examples:
  planner archive restore 9c1e
  planner archive restore 9c1e --stage=editing --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRestore,
	}

	cmd.Flags().String("id", "", "Archive entry ID or unique prefix")
	cmd.Flags().String("stage", "", "Target stage (default ideation)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runRestore(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		entryID, err := cli.ResolveArchiveID(ctx, c, cli.IDArg(cmd, args))
		if err != nil {
			return f.Fail(err)
		}
		req := archiveservice.RestoreRequest{EntryID: entryID}
		if raw, _ := cmd.Flags().GetString("stage"); raw != "" {
			if req.StageID, err = cli.ParseStage(raw); err != nil {
				return f.Fail(err)
			}
		}

		it, err := c.App.ArchiveService.Restore(ctx, req)
		if err != nil {
			return f.Fail(err)
		}

		if f.JSON || f.Quiet {
			return f.Success("item", it)
		}
		stage := req.StageID
		if stage == "" {
			stage = models.FirstStage()
		}
		fmt.Fprintf(f.Writer(), "✓ Restored %q to %s as %s\n", it.Title, models.StageTitle(stage), cli.ShortID(it.ID))
		return nil
	})
}
