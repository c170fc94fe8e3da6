package archive

import (
	"context"
	"fmt"

	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/cli/styles"
	"github.com/spf13/cobra"
)

// ListCmd returns the archive list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archive entries, newest first",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		entries := c.App.ArchiveService.List(ctx)

		if f.Quiet {
			for _, e := range entries {
				fmt.Fprintln(f.Writer(), e.ID)
			}
			return nil
		}
		if f.JSON {
			return f.Success("entries", entries)
		}

		if len(entries) == 0 {
			fmt.Fprintln(f.Writer(), "The archive is empty")
			return nil
		}
		styles.Init(c.App.Config.ColorScheme)
		fmt.Fprintln(f.Writer(), styles.TitleStyle.Render(fmt.Sprintf("Archive (%d)", len(entries))))
		for _, e := range entries {
			line := styles.RenderItemLine(e, cli.ShortID(e.ID))
			if e.ArchivedAt != nil {
				line += "  " + styles.SubtitleStyle.Render("archived "+e.ArchivedAt.Format("2006-01-02"))
			}
			fmt.Fprintln(f.Writer(), line)
		}
		return nil
	})
}
