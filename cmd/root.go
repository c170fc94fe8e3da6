package cmd

import (
	"github.com/pattyalex/brand-journey-tracker/internal/cli/archive"
	"github.com/pattyalex/brand-journey-tracker/internal/cli/board"
	"github.com/pattyalex/brand-journey-tracker/internal/cli/item"
	"github.com/pattyalex/brand-journey-tracker/internal/cli/schedule"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the planner command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Planner - a content production board",
		Long: `Planner tracks content from idea to post: a fixed pipeline of stages,
a calendar of planned and scheduled dates, and an archive of finished work.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(item.ItemCmd())
	rootCmd.AddCommand(schedule.ScheduleCmd())
	rootCmd.AddCommand(archive.ArchiveCmd())

	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
