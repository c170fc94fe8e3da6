package archive

import (
	"github.com/spf13/cobra"
)

// ArchiveCmd returns the archive parent command
func ArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage archived content",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(RestoreCmd())
	cmd.AddCommand(RepurposeCmd())
	cmd.AddCommand(OpenCmd())

	return cmd
}
