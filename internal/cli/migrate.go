package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := openMigrated(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer database.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}
