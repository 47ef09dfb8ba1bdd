package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/carbon-tracker/backend/internal/application/usecase/factor"
	"github.com/carbon-tracker/backend/internal/domain/unit"
	"github.com/carbon-tracker/backend/internal/infra/seed"
	"github.com/carbon-tracker/backend/internal/integration/persistence"
)

func newSeedCmd(opts Options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the emission factor catalogue",
		Long: "Validates every factor in the catalogue and replaces the stored set. " +
			"Without --file the bundled catalogue is used.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = opts.Config.Seed.File
			}

			inputs, err := seed.LoadFile(file)
			if err != nil {
				return err
			}

			database, err := openMigrated(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer database.Close()

			uc := factor.NewSeedFactorsUseCase(persistence.NewEmissionFactorRepository(database.DB()), unit.Default())
			factors, err := uc.Execute(cmd.Context(), inputs)
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}

			slog.Debug("Catalogue replaced", "source", sourceName(file), "count", len(factors))
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d emission factors\n", len(factors))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "catalogue YAML file (defaults to the bundled catalogue)")

	return cmd
}

func sourceName(file string) string {
	if file == "" {
		return "embedded"
	}
	return file
}
