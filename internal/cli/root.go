// Package cli implements carbonctl, the operator command line for the Carbon Tracker backend.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/carbon-tracker/backend/config"
	"github.com/carbon-tracker/backend/internal/infra/db"
)

// DatabaseOpener connects to the backing store. Tests swap it for an in-memory SQLite opener.
type DatabaseOpener func(ctx context.Context, cfg *config.DatabaseConfig) (*db.Database, error)

// Options holds the collaborators shared by every subcommand.
type Options struct {
	Config *config.Config
	OpenDB DatabaseOpener
}

// NewRootCmd creates the carbonctl root command backed by PostgreSQL.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithOptions(Options{
		Config: config.Load(),
		OpenDB: db.NewPostgresConnection,
	})
}

// NewRootCmdWithOptions creates the root command with explicit collaborators for testability.
func NewRootCmdWithOptions(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "carbonctl",
		Short:         "Carbon Tracker operator tooling",
		Long:          "carbonctl: seed the emission factor catalogue, run migrations and convert activity units",
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			setupLogging(cmd.ErrOrStderr(), debug)
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newSeedCmd(opts), newMigrateCmd(opts), newConvertCmd())

	return cmd
}

const rootCmdExample = `  # Load the bundled emission factor catalogue
  carbonctl seed

  # Load a custom catalogue file
  carbonctl seed --file ./factors.yaml

  # Create or update the database schema
  carbonctl migrate

  # Convert an activity quantity
  carbonctl convert 10 gallon liter`

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// openMigrated connects and brings the schema up to date.
func openMigrated(ctx context.Context, opts Options) (*db.Database, error) {
	database, err := opts.OpenDB(ctx, &opts.Config.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(); err != nil {
		_ = database.Close()
		return nil, err
	}
	return database, nil
}
