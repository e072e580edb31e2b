package main

import (
	"context"

	"elekit/internal/config"
	"elekit/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCommand constructs the 'migrate' subcommand that creates the journal
// database (if needed) and applies pending migrations. Other journal-backed
// commands migrate on open as well; this one exists to provision the database
// without running anything else.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates the run journal database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			if cfg.Journal.Disabled {
				logger.Fatal(ctx, "journal is disabled in the configuration")
			}

			_, closeJournal := getJournal(ctx, cfg)
			defer closeJournal()

			logger.Info(ctx, "journal database is up to date", zap.String("path", cfg.Journal.Path))
		},
	}

	return cmd
}
