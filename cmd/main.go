// Package main provides the CLI entrypoint for elekit. It wires subcommands
// (scaffold, verify, plan, styles, history, migrate), loads configuration, and
// initializes logging.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	root "elekit"
	"elekit/internal/config"
	"elekit/pkg/logger"
	"elekit/pkg/storage"
	"elekit/pkg/storage/sqlite"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getJournal opens the run-journal database and brings its schema up to date.
// When the journal is disabled in the configuration it returns a nil storage,
// and run recording is skipped. The returned cleanup function closes the
// connection.
func getJournal(ctx context.Context, cfg *config.Config) (storage.Storage, func()) {
	if cfg.Journal.Disabled {
		logger.Debug(ctx, "journal is disabled, runs will not be recorded")

		return nil, func() {}
	}

	strg, err := sqlite.New(ctx, sqlite.Options{Path: cfg.Journal.Path})
	if err != nil {
		logger.Fatal(ctx, "could not open journal database", zap.Error(err))
	}

	if err := migrateJournal(strg); err != nil {
		logger.Fatal(ctx, "could not migrate journal database", zap.Error(err))
	}

	return strg, func() {
		if err := strg.Close(); err != nil {
			logger.Warn(ctx, "could not close journal database", zap.Error(err))
		}
	}
}

// migrateJournal applies pending goose migrations to the journal database.
// Migrations are idempotent, so this runs on every journal open.
func migrateJournal(strg *sqlite.SQLite) error {
	goose.SetBaseFS(root.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.Up(strg.DB.(*sql.DB), "migrations")
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "elekit",
		Short: "Provisions and checks the Textocorrector ELE project tree",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		scaffoldCommand(cfg),
		verifyCommand(cfg),
		planCommand(cfg),
		stylesCommand(),
		historyCommand(cfg),
		migrateCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
