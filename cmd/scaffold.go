package main

import (
	"context"
	"fmt"

	"elekit/internal/config"
	"elekit/internal/layout"
	"elekit/internal/scaffold"
	"elekit/pkg/domain"
	"elekit/pkg/logger"
	"elekit/pkg/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// resolveLayout returns the layout to operate on: the file given on the
// command line, the one from the configuration, or the built-in
// Textocorrector ELE layout.
func resolveLayout(ctx context.Context, cfg *config.Config, layoutPath string) domain.Layout {
	if layoutPath == "" {
		layoutPath = cfg.Scaffold.LayoutPath
	}

	if layoutPath == "" {
		l, err := layout.Default()
		if err != nil {
			logger.Fatal(ctx, "could not build default layout", zap.Error(err))
		}

		return l
	}

	l, err := layout.Load(layoutPath)
	if err != nil {
		logger.Fatal(ctx, "could not load layout file", zap.Error(err))
	}

	return l
}

// newScaffolder builds a scaffolder from the configuration and the command
// line overrides. rootDir falls back to the configured scaffold root.
func newScaffolder(
	ctx context.Context,
	cfg *config.Config,
	l domain.Layout,
	journal storage.Storage,
	rootDir string,
	dryRun bool) scaffold.Scaffolder {
	if rootDir == "" {
		rootDir = cfg.Scaffold.Root
	}

	dirMode, err := cfg.DirMode()
	if err != nil {
		logger.Fatal(ctx, "invalid directory mode", zap.Error(err))
	}
	fileMode, err := cfg.FileMode()
	if err != nil {
		logger.Fatal(ctx, "invalid file mode", zap.Error(err))
	}

	s, err := scaffold.New(l, journal, scaffold.Options{
		Root:     rootDir,
		DirMode:  dirMode,
		FileMode: fileMode,
		DryRun:   dryRun,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create scaffolder", zap.Error(err))
	}

	return s
}

// scaffoldCommand constructs the 'scaffold' subcommand that materializes the
// layout under the target directory.
func scaffoldCommand(cfg *config.Config) *cobra.Command {
	var (
		rootDir    string
		layoutPath string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Creates the project tree under the target directory",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			// a dry run must not touch the journal database either
			journal := storage.Storage(nil)
			if !dryRun {
				var closeJournal func()
				journal, closeJournal = getJournal(ctx, cfg)
				defer closeJournal()
			}

			l := resolveLayout(ctx, cfg, layoutPath)
			s := newScaffolder(ctx, cfg, l, journal, rootDir, dryRun)

			run, err := s.Apply(ctx)
			if err != nil {
				logger.Fatal(ctx, "scaffold failed", zap.Error(err))
			}

			verb := "applied"
			if dryRun {
				verb = "dry run of"
			}
			//nolint: forbidigo
			fmt.Printf("%s layout %q under %s\n", verb, l.Name, run.Root)
			//nolint: forbidigo
			fmt.Printf("  directories created:  %d\n", run.Stats.DirsCreated)
			//nolint: forbidigo
			fmt.Printf("  placeholders created: %d (kept %d)\n", run.Stats.FilesCreated, run.Stats.FilesKept)
			//nolint: forbidigo
			fmt.Printf("  templates written:    %d\n", run.Stats.TemplatesWritten)
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "Target directory (defaults to the configured root)")
	cmd.Flags().StringVar(&layoutPath, "layout", "", "Layout yaml file (defaults to the built-in layout)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log planned actions without touching the filesystem")

	return cmd
}
