package main

import (
	"context"
	"fmt"

	"elekit/internal/config"
	"elekit/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// verifyCommand constructs the 'verify' subcommand that checks an existing
// tree against the layout. It exits non-zero when the tree does not conform.
func verifyCommand(cfg *config.Config) *cobra.Command {
	var (
		rootDir    string
		layoutPath string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Checks an existing tree against the layout",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			journal, closeJournal := getJournal(ctx, cfg)
			defer closeJournal()

			l := resolveLayout(ctx, cfg, layoutPath)
			s := newScaffolder(ctx, cfg, l, journal, rootDir, false)

			report, err := s.Verify(ctx)
			if err != nil {
				logger.Fatal(ctx, "verify failed", zap.Error(err))
			}

			for _, f := range report.Violations {
				fmt.Printf("violation  %s: %s\n", f.Path, f.Reason) //nolint: forbidigo
			}
			for _, f := range report.Warnings {
				fmt.Printf("warning    %s: %s\n", f.Path, f.Reason) //nolint: forbidigo
			}

			if !report.Conforms() {
				logger.Fatal(ctx, "tree does not conform to layout",
					zap.String("root", report.Root),
					zap.Int("violations", len(report.Violations)))
			}

			//nolint: forbidigo
			fmt.Printf("%s conforms to layout %q (%d warnings)\n",
				report.Root, report.LayoutName, len(report.Warnings))
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "Target directory (defaults to the configured root)")
	cmd.Flags().StringVar(&layoutPath, "layout", "", "Layout yaml file (defaults to the built-in layout)")

	return cmd
}
