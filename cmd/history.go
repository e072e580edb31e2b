package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"elekit/internal/config"
	"elekit/pkg/domain"
	"elekit/pkg/logger"
	"elekit/pkg/storage"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// parseCursor parses a "<RFC3339 timestamp>,<run id>" pagination cursor as
// printed by a previous history invocation.
func parseCursor(raw string) (*storage.RunCursor, error) {
	ts, rawID, ok := strings.Cut(raw, ",")
	if !ok {
		return nil, fmt.Errorf("cursor %q is not in <timestamp>,<run id> form", raw)
	}

	at, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("could not parse cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("could not parse cursor run id: %w", err)
	}

	return &storage.RunCursor{CreatedAt: at, ID: domain.RunID(id)}, nil
}

// historyCommand constructs the 'history' subcommand that lists recorded runs
// from the journal, newest first, with cursor pagination.
func historyCommand(cfg *config.Config) *cobra.Command {
	var (
		limit  uint
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Lists recorded scaffold and verify runs",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			if cfg.Journal.Disabled {
				logger.Fatal(ctx, "journal is disabled in the configuration, nothing to list")
			}

			journal, closeJournal := getJournal(ctx, cfg)
			defer closeJournal()

			var cur *storage.RunCursor
			if cursor != "" {
				var err error
				cur, err = parseCursor(cursor)
				if err != nil {
					logger.Fatal(ctx, "could not parse cursor", zap.Error(err))
				}
			}

			page, err := journal.Runs(ctx, cur, limit)
			if err != nil {
				logger.Fatal(ctx, "could not list runs", zap.Error(err))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tSTATUS\tROOT\tCREATED\tDURATION")
			for _, r := range page.Runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					uuid.UUID(r.ID), r.Kind, r.Status, r.Root,
					r.CreatedAt.Format(time.RFC3339), r.Duration.Round(time.Millisecond))
			}
			_ = w.Flush()

			if page.NextCursor != nil {
				//nolint: forbidigo
				fmt.Printf("\nnext page: --cursor %s,%s\n",
					page.NextCursor.CreatedAt.Format(time.RFC3339Nano),
					uuid.UUID(page.NextCursor.ID))
			}
		},
	}

	cmd.Flags().UintVar(&limit, "limit", 20, "Maximum number of runs to list")
	cmd.Flags().StringVar(&cursor, "cursor", "", "List runs older than this <timestamp>,<run id> cursor")

	return cmd
}
