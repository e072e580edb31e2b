package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	root "elekit"
	"elekit/pkg/domain"
	"elekit/pkg/storage"
	"elekit/pkg/storage/sqlite"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.SQLite {
	t.Helper()
	ctx := context.Background()

	strg, err := sqlite.New(ctx, sqlite.Options{
		Path: filepath.Join(t.TempDir(), "journal.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = strg.Close() })

	goose.SetBaseFS(root.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.Up(strg.DB.(*sql.DB), "migrations"))

	return strg
}

func newRun(createdAt time.Time) domain.Run {
	return domain.Run{
		ID:        domain.RunID(uuid.New()),
		Kind:      domain.RunKindScaffold,
		Root:      "/tmp/project",
		Status:    domain.RunStatusPending,
		CreatedAt: createdAt,
	}
}

func TestStoreAndFetchRun(t *testing.T) {
	strg := setupTestDB(t)
	ctx := context.Background()

	run := newRun(time.Now().UTC())
	run.Stats = domain.RunStats{DirsCreated: 9, FilesCreated: 54, TemplatesWritten: 5}

	stored, err := strg.StoreRuns(ctx, run)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, run.ID, stored[0].ID)
	require.Equal(t, domain.RunKindScaffold, stored[0].Kind)
	require.Equal(t, run.Stats, stored[0].Stats)
	require.WithinDuration(t, run.CreatedAt, stored[0].CreatedAt, time.Second)

	got, err := strg.RunByID(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, domain.RunStatusPending, got.Status)
	require.Empty(t, got.LastError)
}

func TestRunByIDNotFound(t *testing.T) {
	strg := setupTestDB(t)

	got, err := strg.RunByID(context.Background(), domain.RunID(uuid.New()))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestUpdateRunByID(t *testing.T) {
	strg := setupTestDB(t)
	ctx := context.Background()

	run := newRun(time.Now().UTC())
	_, err := strg.StoreRuns(ctx, run)
	require.NoError(t, err)

	lastErr := "mkdir failed"
	dur := 1500 * time.Millisecond
	updated, err := strg.UpdateRunByID(ctx, run.ID, storage.RunUpdates{
		Status:    domain.RunStatusFailed,
		Stats:     &domain.RunStats{DirsCreated: 2},
		LastError: &lastErr,
		Duration:  &dur,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, domain.RunStatusFailed, updated.Status)
	require.Equal(t, 2, updated.Stats.DirsCreated)
	require.Equal(t, "mkdir failed", updated.LastError)
	require.Equal(t, dur, updated.Duration)
	require.False(t, updated.UpdatedAt.IsZero())

	// clearing the error sets it to NULL
	empty := ""
	updated, err = strg.UpdateRunByID(ctx, run.ID, storage.RunUpdates{
		Status:    domain.RunStatusCompleted,
		LastError: &empty,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, domain.RunStatusCompleted, updated.Status)
	require.Empty(t, updated.LastError)

	// unknown run yields nil, no error
	missing, err := strg.UpdateRunByID(ctx, domain.RunID(uuid.New()), storage.RunUpdates{
		Status: domain.RunStatusCompleted,
	})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestRunsPagination(t *testing.T) {
	strg := setupTestDB(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	var runs []domain.Run
	for i := 0; i < 5; i++ {
		runs = append(runs, newRun(base.Add(time.Duration(i)*time.Minute)))
	}
	_, err := strg.StoreRuns(ctx, runs...)
	require.NoError(t, err)

	// first page: newest first
	page, err := strg.Runs(ctx, nil, 2)
	require.NoError(t, err)
	require.Len(t, page.Runs, 2)
	require.NotNil(t, page.NextCursor)
	require.Equal(t, runs[4].ID, page.Runs[0].ID)
	require.Equal(t, runs[3].ID, page.Runs[1].ID)
	require.Equal(t, runs[3].ID, page.NextCursor.ID)

	// second page via cursor
	page2, err := strg.Runs(ctx, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page2.Runs, 2)
	require.Equal(t, runs[2].ID, page2.Runs[0].ID)
	require.Equal(t, runs[1].ID, page2.Runs[1].ID)
	require.NotNil(t, page2.NextCursor)

	// last page has no next cursor
	page3, err := strg.Runs(ctx, page2.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page3.Runs, 1)
	require.Nil(t, page3.NextCursor)
}

func TestRunsZeroLimit(t *testing.T) {
	strg := setupTestDB(t)
	ctx := context.Background()

	_, err := strg.StoreRuns(ctx, newRun(time.Now().UTC()))
	require.NoError(t, err)

	page, err := strg.Runs(ctx, nil, 0)
	require.NoError(t, err)
	require.Empty(t, page.Runs)
	require.Nil(t, page.NextCursor)
}

func TestRunsPaginationTiedTimestamps(t *testing.T) {
	strg := setupTestDB(t)
	ctx := context.Background()

	// three runs sharing one created_at; the id tie-break must keep page
	// boundaries from skipping or repeating any of them
	at := time.Now().UTC().Truncate(time.Second)
	runs := []domain.Run{newRun(at), newRun(at), newRun(at)}
	_, err := strg.StoreRuns(ctx, runs...)
	require.NoError(t, err)

	seen := make(map[domain.RunID]bool, len(runs))
	var cursor *storage.RunCursor
	for {
		page, err := strg.Runs(ctx, cursor, 2)
		require.NoError(t, err)
		for _, r := range page.Runs {
			require.False(t, seen[r.ID], "run %v returned twice", r.ID)
			seen[r.ID] = true
		}
		if page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}

	require.Len(t, seen, len(runs))
	for _, r := range runs {
		require.True(t, seen[r.ID], "run %v skipped at a page boundary", r.ID)
	}
}

func TestTxCommitAndRollback(t *testing.T) {
	strg := setupTestDB(t)
	ctx := context.Background()

	// rollback discards the insert
	run := newRun(time.Now().UTC())
	tx, err := strg.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.StoreRuns(ctx, run)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	got, err := strg.RunByID(ctx, run.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	// WithTx commits on success
	run2 := newRun(time.Now().UTC())
	err = strg.WithTx(ctx, func(s storage.AllStorage) error {
		_, err := s.StoreRuns(ctx, run2)

		return err
	})
	require.NoError(t, err)

	got, err = strg.RunByID(ctx, run2.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestTxStateErrors(t *testing.T) {
	strg := setupTestDB(t)
	ctx := context.Background()

	// not in tx: commit/rollback must fail
	require.ErrorIs(t, strg.Commit(), storage.ErrNotInTx)
	require.ErrorIs(t, strg.Rollback(), storage.ErrNotInTx)

	// already in tx: begin must fail
	tx, err := strg.Begin(ctx)
	require.NoError(t, err)
	inner, ok := tx.(*sqlite.SQLite)
	require.True(t, ok)
	_, err = inner.Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)
	require.NoError(t, tx.Rollback())
}
