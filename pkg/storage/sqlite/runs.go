package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"elekit/pkg/domain"
	"elekit/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	runsTable = "runs"
)

// StoreRuns inserts one or more runs. SQLite has no RETURNING support in the
// goqu dialect, so the stored rows are fetched back by ID in input order.
func (s *SQLite) StoreRuns(ctx context.Context, runs ...domain.Run) ([]domain.Run, error) {
	if len(runs) == 0 {
		return nil, nil
	}

	sqRuns, err := domainRunsToSq(runs)
	if err != nil {
		return nil, err
	}

	if _, err := s.Builder.Insert(runsTable).
		Rows(sqRuns).
		Executor().ExecContext(ctx); err != nil {
		return nil, fmt.Errorf("could not store runs into sqlite: %w", err)
	}

	out := make([]domain.Run, 0, len(runs))
	for _, run := range runs {
		stored, err := s.RunByID(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		if stored == nil {
			return nil, fmt.Errorf("could not read back stored run %s", uuid.UUID(run.ID))
		}

		out = append(out, *stored)
	}

	return out, nil
}

// UpdateRunByID updates a single run identified by its ID and returns the
// updated row. updated_at is set automatically; only provided fields change.
func (s *SQLite) UpdateRunByID(ctx context.Context,
	id domain.RunID,
	updates storage.RunUpdates) (*domain.Run, error) {
	rec := goqu.Record{
		"updated_at": time.Now().UTC(),
		"status":     string(updates.Status),
	}
	if updates.Stats != nil {
		b, err := json.Marshal(updates.Stats)
		if err != nil {
			return nil, fmt.Errorf("could not marshal run stats: %w", err)
		}

		rec["stats"] = string(b)
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			// set to NULL when empty string provided
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}
	if updates.Duration != nil {
		rec["duration_ms"] = updates.Duration.Milliseconds()
	}

	res, err := s.Builder.Update(runsTable).
		Set(rec).Where(
		goqu.I("id").Eq(uuid.UUID(id).String()),
	).Executor().ExecContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not update run in sqlite: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not get affected rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return s.RunByID(ctx, id)
}

// Runs returns a page of runs older than the optional cursor, newest first.
// One extra row is fetched to detect whether a next page exists. Ordering and
// the cursor filter both tie-break on id, so runs sharing a created_at are
// never skipped at a page boundary.
func (s *SQLite) Runs(ctx context.Context, cursor *storage.RunCursor, limit uint) (storage.RunsPage, error) {
	if limit == 0 {
		return storage.RunsPage{}, nil
	}

	w := []goqu.Expression{}
	if cursor != nil {
		at := cursor.CreatedAt.UTC()
		id := uuid.UUID(cursor.ID).String()
		w = append(w, goqu.Or(
			goqu.I("created_at").Lt(at),
			goqu.And(goqu.I("created_at").Eq(at), goqu.I("id").Lt(id)),
		))
	}

	fetch := limit + 1
	ds := s.Builder.From(runsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []SqRun
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.RunsPage{}, fmt.Errorf("could not fetch runs from sqlite: %w", err)
	}

	var nextCursor *storage.RunCursor
	if uint(len(rows)) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		lastID, err := uuid.Parse(last.ID)
		if err != nil {
			return storage.RunsPage{}, fmt.Errorf("could not parse run id %q: %w", last.ID, err)
		}
		nextCursor = &storage.RunCursor{
			CreatedAt: last.CreatedAt,
			ID:        domain.RunID(lastID),
		}
	}

	domainRows, err := sqRunsToDomain(rows)
	if err != nil {
		return storage.RunsPage{}, err
	}

	return storage.RunsPage{
		Runs:       domainRows,
		NextCursor: nextCursor,
	}, nil
}

// RunByID returns a run by its ID, or nil when not found.
func (s *SQLite) RunByID(ctx context.Context, id domain.RunID) (*domain.Run, error) {
	var row SqRun
	found, err := s.Builder.From(runsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id).String())).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch run from sqlite: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
