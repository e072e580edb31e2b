package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"elekit/pkg/domain"

	"github.com/google/uuid"
)

type SqRun struct {
	ID   string `db:"id"`
	Kind string `db:"kind"`
	Root string `db:"root"`

	Status     string         `db:"status"`
	Stats      string         `db:"stats"`
	LastError  sql.NullString `db:"last_error"`
	DurationMS int64          `db:"duration_ms"`

	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at"`
}

func (r *SqRun) ToDomain() (*domain.Run, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("could not parse run id %q: %w", r.ID, err)
	}

	var stats domain.RunStats
	if err := json.Unmarshal([]byte(r.Stats), &stats); err != nil {
		return nil, fmt.Errorf("could not unmarshal run stats: %w", err)
	}

	return &domain.Run{
		ID:        domain.RunID(id),
		Kind:      domain.RunKind(r.Kind),
		Root:      r.Root,
		Status:    domain.RunStatus(r.Status),
		Stats:     stats,
		LastError: r.LastError.String,
		Duration:  time.Duration(r.DurationMS) * time.Millisecond,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt.Time,
	}, nil
}

func (r *SqRun) FromDomain(run domain.Run) error {
	stats, err := json.Marshal(run.Stats)
	if err != nil {
		return fmt.Errorf("could not marshal run stats: %w", err)
	}

	*r = SqRun{
		ID:     uuid.UUID(run.ID).String(),
		Kind:   string(run.Kind),
		Root:   run.Root,
		Status: string(run.Status),
		Stats:  string(stats),
		LastError: sql.NullString{
			String: run.LastError,
			Valid:  run.LastError != "",
		},
		DurationMS: run.Duration.Milliseconds(),
		CreatedAt:  run.CreatedAt.UTC(),
		UpdatedAt: sql.NullTime{
			Time:  run.UpdatedAt.UTC(),
			Valid: !run.UpdatedAt.IsZero(),
		},
	}

	return nil
}

func domainRunsToSq(runs []domain.Run) ([]SqRun, error) {
	out := make([]SqRun, len(runs))
	for i := range out {
		if err := out[i].FromDomain(runs[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func sqRunsToDomain(runs []SqRun) ([]domain.Run, error) {
	out := make([]domain.Run, 0, len(runs))
	for _, run := range runs {
		d, err := run.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
