package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunID uniquely identifies a recorded scaffold or verify run.
// It wraps uuid.UUID to provide type safety at the domain layer.
type RunID uuid.UUID

// RunKind distinguishes the operation that produced a journal entry.
type RunKind string

const (
	// RunKindScaffold marks a run that applied the layout to the filesystem.
	RunKindScaffold RunKind = "SCAFFOLD"
	// RunKindVerify marks a run that only checked an existing tree.
	RunKindVerify RunKind = "VERIFY"
)

// RunStatus represents the lifecycle state of a run.
type RunStatus string

const (
	// RunStatusPending indicates the run has started but not finished yet.
	RunStatusPending RunStatus = "PENDING"
	// RunStatusCompleted indicates the run finished without errors.
	RunStatusCompleted RunStatus = "COMPLETED"
	// RunStatusFailed indicates the run ended with an error; see LastError.
	RunStatusFailed RunStatus = "FAILED"
)

// RunStats aggregates what a run did (or found, for verify runs).
type RunStats struct {
	// DirsCreated counts directories created by this run.
	DirsCreated int `json:"dirsCreated,omitempty"`
	// FilesCreated counts empty placeholder files created by this run.
	FilesCreated int `json:"filesCreated,omitempty"`
	// FilesKept counts placeholder paths that already existed and were left untouched.
	FilesKept int `json:"filesKept,omitempty"`
	// TemplatesWritten counts template files (re)written by this run.
	TemplatesWritten int `json:"templatesWritten,omitempty"`
	// Violations counts hard conformance failures found by a verify run.
	Violations int `json:"violations,omitempty"`
	// Warnings counts soft findings (e.g. edited placeholders) from a verify run.
	Warnings int `json:"warnings,omitempty"`
}

// Run represents a single scaffold or verify execution and its outcome.
type Run struct {
	// ID is the unique identifier of the run.
	ID RunID `json:"id"`
	// Kind tells whether this entry records a scaffold or a verify.
	Kind RunKind `json:"kind"`
	// Root is the absolute directory the run operated on.
	Root string `json:"root"`

	// Status is the lifecycle state of the run.
	Status RunStatus `json:"status"`
	// Stats aggregates the filesystem effects or findings of the run.
	Stats RunStats `json:"stats"`
	// LastError stores the error message of a failed run, if any.
	LastError string `json:"-"`
	// Duration is the wall-clock time the run took.
	Duration time.Duration `json:"duration"`

	// CreatedAt is the time when the run started.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time when the run record was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}
