package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"elekit/pkg/domain"
	"elekit/pkg/logger"
	"elekit/pkg/serrors"
	"elekit/pkg/storage"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configure where and how a layout is applied.
type Options struct {
	// Root is the directory the layout is applied to. It is created when
	// missing.
	Root string
	// DirMode is the permission for created directories.
	DirMode fs.FileMode
	// FileMode is the permission for created files.
	FileMode fs.FileMode
	// DryRun logs every action without touching the filesystem or the journal.
	DryRun bool
}

// scaffolder is the concrete implementation of the Scaffolder interface.
// It coordinates filesystem work with run recording in the journal.
type scaffolder struct {
	options Options
	layout  domain.Layout
	// journal records runs; nil disables recording.
	journal storage.Storage
}

// New creates a Scaffolder for the given layout. journal may be nil, in which
// case runs are not recorded.
func New(layout domain.Layout, journal storage.Storage, options Options) (Scaffolder, error) {
	if options.Root == "" {
		return nil, serrors.With(serrors.ErrInvalid, "scaffold root is empty")
	}
	root, err := filepath.Abs(options.Root)
	if err != nil {
		return nil, fmt.Errorf("could not resolve scaffold root: %w", err)
	}
	options.Root = root

	if options.DirMode == 0 {
		options.DirMode = 0o755
	}
	if options.FileMode == 0 {
		options.FileMode = 0o644
	}

	return &scaffolder{
		options: options,
		layout:  layout,
		journal: journal,
	}, nil
}

// Layout returns the layout this scaffolder applies.
func (s *scaffolder) Layout() domain.Layout { return s.layout }

// Apply materializes the layout under the root, node by node, in layout
// order. A started run is recorded in the journal up front and finalized with
// the outcome, so interrupted runs remain visible as PENDING.
func (s *scaffolder) Apply(ctx context.Context) (*domain.Run, error) {
	run := s.newRun(domain.RunKindScaffold)
	ctx = logger.WithFields(ctx,
		zap.String("run", uuid.UUID(run.ID).String()),
		zap.String("layout", s.layout.Name),
		zap.String("root", s.options.Root))

	if s.options.DryRun {
		logger.Info(ctx, "dry run, no changes will be made")
	} else if err := s.record(ctx, run); err != nil {
		return nil, err
	}

	stats, applyErr := s.applyNodes(ctx)
	run.Stats = stats

	if err := s.finish(ctx, run, applyErr); err != nil {
		return nil, err
	}
	if applyErr != nil {
		return nil, applyErr
	}

	logger.Info(ctx, "scaffold applied",
		zap.Int("dirsCreated", stats.DirsCreated),
		zap.Int("filesCreated", stats.FilesCreated),
		zap.Int("filesKept", stats.FilesKept),
		zap.Int("templatesWritten", stats.TemplatesWritten))

	return run, nil
}

// applyNodes walks the layout sequentially and returns the effect counters.
// It stops at the first failure.
func (s *scaffolder) applyNodes(ctx context.Context) (domain.RunStats, error) {
	var stats domain.RunStats

	if err := s.ensureDir(ctx, s.options.Root, &stats); err != nil {
		return stats, err
	}

	for _, n := range s.layout.Nodes {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("scaffold interrupted: %w", err)
		}

		abs := filepath.Join(s.options.Root, filepath.FromSlash(n.Path))

		var err error
		switch n.Kind {
		case domain.NodeDir:
			err = s.ensureDir(ctx, abs, &stats)
		case domain.NodeFile:
			err = s.ensureFile(ctx, abs, &stats)
		case domain.NodeTemplate:
			err = s.writeTemplate(ctx, abs, n.Content, &stats)
		default:
			err = serrors.With(serrors.ErrInternal, "unknown node kind %q", n.Kind)
		}
		if err != nil {
			return stats, fmt.Errorf("node %q: %w", n.Path, err)
		}
	}

	return stats, nil
}

// ensureDir creates the directory when missing. An existing non-directory at
// the path is a conflict.
func (s *scaffolder) ensureDir(ctx context.Context, abs string, stats *domain.RunStats) error {
	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return serrors.With(serrors.ErrConflict, "%q exists and is not a directory", abs)
	case !errors.Is(err, fs.ErrNotExist):
		return serrors.Wrap(serrors.ErrIO, err, "could not stat %q", abs)
	}

	logger.Debug(ctx, "creating directory", zap.String("path", abs))
	if s.options.DryRun {
		stats.DirsCreated++

		return nil
	}

	if err := os.MkdirAll(abs, s.options.DirMode); err != nil {
		return serrors.Wrap(serrors.ErrIO, err, "could not create directory %q", abs)
	}
	stats.DirsCreated++

	return nil
}

// ensureFile creates an empty placeholder once. Existing files, whatever
// their content, are left untouched.
func (s *scaffolder) ensureFile(ctx context.Context, abs string, stats *domain.RunStats) error {
	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return serrors.With(serrors.ErrConflict, "%q exists and is a directory", abs)
	case err == nil:
		stats.FilesKept++

		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return serrors.Wrap(serrors.ErrIO, err, "could not stat %q", abs)
	}

	logger.Debug(ctx, "creating placeholder", zap.String("path", abs))
	if s.options.DryRun {
		stats.FilesCreated++

		return nil
	}

	if err := s.ensureParent(abs); err != nil {
		return err
	}

	f, err := os.OpenFile(abs, os.O_CREATE|os.O_EXCL|os.O_WRONLY, s.options.FileMode)
	if err != nil {
		return serrors.Wrap(serrors.ErrIO, err, "could not create placeholder %q", abs)
	}
	if err := f.Close(); err != nil {
		return serrors.Wrap(serrors.ErrIO, err, "could not close placeholder %q", abs)
	}
	stats.FilesCreated++

	return nil
}

// writeTemplate (re)writes a template file atomically so a crashed run never
// leaves a half-written template behind.
func (s *scaffolder) writeTemplate(ctx context.Context, abs, content string, stats *domain.RunStats) error {
	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return serrors.With(serrors.ErrConflict, "%q exists and is a directory", abs)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return serrors.Wrap(serrors.ErrIO, err, "could not stat %q", abs)
	}

	logger.Debug(ctx, "writing template", zap.String("path", abs), zap.Int("bytes", len(content)))
	if s.options.DryRun {
		stats.TemplatesWritten++

		return nil
	}

	if err := s.ensureParent(abs); err != nil {
		return err
	}

	if err := renameio.WriteFile(abs, []byte(content), s.options.FileMode); err != nil {
		return serrors.Wrap(serrors.ErrIO, err, "could not write template %q", abs)
	}
	stats.TemplatesWritten++

	return nil
}

// ensureParent creates missing parent directories for a file node whose
// parent is not itself part of the layout.
func (s *scaffolder) ensureParent(abs string) error {
	if err := os.MkdirAll(filepath.Dir(abs), s.options.DirMode); err != nil {
		return serrors.Wrap(serrors.ErrIO, err, "could not create parent of %q", abs)
	}

	return nil
}

// newRun builds a fresh pending run for this scaffolder.
func (s *scaffolder) newRun(kind domain.RunKind) *domain.Run {
	return &domain.Run{
		ID:        domain.RunID(uuid.New()),
		Kind:      kind,
		Root:      s.options.Root,
		Status:    domain.RunStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// record stores the pending run in the journal.
func (s *scaffolder) record(ctx context.Context, run *domain.Run) error {
	if s.journal == nil {
		return nil
	}

	if _, err := s.journal.StoreRuns(ctx, *run); err != nil {
		return fmt.Errorf("could not record run: %w", err)
	}

	return nil
}

// finish finalizes the run record with the outcome and updates the in-memory
// run to match. The journal update happens in a transaction so readers never
// observe a half-updated row.
func (s *scaffolder) finish(ctx context.Context, run *domain.Run, cause error) error {
	run.Duration = time.Since(run.CreatedAt)
	run.Status = domain.RunStatusCompleted
	if cause != nil {
		run.Status = domain.RunStatusFailed
		run.LastError = cause.Error()
	}

	if s.journal == nil || s.options.DryRun {
		return nil
	}

	updates := storage.RunUpdates{
		Status:    run.Status,
		Stats:     &run.Stats,
		LastError: &run.LastError,
		Duration:  &run.Duration,
	}
	if err := s.journal.WithTx(ctx, func(tx storage.AllStorage) error {
		updated, err := tx.UpdateRunByID(ctx, run.ID, updates)
		if err != nil {
			return err
		}
		if updated == nil {
			return serrors.With(serrors.ErrNotFound, "run %s vanished from journal", uuid.UUID(run.ID))
		}

		return nil
	}); err != nil {
		return fmt.Errorf("could not finalize run: %w", err)
	}

	return nil
}
