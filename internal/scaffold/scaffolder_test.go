package scaffold_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"elekit/internal/scaffold"
	"elekit/pkg/domain"
	"elekit/pkg/serrors"
	"elekit/pkg/storage"
	mockstorage "elekit/pkg/storage/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testLayout() domain.Layout {
	return domain.Layout{Name: "mini", Nodes: []domain.Node{
		{Path: "src", Kind: domain.NodeDir},
		{Path: "src/app.py", Kind: domain.NodeFile},
		{Path: "docs", Kind: domain.NodeDir},
		{Path: "docs/README.md", Kind: domain.NodeTemplate, Content: "# Mini\n"},
		{Path: ".gitignore", Kind: domain.NodeTemplate, Content: "*.pyc\n"},
	}}
}

// newTestScaffolder builds a scaffolder over a temp root without a journal.
func newTestScaffolder(t *testing.T) (string, scaffold.Scaffolder) {
	t.Helper()

	root := filepath.Join(t.TempDir(), "project")
	s, err := scaffold.New(testLayout(), nil, scaffold.Options{Root: root})
	require.NoError(t, err)

	return root, s
}

// expectWithTx wires Storage.WithTx to execute the callback with a MockAllStorage.
func expectWithTx(
	t *testing.T,
	ctrl *gomock.Controller,
	m *mockstorage.MockStorage,
	fn func(tx *mockstorage.MockAllStorage)) {
	t.Helper()

	m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cb func(storage.AllStorage) error) error {
			tx := mockstorage.NewMockAllStorage(ctrl)
			if fn != nil {
				fn(tx)
			}

			return cb(tx)
		},
	)
}

func TestApplyCreatesTree(t *testing.T) {
	root, s := newTestScaffolder(t)

	run, err := s.Apply(context.Background())
	require.NoError(t, err)
	require.NotNil(t, run)
	require.Equal(t, domain.RunStatusCompleted, run.Status)
	require.Equal(t, domain.RunKindScaffold, run.Kind)

	// the root itself plus the two layout dirs
	require.Equal(t, 3, run.Stats.DirsCreated)
	require.Equal(t, 1, run.Stats.FilesCreated)
	require.Equal(t, 0, run.Stats.FilesKept)
	require.Equal(t, 2, run.Stats.TemplatesWritten)

	for _, dir := range []string{"src", "docs"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}

	info, err := os.Stat(filepath.Join(root, "src/app.py"))
	require.NoError(t, err)
	require.Zero(t, info.Size(), "placeholder must be created empty")

	got, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	require.NoError(t, err)
	require.Equal(t, "*.pyc\n", string(got))
}

func TestApplyIsIdempotent(t *testing.T) {
	root, s := newTestScaffolder(t)
	ctx := context.Background()

	_, err := s.Apply(ctx)
	require.NoError(t, err)

	// second run: nothing created, placeholders kept, templates rewritten
	run, err := s.Apply(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, run.Stats.DirsCreated)
	require.Equal(t, 0, run.Stats.FilesCreated)
	require.Equal(t, 1, run.Stats.FilesKept)
	require.Equal(t, 2, run.Stats.TemplatesWritten)

	got, err := os.ReadFile(filepath.Join(root, "docs/README.md"))
	require.NoError(t, err)
	require.Equal(t, "# Mini\n", string(got))
}

func TestApplyPreservesEditedPlaceholders(t *testing.T) {
	root, s := newTestScaffolder(t)
	ctx := context.Background()

	_, err := s.Apply(ctx)
	require.NoError(t, err)

	// user starts implementing the module
	edited := filepath.Join(root, "src/app.py")
	require.NoError(t, os.WriteFile(edited, []byte("print('hola')\n"), 0o644))

	run, err := s.Apply(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, run.Stats.FilesKept)

	got, err := os.ReadFile(edited)
	require.NoError(t, err)
	require.Equal(t, "print('hola')\n", string(got), "re-running must not touch edited placeholders")
}

func TestApplyRestoresDriftedTemplates(t *testing.T) {
	root, s := newTestScaffolder(t)
	ctx := context.Background()

	_, err := s.Apply(ctx)
	require.NoError(t, err)

	drifted := filepath.Join(root, ".gitignore")
	require.NoError(t, os.WriteFile(drifted, []byte("everything\n"), 0o644))

	_, err = s.Apply(ctx)
	require.NoError(t, err)

	got, err := os.ReadFile(drifted)
	require.NoError(t, err)
	require.Equal(t, "*.pyc\n", string(got), "templates must be rewritten on every run")
}

func TestApplyConflict(t *testing.T) {
	root, s := newTestScaffolder(t)
	ctx := context.Background()

	// a directory sits where the layout expects a placeholder file
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src/app.py"), 0o755))

	_, err := s.Apply(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrConflict)
}

func TestApplyDryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	journal := mockstorage.NewMockStorage(ctrl)
	// no journal expectations: a dry run must not record anything

	root := filepath.Join(t.TempDir(), "project")
	s, err := scaffold.New(testLayout(), journal, scaffold.Options{Root: root, DryRun: true})
	require.NoError(t, err)

	run, err := s.Apply(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, run.Stats.DirsCreated)
	require.Equal(t, 1, run.Stats.FilesCreated)
	require.Equal(t, 2, run.Stats.TemplatesWritten)

	_, err = os.Stat(root)
	require.ErrorIs(t, err, os.ErrNotExist, "dry run must not create the root")
}

func TestApplyRecordsRunInJournal(t *testing.T) {
	ctrl := gomock.NewController(t)
	journal := mockstorage.NewMockStorage(ctrl)

	var storedID domain.RunID
	journal.EXPECT().StoreRuns(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, runs ...domain.Run) ([]domain.Run, error) {
			require.Len(t, runs, 1)
			require.Equal(t, domain.RunStatusPending, runs[0].Status)
			storedID = runs[0].ID

			return runs, nil
		},
	)
	expectWithTx(t, ctrl, journal, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().UpdateRunByID(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, id domain.RunID, updates storage.RunUpdates) (*domain.Run, error) {
				require.Equal(t, storedID, id)
				require.Equal(t, domain.RunStatusCompleted, updates.Status)
				require.NotNil(t, updates.Stats)
				require.NotNil(t, updates.Duration)

				return &domain.Run{ID: id, Status: updates.Status}, nil
			},
		)
	})

	s, err := scaffold.New(testLayout(), journal, scaffold.Options{
		Root: filepath.Join(t.TempDir(), "project"),
	})
	require.NoError(t, err)

	run, err := s.Apply(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.RunStatusCompleted, run.Status)
}

func TestApplyRecordsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	journal := mockstorage.NewMockStorage(ctrl)

	journal.EXPECT().StoreRuns(gomock.Any(), gomock.Any()).Return(nil, nil)
	expectWithTx(t, ctrl, journal, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().UpdateRunByID(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, id domain.RunID, updates storage.RunUpdates) (*domain.Run, error) {
				require.Equal(t, domain.RunStatusFailed, updates.Status)
				require.NotNil(t, updates.LastError)
				require.NotEmpty(t, *updates.LastError)

				return &domain.Run{ID: id, Status: updates.Status}, nil
			},
		)
	})

	root := filepath.Join(t.TempDir(), "project")
	// force a conflict
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src/app.py"), 0o755))

	s, err := scaffold.New(testLayout(), journal, scaffold.Options{Root: root})
	require.NoError(t, err)

	_, err = s.Apply(context.Background())
	require.ErrorIs(t, err, serrors.ErrConflict)
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := scaffold.New(testLayout(), nil, scaffold.Options{})
	require.ErrorIs(t, err, serrors.ErrInvalid)
}
