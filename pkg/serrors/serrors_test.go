package serrors_test

import (
	"elekit/pkg/serrors"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrInvalid,
		serrors.ErrConflict,
		serrors.ErrIO,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}

	require.NotEqual(t, serrors.ErrNotFound, serrors.ErrInvalid, "NotFound should not equal Invalid")
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("disk full")

	e1 := serrors.With(serrors.ErrNotFound, "run %d not found", 42)
	require.Equal(t, "run 42 not found", e1.Error(), "With() Error() mismatch")

	e2 := serrors.Wrap(serrors.ErrIO, base, "writing template")
	require.Equal(t, "writing template: disk full", e2.Error(), "Wrap() Error() mismatch")

	e3 := serrors.KindOnly(serrors.ErrNotFound)
	require.Equal(t, "NOT_FOUND", e3.Error(), "KindOnly Error() mismatch")
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrInvalid, base, "parsing layout")

	require.ErrorIs(t, e, serrors.ErrInvalid)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrNotFound, "errors.Is should not match a different kind")
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrInvalid, base, "parsing layout")

	var k serrors.Kind
	require.ErrorAs(t, e, &k, "errors.As should extract Kind")
	require.Equal(t, serrors.ErrInvalid, k)

	var ce *customError
	require.ErrorAs(t, e, &ce, "errors.As should extract wrapped error type")
	require.Equal(t, base, ce, "extracted cause pointer mismatch")
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrConflict, base, "path is a directory")
	require.Equal(t, serrors.ErrConflict, e.Kind())
	require.Equal(t, "path is a directory", e.Message())
	require.Equal(t, base, e.Cause())
}
