package serrors_test

import (
	"errors"
	"fmt"
	"io/fs"
	"mdvalidate/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrBadRequest,
		serrors.ErrDecode,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}

	require.NotEqual(t, serrors.ErrDecode, serrors.ErrInternal, "Decode should not equal Internal")
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("permission denied")

	e1 := serrors.With(serrors.ErrNotFound, "root %q does not exist", "docs")
	require.Equal(t, `root "docs" does not exist`, e1.Error(), "With() Error() mismatch")

	e2 := serrors.Wrap(serrors.ErrInternal, base, "reading docs/a.md")
	require.Equal(t, "reading docs/a.md: permission denied", e2.Error(), "Wrap() Error() mismatch")
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	e := serrors.Wrap(serrors.ErrNotFound, fs.ErrNotExist, "stat root")

	require.ErrorIs(t, e, serrors.ErrNotFound)
	require.ErrorIs(t, e, fs.ErrNotExist)
	require.NotErrorIs(t, e, serrors.ErrDecode, "errors.Is should not match a different kind")

	// wrapping with fmt keeps the kind reachable
	wrapped := fmt.Errorf("could not validate: %w", e)
	require.ErrorIs(t, wrapped, serrors.ErrNotFound)
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrDecode, base, "reading")

	var k serrors.Kind
	require.ErrorAs(t, e, &k, "errors.As should extract Kind")
	require.Equal(t, serrors.ErrDecode, k)

	var ce *customError
	require.ErrorAs(t, e, &ce, "errors.As should extract wrapped error type")
	require.Equal(t, base, ce, "extracted cause pointer mismatch")
}

func TestKindOf(t *testing.T) {
	e := fmt.Errorf("outer: %w", serrors.With(serrors.ErrBadRequest, "not a directory"))
	require.Equal(t, serrors.ErrBadRequest, serrors.KindOf(e))
	require.Nil(t, serrors.KindOf(errors.New("plain")))
}
