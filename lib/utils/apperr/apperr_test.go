package apperr

import (
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAppErr(t *testing.T) {
	t.Run(`kind checks match only their own kind`, func(t *testing.T) {
		err := NewValidation("bad input")
		require.True(t, IsValidation(err))
		require.False(t, IsNotFound(err))
		require.False(t, IsConflict(err))
		require.False(t, IsDependency(err))
	})

	t.Run(`wrapped dependency keeps its cause`, func(t *testing.T) {
		cause := pkgerrors.New("connection refused")
		err := WrapDependency(cause, "failed to load user")
		require.True(t, IsDependency(err))
		require.ErrorIs(t, err, cause)
		require.Equal(t, "failed to load user: connection refused", err.Error())
	})

	t.Run(`kind survives further wrapping`, func(t *testing.T) {
		err := pkgerrors.WithMessage(NewNotFound("user not found"), "handler")
		require.True(t, IsNotFound(err))
	})

	t.Run(`foreign errors have no kind`, func(t *testing.T) {
		err := pkgerrors.New("plain")
		require.False(t, IsValidation(err))
		require.False(t, IsNotFound(err))
		require.False(t, IsConflict(err))
		require.False(t, IsDependency(err))
	})
}
