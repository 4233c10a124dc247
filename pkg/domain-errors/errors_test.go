package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		assert.True(t, HasCode(New(CodeNotFound, "contact not found"), CodeNotFound))
		assert.False(t, HasCode(New(CodeNotFound, "contact not found"), CodeConflict))
	})

	t.Run("through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("load: %w", New(CodeForbidden, "not owner"))
		assert.True(t, HasCode(err, CodeForbidden))
	})

	t.Run("plain error has no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "failed to flush")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, "failed to flush", MessageOf(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestErrorsIsMatchesCodeAndMessage(t *testing.T) {
	err := fmt.Errorf("ctx: %w", New(CodeUnauthorized, "invalid token"))

	require.ErrorIs(t, err, New(CodeUnauthorized, "invalid token"))
	assert.NotErrorIs(t, err, New(CodeUnauthorized, "token has expired"))
}
