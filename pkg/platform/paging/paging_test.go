package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "contacts/pkg/domain-errors"
)

func TestNormalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r, err := Request{}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, Request{Page: 1, PerPage: DefaultPerPage}, r)
		assert.Zero(t, r.Offset())
	})

	t.Run("offset", func(t *testing.T) {
		r, err := Request{Page: 3, PerPage: 10}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, 20, r.Offset())
	})

	t.Run("rejects out of range", func(t *testing.T) {
		for _, r := range []Request{{Page: -1}, {PerPage: -1}, {PerPage: MaxPerPage + 1}} {
			_, err := r.Normalize()
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "%+v", r)
		}
	})
}
