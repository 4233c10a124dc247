package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/persistence/schema"
	id "contacts/pkg/domain"
	"contacts/pkg/platform/sentinel"
)

type Memo struct {
	ID       int64       `db:"id,pk"`
	TenantID id.TenantID `db:"tenant_id"`
	Kind     string      `db:"kind"`
}

func TestTenantQueries(t *testing.T) {
	db := New()
	m := newMeta(t, &Memo{})
	ctx := context.Background()
	for i, memo := range []Memo{{1, 1, "a"}, {2, 2, "a"}, {3, 1, "b"}, {4, 1, "a"}} {
		require.NoError(t, db.Insert(ctx, m, m.Row(&memo)), i)
	}

	got, err := FindInTenant[Memo](db, m, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Kind)

	_, err = FindInTenant[Memo](db, m, 1, 2)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	kindA := func(row schema.Row) bool { return row["kind"] == "a" }
	rows := db.Select(m.Table, TenantRows(1, kindA))
	memos, err := HydrateAll[Memo](m, rows)
	require.NoError(t, err)
	require.Len(t, memos, 2)
	assert.Equal(t, int64(1), memos[0].ID)
	assert.Equal(t, int64(4), memos[1].ID)

	assert.Len(t, Window(rows, 1, 5), 1)
	assert.Nil(t, Window(rows, 2, 5))
	assert.Len(t, Window(rows, 0, 0), 2)
}
