package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "contacts/pkg/domain"
)

func TestUserAndTenant(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, id.UserID(0), UserID(ctx))
	assert.True(t, TenantID(ctx).IsNil())

	ctx = WithUserID(ctx, 42)
	assert.Equal(t, id.UserID(42), UserID(ctx))
	assert.Equal(t, id.TenantID(42), TenantID(ctx))
}

func TestNow(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, Now(WithTime(context.Background(), fixed)))
	assert.WithinDuration(t, time.Now(), Now(context.Background()), time.Second)
}
