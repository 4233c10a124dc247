package tenancy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
)

type owned struct {
	owner  id.UserID
	tenant id.TenantID
}

func (o owned) Owner() id.UserID    { return o.owner }
func (o owned) Tenant() id.TenantID { return o.tenant }

func TestVote(t *testing.T) {
	subject := owned{owner: 1, tenant: 1}

	tests := []struct {
		name      string
		principal id.UserID
		perm      Permission
		want      bool
	}{
		{"owner may view", 1, PermissionView, true},
		{"owner may edit", 1, PermissionEdit, true},
		{"other user may not view", 2, PermissionView, false},
		{"other user may not edit", 2, PermissionEdit, false},
		{"anonymous denied", 0, PermissionView, false},
		{"unknown permission denied", 1, Permission("CONTACT_SHARE"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Vote(tt.principal, tt.perm, subject))
		})
	}
	assert.False(t, Vote(1, PermissionView, nil))
}

func TestAuthorize(t *testing.T) {
	subject := owned{owner: 1}
	assert.NoError(t, Authorize(1, PermissionEdit, subject))
	assert.True(t, dErrors.HasCode(Authorize(2, PermissionEdit, subject), dErrors.CodeForbidden))
	assert.True(t, dErrors.HasCode(Authorize(0, PermissionEdit, subject), dErrors.CodeUnauthorized))
}

func TestSameTenant(t *testing.T) {
	assert.True(t, SameTenant(owned{tenant: 3}, 3))
	assert.False(t, SameTenant(owned{tenant: 3}, 4))
	assert.False(t, SameTenant(owned{tenant: 0}, 0))
	assert.False(t, SameTenant(nil, 3))
}
