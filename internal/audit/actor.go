package audit

import (
	"context"
	"errors"

	"contacts/internal/tenancy"
	id "contacts/pkg/domain"
	"contacts/pkg/requestcontext"
)

// ErrNoActor means a change could be attributed to neither a principal nor a
// tenant owner.
var ErrNoActor = errors.New("audit: no actor for change")

// ActorResolver decides who is responsible for a change.
type ActorResolver struct{}

// Resolve prefers the principal attached to ctx. Without one (CLI commands,
// background jobs) the owner of the entity's tenant is held responsible.
func (ActorResolver) Resolve(ctx context.Context, entity tenancy.TenantAware) (id.UserID, error) {
	if principal := requestcontext.UserID(ctx); !principal.IsNil() {
		return principal, nil
	}
	if entity != nil {
		if tenant := entity.Tenant(); !tenant.IsNil() {
			return id.UserID(tenant), nil
		}
	}
	return 0, ErrNoActor
}
