package audit

import (
	"context"

	"contacts/internal/audit/models"
	id "contacts/pkg/domain"
)

// EntryReader queries committed audit entries. Every method is scoped to one
// tenant; entries of other tenants are invisible.
type EntryReader interface {
	List(ctx context.Context, tenant id.TenantID, filter models.Filter) ([]*models.Entry, error)
	FindByID(ctx context.Context, tenant id.TenantID, entryID id.AuditEntryID) (*models.Entry, error)
	// ListByRefs returns the entries about any of refs, ordered by id.
	ListByRefs(ctx context.Context, tenant id.TenantID, refs []models.EntityRef) ([]*models.Entry, error)
}

// TimelineSource resolves a root entity and the children it directly owns.
type TimelineSource interface {
	// RootType is the entity type name of timeline roots, used in not-found errors.
	RootType() string
	// TimelineRefs returns the root's ref followed by one ref per direct child.
	// It returns sentinel.ErrNotFound when the root does not exist in tenant.
	TimelineRefs(ctx context.Context, tenant id.TenantID, rootID int64) ([]models.EntityRef, error)
}
