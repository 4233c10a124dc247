// Package store reads contacts, names and dates for one tenant at a time.
// Writes go through the unit of work.
package store

import (
	"context"
	"errors"

	auditmodels "contacts/internal/audit/models"
	"contacts/internal/contact/models"
	id "contacts/pkg/domain"
	"contacts/pkg/platform/sentinel"
)

// ErrNotFound is returned for rows that do not exist in the caller's tenant.
var ErrNotFound = sentinel.ErrNotFound

type contactFinder interface {
	FindContact(ctx context.Context, tenant id.TenantID, contactID id.ContactID) (*models.Contact, error)
}

// Timeline resolves contact timelines on top of either store.
type Timeline struct {
	contacts contactFinder
}

func NewTimeline(contacts contactFinder) *Timeline {
	return &Timeline{contacts: contacts}
}

func (Timeline) RootType() string { return models.EntityContact }

// TimelineRefs returns the contact followed by its current names and dates.
func (t *Timeline) TimelineRefs(ctx context.Context, tenant id.TenantID, rootID int64) ([]auditmodels.EntityRef, error) {
	c, err := t.contacts.FindContact(ctx, tenant, id.ContactID(rootID))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	refs := make([]auditmodels.EntityRef, 0, 1+len(c.Names)+len(c.Dates))
	refs = append(refs, auditmodels.EntityRef{Type: models.EntityContact, ID: int64(c.ID)})
	for _, n := range c.Names {
		refs = append(refs, auditmodels.EntityRef{Type: models.EntityContactName, ID: int64(n.ID)})
	}
	for _, d := range c.Dates {
		refs = append(refs, auditmodels.EntityRef{Type: models.EntityContactDate, ID: int64(d.ID)})
	}
	return refs, nil
}
