package store

import (
	"context"
	"fmt"

	"contacts/internal/contact/models"
	"contacts/internal/persistence/memory"
	"contacts/internal/persistence/schema"
	id "contacts/pkg/domain"
)

// InMemoryStore reads rows written to a memory.DB.
type InMemoryStore struct {
	db       *memory.DB
	contacts *schema.Metadata
	names    *schema.Metadata
	dates    *schema.Metadata
}

func NewInMemory(db *memory.DB, registry *schema.Registry) (*InMemoryStore, error) {
	s := &InMemoryStore{db: db}
	for dst, e := range map[**schema.Metadata]any{
		&s.contacts: &models.Contact{},
		&s.names:    &models.ContactName{},
		&s.dates:    &models.ContactDate{},
	} {
		m, err := registry.Of(e)
		if err != nil {
			return nil, fmt.Errorf("contact metadata: %w", err)
		}
		*dst = m
	}
	return s, nil
}

func (s *InMemoryStore) FindContact(_ context.Context, tenant id.TenantID, contactID id.ContactID) (*models.Contact, error) {
	row, ok := s.db.Get(s.contacts.Table, int64(contactID))
	if !ok || !memory.SameTenant(row, tenant) {
		return nil, ErrNotFound
	}
	c := &models.Contact{}
	if err := s.contacts.Hydrate(row, c); err != nil {
		return nil, err
	}
	if err := s.attachChildren(tenant, []*models.Contact{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *InMemoryStore) ListContacts(_ context.Context, tenant id.TenantID, offset, limit int) ([]*models.Contact, error) {
	contacts, err := memory.HydrateAll[models.Contact](s.contacts, memory.Window(s.db.Select(s.contacts.Table, memory.TenantRows(tenant)), offset, limit))
	if err != nil {
		return nil, err
	}
	if err := s.attachChildren(tenant, contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *InMemoryStore) FindName(_ context.Context, tenant id.TenantID, nameID id.ContactNameID) (*models.ContactName, error) {
	return memory.FindInTenant[models.ContactName](s.db, s.names, tenant, int64(nameID))
}

func (s *InMemoryStore) ListNames(_ context.Context, tenant id.TenantID, offset, limit int) ([]*models.ContactName, error) {
	return memory.HydrateAll[models.ContactName](s.names, memory.Window(s.db.Select(s.names.Table, memory.TenantRows(tenant)), offset, limit))
}

// FindNamesMatching compares parts exactly, so a nil part only matches a
// missing one.
func (s *InMemoryStore) FindNamesMatching(_ context.Context, tenant id.TenantID, family, given *string) ([]*models.ContactName, error) {
	rows := s.db.Select(s.names.Table, memory.TenantRows(tenant, func(row schema.Row) bool {
		return schema.Equal(row["family"], family) && schema.Equal(row["given"], given)
	}))
	return memory.HydrateAll[models.ContactName](s.names, rows)
}

func (s *InMemoryStore) FindDate(_ context.Context, tenant id.TenantID, dateID id.ContactDateID) (*models.ContactDate, error) {
	return memory.FindInTenant[models.ContactDate](s.db, s.dates, tenant, int64(dateID))
}

func (s *InMemoryStore) ListDates(_ context.Context, tenant id.TenantID, offset, limit int) ([]*models.ContactDate, error) {
	return memory.HydrateAll[models.ContactDate](s.dates, memory.Window(s.db.Select(s.dates.Table, memory.TenantRows(tenant)), offset, limit))
}

// attachChildren loads names and dates of contacts, in id order.
func (s *InMemoryStore) attachChildren(tenant id.TenantID, contacts []*models.Contact) error {
	byID := make(map[id.ContactID]*models.Contact, len(contacts))
	for _, c := range contacts {
		c.Names, c.Dates = []*models.ContactName{}, []*models.ContactDate{}
		byID[c.ID] = c
	}
	names, err := memory.HydrateAll[models.ContactName](s.names, s.db.Select(s.names.Table, memory.TenantRows(tenant)))
	if err != nil {
		return err
	}
	for _, n := range names {
		if c, ok := byID[n.ContactID]; ok {
			c.Names = append(c.Names, n)
		}
	}
	dates, err := memory.HydrateAll[models.ContactDate](s.dates, s.db.Select(s.dates.Table, memory.TenantRows(tenant)))
	if err != nil {
		return err
	}
	for _, d := range dates {
		if c, ok := byID[d.ContactID]; ok {
			c.Dates = append(c.Dates, d)
		}
	}
	return nil
}
