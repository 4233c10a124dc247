// Package store implements audit entry queries over the memory engine and
// PostgreSQL. Writes go through the unit of work; these stores only read.
package store

import (
	"context"
	"fmt"
	"sort"

	"contacts/internal/audit/models"
	"contacts/internal/persistence/memory"
	"contacts/internal/persistence/schema"
	id "contacts/pkg/domain"
	"contacts/pkg/platform/sentinel"
)

// InMemoryStore reads entries written to a memory.DB.
type InMemoryStore struct {
	db   *memory.DB
	meta *schema.Metadata
}

func NewInMemory(db *memory.DB, registry *schema.Registry) (*InMemoryStore, error) {
	meta, err := registry.Of(&models.Entry{})
	if err != nil {
		return nil, fmt.Errorf("audit entry metadata: %w", err)
	}
	return &InMemoryStore{db: db, meta: meta}, nil
}

func (s *InMemoryStore) List(_ context.Context, tenant id.TenantID, filter models.Filter) ([]*models.Entry, error) {
	all, err := s.load(tenant, filter.Matches)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if filter.Order == models.OrderAsc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	start := filter.Offset()
	if start >= len(all) {
		return []*models.Entry{}, nil
	}
	end := len(all)
	if filter.PerPage > 0 && start+filter.PerPage < end {
		end = start + filter.PerPage
	}
	return all[start:end], nil
}

func (s *InMemoryStore) FindByID(_ context.Context, tenant id.TenantID, entryID id.AuditEntryID) (*models.Entry, error) {
	row, ok := s.db.Get(s.meta.Table, int64(entryID))
	if !ok || !sameTenant(row, tenant) {
		return nil, sentinel.ErrNotFound
	}
	entry := &models.Entry{}
	if err := s.meta.Hydrate(row, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *InMemoryStore) ListByRefs(_ context.Context, tenant id.TenantID, refs []models.EntityRef) ([]*models.Entry, error) {
	wanted := make(map[models.EntityRef]struct{}, len(refs))
	for _, ref := range refs {
		wanted[ref] = struct{}{}
	}
	return s.load(tenant, func(e *models.Entry) bool {
		ref, ok := e.Ref()
		if !ok {
			return false
		}
		_, hit := wanted[ref]
		return hit
	})
}

// load hydrates the tenant's entries accepted by keep, in id order.
func (s *InMemoryStore) load(tenant id.TenantID, keep func(*models.Entry) bool) ([]*models.Entry, error) {
	rows := s.db.Select(s.meta.Table, func(row schema.Row) bool {
		return sameTenant(row, tenant)
	})
	out := make([]*models.Entry, 0, len(rows))
	for _, row := range rows {
		entry := &models.Entry{}
		if err := s.meta.Hydrate(row, entry); err != nil {
			return nil, err
		}
		if keep(entry) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func sameTenant(row schema.Row, tenant id.TenantID) bool {
	v, ok := schema.Normalize(row["tenant_id"]).(int64)
	return ok && v == int64(tenant)
}
