package memory

import (
	"contacts/internal/persistence/schema"
	id "contacts/pkg/domain"
	"contacts/pkg/platform/sentinel"
)

// FindInTenant hydrates the row keyed by key in m's table. Rows of another
// tenant are reported as sentinel.ErrNotFound.
func FindInTenant[T any](db *DB, m *schema.Metadata, tenant id.TenantID, key int64) (*T, error) {
	row, ok := db.Get(m.Table, key)
	if !ok || !SameTenant(row, tenant) {
		return nil, sentinel.ErrNotFound
	}
	out := new(T)
	if err := m.Hydrate(row, out); err != nil {
		return nil, err
	}
	return out, nil
}

// HydrateAll hydrates rows in order.
func HydrateAll[T any](m *schema.Metadata, rows []schema.Row) ([]*T, error) {
	out := make([]*T, 0, len(rows))
	for _, row := range rows {
		v := new(T)
		if err := m.Hydrate(row, v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Window applies offset and limit to rows. A non-positive limit keeps the
// rest.
func Window(rows []schema.Row, offset, limit int) []schema.Row {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// TenantRows selects the rows of tenant, optionally narrowed by more.
func TenantRows(tenant id.TenantID, more ...func(schema.Row) bool) func(schema.Row) bool {
	return func(row schema.Row) bool {
		if !SameTenant(row, tenant) {
			return false
		}
		for _, keep := range more {
			if !keep(row) {
				return false
			}
		}
		return true
	}
}

// SameTenant reports whether row's tenant_id column is tenant.
func SameTenant(row schema.Row, tenant id.TenantID) bool {
	v, ok := schema.Normalize(row["tenant_id"]).(int64)
	return ok && v == int64(tenant)
}
