package audit_test

import (
	id "contacts/pkg/domain"
)

// Pet is a tenant-aware entity with one association and one collection.
type Pet struct {
	ID       int64       `db:"id,pk"`
	TenantID id.TenantID `db:"tenant_id" assoc:"tenant"`
	HouseID  int64       `db:"house_id" assoc:"house"`
	Name     string      `db:"name"`
	Nickname *string     `db:"nickname"`
	Toys     []*Toy      `db:"-"`
}

func (p *Pet) Tenant() id.TenantID { return p.TenantID }

// Toy is not tenant-aware and is never audited.
type Toy struct {
	ID   int64  `db:"id,pk"`
	Name string `db:"name"`
}

// Chore is tenant-aware but has no primary key.
type Chore struct {
	TenantID id.TenantID `db:"tenant_id" assoc:"tenant"`
	Task     string      `db:"task"`
}

func (c *Chore) Tenant() id.TenantID { return c.TenantID }

func strPtr(s string) *string { return &s }
