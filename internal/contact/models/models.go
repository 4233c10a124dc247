// Package models defines contacts and the names and dates they own.
package models

import (
	"time"

	id "contacts/pkg/domain"
)

// Contact is owned by the user who created it, inside that user's tenant.
type Contact struct {
	ID       id.ContactID   `db:"id,pk" json:"id"`
	TenantID id.TenantID    `db:"tenant_id" assoc:"tenant" json:"-"`
	OwnerID  id.UserID      `db:"user_id" assoc:"user" json:"-"`
	Names    []*ContactName `db:"-" json:"contactNames"`
	Dates    []*ContactDate `db:"-" json:"contactDates"`
}

func (c *Contact) Tenant() id.TenantID { return c.TenantID }
func (c *Contact) Owner() id.UserID    { return c.OwnerID }

// ContactName belongs to one contact and inherits its tenant and owner.
type ContactName struct {
	ID        id.ContactNameID `db:"id,pk" json:"id"`
	ContactID id.ContactID     `db:"contact_id" assoc:"contact" json:"contact"`
	TenantID  id.TenantID      `db:"tenant_id" assoc:"tenant" json:"-"`
	Family    *string          `db:"family" json:"family"`
	Given     *string          `db:"given" json:"given"`
}

func (n *ContactName) Tenant() id.TenantID { return n.TenantID }

// Owner is the owner of the parent contact, which is always the tenant's user.
func (n *ContactName) Owner() id.UserID { return id.UserID(n.TenantID) }

// ContactDate is a dated note (birthday, anniversary) on a contact. Date has
// day precision and is always UTC midnight.
type ContactDate struct {
	ID        id.ContactDateID `db:"id,pk" json:"id"`
	ContactID id.ContactID     `db:"contact_id" assoc:"contact" json:"contact"`
	TenantID  id.TenantID      `db:"tenant_id" assoc:"tenant" json:"-"`
	Date      *time.Time       `db:"date" json:"-"`
	Text      *string          `db:"text" json:"text"`
}

func (d *ContactDate) Tenant() id.TenantID { return d.TenantID }
func (d *ContactDate) Owner() id.UserID    { return id.UserID(d.TenantID) }

// Entities lists every persisted type of this package for registration.
func Entities() []any {
	return []any{&Contact{}, &ContactName{}, &ContactDate{}}
}
