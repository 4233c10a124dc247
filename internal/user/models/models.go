// Package models defines users. Every user is the tenant of the contacts it
// creates.
package models

import (
	"slices"
	"time"

	id "contacts/pkg/domain"
)

const RoleUser = "ROLE_USER"

// User is identified externally by UUID, a client-chosen login name.
// Users are not tenant-aware and are never audited.
type User struct {
	ID        id.UserID `db:"id,pk" json:"id"`
	UUID      string    `db:"uuid" json:"uuid"`
	Roles     []string  `db:"roles,json" json:"-"`
	Password  string    `db:"password" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// GrantedRoles always includes RoleUser.
func (u *User) GrantedRoles() []string {
	roles := slices.Clone(u.Roles)
	if !slices.Contains(roles, RoleUser) {
		roles = append(roles, RoleUser)
	}
	return roles
}
