// Package tenancy declares the capabilities entities opt into and the
// ownership checks built on them.
package tenancy

import (
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
)

// TenantAware entities belong to exactly one tenant. Only tenant-aware
// entities are audited.
type TenantAware interface {
	Tenant() id.TenantID
}

// OwnershipAware entities name the user allowed to view and edit them.
type OwnershipAware interface {
	Owner() id.UserID
}

// Permission is a voter attribute.
type Permission string

const (
	PermissionView Permission = "CONTACT_VIEW"
	PermissionEdit Permission = "CONTACT_EDIT"
)

// Vote grants a permission on subject to principal. Only the owner may view
// or edit; an anonymous principal is always denied.
func Vote(principal id.UserID, perm Permission, subject OwnershipAware) bool {
	if principal.IsNil() || subject == nil {
		return false
	}
	switch perm {
	case PermissionView, PermissionEdit:
		return subject.Owner() == principal
	default:
		return false
	}
}

// Authorize is Vote returning a forbidden domain error on denial.
func Authorize(principal id.UserID, perm Permission, subject OwnershipAware) error {
	if principal.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if !Vote(principal, perm, subject) {
		return dErrors.New(dErrors.CodeForbidden, "access denied")
	}
	return nil
}

// SameTenant reports whether e belongs to tenant.
func SameTenant(e TenantAware, tenant id.TenantID) bool {
	return e != nil && !tenant.IsNil() && e.Tenant() == tenant
}
