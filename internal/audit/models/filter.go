package models

import (
	"strconv"

	dErrors "contacts/pkg/domain-errors"
)

// Order is the createdAt sort direction of a listing.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const (
	DefaultPerPage = 30
	MaxPerPage     = 100
)

// Filter selects entries within one tenant. Zero values mean "no constraint"
// (or the default, for paging and order).
type Filter struct {
	EntityType string
	EntityID   *int64
	Action     Action
	Order      Order
	Page       int
	PerPage    int
}

// Normalized applies defaults and rejects out-of-range values.
func (f Filter) Normalized() (Filter, error) {
	switch f.Order {
	case "":
		f.Order = OrderDesc
	case OrderAsc, OrderDesc:
	default:
		return f, dErrors.New(dErrors.CodeInvalidInput, "order must be asc or desc")
	}
	if f.Action != "" && !f.Action.IsValid() {
		return f, dErrors.New(dErrors.CodeInvalidInput, "unknown action "+strconv.Quote(string(f.Action)))
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Page < 0 {
		return f, dErrors.New(dErrors.CodeInvalidInput, "page must be positive")
	}
	if f.PerPage == 0 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage < 0 || f.PerPage > MaxPerPage {
		return f, dErrors.New(dErrors.CodeInvalidInput, "itemsPerPage must be between 1 and "+strconv.Itoa(MaxPerPage))
	}
	return f, nil
}

// Offset is the number of entries skipped before the current page.
func (f Filter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PerPage
}

// Matches applies the exact-match constraints of the filter.
func (f Filter) Matches(e *Entry) bool {
	if f.EntityType != "" && e.EntityType != f.EntityType {
		return false
	}
	if f.EntityID != nil && (e.EntityID == nil || *e.EntityID != *f.EntityID) {
		return false
	}
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	return true
}
