// Package paging holds the page-number pagination shared by tenant-scoped
// collections.
package paging

import (
	"strconv"

	dErrors "contacts/pkg/domain-errors"
)

const (
	DefaultPerPage = 30
	MaxPerPage     = 100
)

// Request selects a page of a collection; zero values take the defaults.
type Request struct {
	Page    int
	PerPage int
}

// Normalize fills in defaults and rejects out-of-range values.
func (r Request) Normalize() (Request, error) {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.PerPage == 0 {
		r.PerPage = DefaultPerPage
	}
	if r.Page < 0 {
		return r, dErrors.New(dErrors.CodeInvalidInput, "page must be positive")
	}
	if r.PerPage < 0 || r.PerPage > MaxPerPage {
		return r, dErrors.New(dErrors.CodeInvalidInput, "itemsPerPage must be between 1 and "+strconv.Itoa(MaxPerPage))
	}
	return r, nil
}

// Offset is the number of items before the page. r must be normalized.
func (r Request) Offset() int { return (r.Page - 1) * r.PerPage }

// Page is one page of a tenant-scoped collection.
type Page[T any] struct {
	Items        []T `json:"items"`
	Page         int `json:"page"`
	ItemsPerPage int `json:"itemsPerPage"`
}
