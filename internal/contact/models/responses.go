package models

import (
	"encoding/json"

	"contacts/pkg/platform/paging"
)

// MarshalJSON renders Date as YYYY-MM-DD.
func (d *ContactDate) MarshalJSON() ([]byte, error) {
	type alias ContactDate
	var day *string
	if d.Date != nil {
		s := d.Date.UTC().Format(DateLayout)
		day = &s
	}
	return json.Marshal(struct {
		*alias
		Date *string `json:"date"`
	}{alias: (*alias)(d), Date: day})
}

// Page is one page of a tenant-scoped collection.
type Page[T any] = paging.Page[T]

// ImportResult lists the contacts created by an import. Skipped counts the
// ones rejected as duplicates.
type ImportResult struct {
	Imported []*Contact `json:"imported"`
	Skipped  int        `json:"skipped"`
}
