// Package store reads users. Users are written through the unit of work.
package store

import "contacts/pkg/platform/sentinel"

// ErrNotFound is returned when no user matches.
var ErrNotFound = sentinel.ErrNotFound
