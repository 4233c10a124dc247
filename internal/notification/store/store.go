// Package store reads notification channels, subscriptions and intents for
// one tenant at a time. Writes go through the unit of work.
package store

import (
	"contacts/pkg/platform/sentinel"
)

// ErrNotFound is returned for rows that do not exist in the caller's tenant.
var ErrNotFound = sentinel.ErrNotFound
