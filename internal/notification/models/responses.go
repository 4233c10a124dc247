package models

import "contacts/pkg/platform/paging"

// Page is one page of a tenant-scoped collection.
type Page[T any] = paging.Page[T]
