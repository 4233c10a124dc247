package models

// Entity type names as recorded in audit entries.
const (
	EntityContact     = "Contact"
	EntityContactName = "ContactName"
	EntityContactDate = "ContactDate"
)
