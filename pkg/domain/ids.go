// Package domain holds the typed identifiers shared across modules.
//
// Every persisted entity is keyed by a positive int64. Distinct named types keep
// a tenant id from being passed where a contact id is expected.
package domain

import (
	"strconv"
	"strings"

	dErrors "contacts/pkg/domain-errors"
)

type (
	UserID        int64
	TenantID      int64
	ContactID     int64
	ContactNameID int64
	ContactDateID int64
	AuditEntryID  int64

	NotificationChannelID      int64
	NotificationSubscriptionID int64
	NotificationIntentID       int64
)

// maxIDLength bounds the input accepted at trust boundaries (len of MaxInt64).
const maxIDLength = 19

func (id UserID) String() string        { return strconv.FormatInt(int64(id), 10) }
func (id TenantID) String() string      { return strconv.FormatInt(int64(id), 10) }
func (id ContactID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id ContactNameID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id ContactDateID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id AuditEntryID) String() string  { return strconv.FormatInt(int64(id), 10) }

func (id NotificationChannelID) String() string      { return strconv.FormatInt(int64(id), 10) }
func (id NotificationSubscriptionID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id NotificationIntentID) String() string       { return strconv.FormatInt(int64(id), 10) }

func (id UserID) IsNil() bool   { return id == 0 }
func (id TenantID) IsNil() bool { return id == 0 }

// TenantOf returns the tenant owned by a user. Every user is its own tenant.
func TenantOf(userID UserID) TenantID { return TenantID(userID) }

func ParseUserID(s string) (UserID, error) {
	v, err := parseID(s, "user")
	return UserID(v), err
}

func ParseTenantID(s string) (TenantID, error) {
	v, err := parseID(s, "tenant")
	return TenantID(v), err
}

func ParseContactID(s string) (ContactID, error) {
	v, err := parseID(s, "contact")
	return ContactID(v), err
}

func ParseContactNameID(s string) (ContactNameID, error) {
	v, err := parseID(s, "contact name")
	return ContactNameID(v), err
}

func ParseContactDateID(s string) (ContactDateID, error) {
	v, err := parseID(s, "contact date")
	return ContactDateID(v), err
}

func ParseAuditEntryID(s string) (AuditEntryID, error) {
	v, err := parseID(s, "audit entry")
	return AuditEntryID(v), err
}

func ParseNotificationChannelID(s string) (NotificationChannelID, error) {
	v, err := parseID(s, "notification channel")
	return NotificationChannelID(v), err
}

func ParseNotificationSubscriptionID(s string) (NotificationSubscriptionID, error) {
	v, err := parseID(s, "notification subscription")
	return NotificationSubscriptionID(v), err
}

func ParseNotificationIntentID(s string) (NotificationIntentID, error) {
	v, err := parseID(s, "notification intent")
	return NotificationIntentID(v), err
}

func parseID(s, kind string) (int64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, kind+" ID required")
	}
	if len(s) > maxIDLength || strings.TrimLeft(s, "0123456789") != "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" ID")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" ID")
	}
	return v, nil
}
