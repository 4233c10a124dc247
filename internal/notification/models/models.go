// Package models defines notification channels, the subscriptions routed to
// them, and the intents queued for delivery.
package models

import (
	"time"

	id "contacts/pkg/domain"
)

// Entity type names as recorded in audit entries.
const (
	EntityChannel      = "NotificationChannel"
	EntitySubscription = "NotificationSubscription"
	EntityIntent       = "NotificationIntent"
)

// NotificationChannel is a delivery target such as an email address or a chat
// id. Config is free-form and interpreted by the dispatcher.
type NotificationChannel struct {
	ID         id.NotificationChannelID `db:"id,pk" json:"id"`
	TenantID   id.TenantID              `db:"tenant_id" assoc:"tenant" json:"-"`
	OwnerID    id.UserID                `db:"user_id" assoc:"user" json:"-"`
	Type       string                   `db:"type" json:"type"`
	Config     map[string]any           `db:"config,json" json:"config"`
	VerifiedAt *time.Time               `db:"verified_at" json:"verifiedAt"`
	CreatedAt  time.Time                `db:"created_at" json:"createdAt"`
}

func (c *NotificationChannel) Tenant() id.TenantID { return c.TenantID }
func (c *NotificationChannel) Owner() id.UserID    { return c.OwnerID }

// NotificationSubscription asks for notifications about one entity. A nil
// ChannelID means the subscription is parked until a channel is chosen.
type NotificationSubscription struct {
	ID         id.NotificationSubscriptionID `db:"id,pk" json:"id"`
	TenantID   id.TenantID                   `db:"tenant_id" assoc:"tenant" json:"-"`
	OwnerID    id.UserID                     `db:"user_id" assoc:"user" json:"-"`
	ChannelID  *id.NotificationChannelID     `db:"channel_id" assoc:"channel" json:"channel"`
	EntityType string                        `db:"entity_type" json:"entityType"`
	EntityID   int64                         `db:"entity_id" json:"entityId"`
	Enabled    int                           `db:"enabled" json:"enabled"`
}

func (s *NotificationSubscription) Tenant() id.TenantID { return s.TenantID }
func (s *NotificationSubscription) Owner() id.UserID    { return s.OwnerID }

// NotificationIntent is a message waiting on a channel. Intents are written
// by the dispatcher and only read through the API.
type NotificationIntent struct {
	ID        id.NotificationIntentID  `db:"id,pk" json:"id"`
	TenantID  id.TenantID              `db:"tenant_id" assoc:"tenant" json:"-"`
	ChannelID id.NotificationChannelID `db:"channel_id" assoc:"channel" json:"channel"`
	Payload   map[string]any           `db:"payload,json" json:"payload"`
}

func (i *NotificationIntent) Tenant() id.TenantID { return i.TenantID }

// Owner is the tenant's user; intents inherit it from their channel.
func (i *NotificationIntent) Owner() id.UserID { return id.UserID(i.TenantID) }

// Entities lists every persisted type of this package for registration.
func Entities() []any {
	return []any{&NotificationChannel{}, &NotificationSubscription{}, &NotificationIntent{}}
}
