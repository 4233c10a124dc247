// Package models defines the audit entry and the read-side shapes built from it.
package models

import (
	"time"

	"contacts/internal/persistence"
	id "contacts/pkg/domain"
)

// Action is the kind of lifecycle event an entry records.
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionRemove Action = "REMOVE"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionInsert, ActionUpdate, ActionRemove:
		return true
	}
	return false
}

// Snapshot is the flat state of an entity: scalar fields by column, and
// single-valued associations by name holding the associated id.
type Snapshot map[string]any

// Changes maps field keys to [old, new] pairs.
type Changes map[string]persistence.Change

// Entry is an immutable audit record. Exactly one of Changes,
// SnapshotBefore and SnapshotAfter is set, depending on Action.
type Entry struct {
	ID             id.AuditEntryID `db:"id,pk" json:"id"`
	ActorID        id.UserID       `db:"user_id" assoc:"user" json:"actor"`
	TenantID       id.TenantID     `db:"tenant_id" assoc:"tenant" json:"tenantId"`
	EntityType     string          `db:"entity_type" json:"entityType"`
	EntityID       *int64          `db:"entity_id" json:"entityId"`
	Action         Action          `db:"action" json:"action"`
	Changes        Changes         `db:"changes,json" json:"changes"`
	SnapshotBefore Snapshot        `db:"snapshot_before,json" json:"snapshotBefore"`
	SnapshotAfter  Snapshot        `db:"snapshot_after,json" json:"snapshotAfter"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
}

func (Entry) TableName() string  { return "audit_log" }
func (Entry) EntityName() string { return "AuditLog" }

// Tenant scopes reads of the entry. Entries are never audited themselves.
func (e *Entry) Tenant() id.TenantID { return e.TenantID }

// Ref is the (type, id) pair the entry is about, ok is false when the
// audited entity had no id.
func (e *Entry) Ref() (EntityRef, bool) {
	if e.EntityID == nil {
		return EntityRef{}, false
	}
	return EntityRef{Type: e.EntityType, ID: *e.EntityID}, true
}

// EntityRef identifies an audited entity.
type EntityRef struct {
	Type string
	ID   int64
}

// TimelineView is the merged history of a root entity and its direct children.
type TimelineView struct {
	ID   int64    `json:"id"`
	Logs []*Entry `json:"logs"`
}

// Committed returns the audit entries staged in a committed flush.
func Committed(ev *persistence.FlushEvent) []*Entry {
	var entries []*Entry
	for _, s := range ev.Staged() {
		if entry, ok := s.(*Entry); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
