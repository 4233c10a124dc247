package audit

import (
	"contacts/internal/audit/models"
	"contacts/internal/persistence/schema"
)

// SnapshotExtractor flattens an entity into a Snapshot: every scalar column,
// plus the id of each single-valued association that is set. Collections are
// never included.
type SnapshotExtractor struct {
	registry *schema.Registry
}

func NewSnapshotExtractor(registry *schema.Registry) *SnapshotExtractor {
	return &SnapshotExtractor{registry: registry}
}

// Extract never fails. An unregistered entity yields an empty snapshot and a
// field that cannot be read is left out.
func (x *SnapshotExtractor) Extract(entity any) models.Snapshot {
	snap := models.Snapshot{}
	meta, err := x.registry.Of(entity)
	if err != nil {
		return snap
	}
	for _, f := range meta.Fields {
		v, ok := meta.Value(entity, f)
		if !ok {
			continue
		}
		n := schema.Normalize(v)
		if f.IsAssociation() && (n == nil || n == int64(0)) {
			continue
		}
		snap[f.Key()] = n
	}
	return snap
}
