// Package audit records every insert, update and removal of a tenant-aware
// entity as an Entry committed in the same transaction as the change, and
// serves those entries back per tenant and per root entity.
package audit

import (
	"context"
	"log/slog"
	"time"

	auditmetrics "contacts/internal/audit/metrics"
	"contacts/internal/audit/models"
	"contacts/internal/persistence"
	"contacts/internal/persistence/schema"
	"contacts/internal/tenancy"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/requestcontext"
)

// Interceptor turns the scheduled work of a flush into audit entries. It runs
// before anything is written, so entries and changes commit or roll back
// together.
type Interceptor struct {
	registry  *schema.Registry
	snapshots *SnapshotExtractor
	actors    ActorResolver
	metrics   *auditmetrics.Metrics
	logger    *slog.Logger
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithLogger sets the logger used for skipped entities and actor failures.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interceptor) { i.logger = logger }
}

// WithMetrics counts staged and committed entries. Without it nothing is
// recorded.
func WithMetrics(m *auditmetrics.Metrics) Option {
	return func(i *Interceptor) { i.metrics = m }
}

// NewInterceptor builds an interceptor over registry. It logs to
// slog.Default() unless WithLogger is given.
func NewInterceptor(registry *schema.Registry, opts ...Option) *Interceptor {
	i := &Interceptor{
		registry:  registry,
		snapshots: NewSnapshotExtractor(registry),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Attach registers the interceptor on a manager.
func (i *Interceptor) Attach(m *persistence.Manager) {
	m.OnFlush(i.OnFlush)
	m.AfterCommit(i.countCommitted)
}

// OnFlush stages one entry per audited insert, update and removal, in that
// order. Entities that are not tenant-aware, and audit entries themselves,
// are skipped. A change with no resolvable actor aborts the flush.
func (i *Interceptor) OnFlush(ctx context.Context, ev *persistence.FlushEvent) error {
	now := requestcontext.Now(ctx)
	staged := 0

	for _, e := range ev.Inserts {
		entry, err := i.newEntry(ctx, e, models.ActionInsert, now)
		if err != nil {
			return err
		}
		if entry == nil {
			continue
		}
		entry.SnapshotAfter = i.snapshots.Extract(e)
		if err := ev.Stage(entry); err != nil {
			return err
		}
		staged++
	}

	for _, u := range ev.Updates {
		entry, err := i.newEntry(ctx, u.Entity, models.ActionUpdate, now)
		if err != nil {
			return err
		}
		if entry == nil {
			continue
		}
		entry.Changes = models.Changes(u.Changes)
		if err := ev.Stage(entry); err != nil {
			return err
		}
		staged++
	}

	for _, e := range ev.Deletes {
		entry, err := i.newEntry(ctx, e, models.ActionRemove, now)
		if err != nil {
			return err
		}
		if entry == nil {
			continue
		}
		entry.SnapshotBefore = i.snapshots.Extract(e)
		if err := ev.Stage(entry); err != nil {
			return err
		}
		staged++
	}

	if staged > 0 {
		i.logger.DebugContext(ctx, "audit entries staged",
			"count", staged,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return nil
}

// newEntry returns nil when e is not audited.
func (i *Interceptor) newEntry(ctx context.Context, e any, action models.Action, now time.Time) (*models.Entry, error) {
	if _, ok := e.(*models.Entry); ok {
		return nil, nil
	}
	owned, ok := e.(tenancy.TenantAware)
	if !ok {
		return nil, nil
	}
	meta, err := i.registry.Of(e)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "audited entity is not registered")
	}
	actor, err := i.actors.Resolve(ctx, owned)
	if err != nil {
		i.logger.WarnContext(ctx, "refusing unattributed change",
			"entity_type", meta.Name,
			"action", string(action),
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "change cannot be attributed to an actor")
	}

	entry := &models.Entry{
		ActorID:    actor,
		TenantID:   owned.Tenant(),
		EntityType: meta.Name,
		Action:     action,
		CreatedAt:  now,
	}
	if v, ok := meta.ID(e); ok && v != 0 {
		entry.EntityID = &v
	}
	return entry, nil
}

func (i *Interceptor) countCommitted(_ context.Context, ev *persistence.FlushEvent) {
	counts := map[models.Action]int{}
	for _, entry := range models.Committed(ev) {
		counts[entry.Action]++
	}
	for action, n := range counts {
		i.metrics.IncrementCommitted(string(action), n)
	}
}
