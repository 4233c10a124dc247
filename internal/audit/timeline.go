package audit

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	auditmetrics "contacts/internal/audit/metrics"
	"contacts/internal/audit/models"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/platform/sentinel"
)

// Timeline merges the history of a root entity with that of its direct
// children, newest first.
type Timeline struct {
	source  TimelineSource
	entries EntryReader
	metrics *auditmetrics.Metrics
	tracer  trace.Tracer
}

func NewTimeline(source TimelineSource, entries EntryReader, metrics *auditmetrics.Metrics) *Timeline {
	return &Timeline{
		source:  source,
		entries: entries,
		metrics: metrics,
		tracer:  otel.Tracer("contacts/internal/audit"),
	}
}

// Get builds the timeline of rootID within tenant. Grandchildren are not
// included. Entries with equal timestamps keep insertion order.
func (t *Timeline) Get(ctx context.Context, tenant id.TenantID, rootID int64) (*models.TimelineView, error) {
	ctx, span := t.tracer.Start(ctx, "audit.Timeline.Get")
	defer span.End()
	defer t.metrics.ObserveTimeline(time.Now())

	refs, err := t.source.TimelineRefs(ctx, tenant, rootID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, t.source.RootType()+" not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load timeline root")
	}
	span.SetAttributes(attribute.Int("timeline.refs", len(refs)))

	logs, err := t.entries.ListByRefs(ctx, tenant, refs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load timeline entries")
	}
	SortNewestFirst(logs)
	if logs == nil {
		logs = []*models.Entry{}
	}
	return &models.TimelineView{ID: rootID, Logs: logs}, nil
}

// SortNewestFirst orders entries by createdAt descending, then by id.
func SortNewestFirst(entries []*models.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
