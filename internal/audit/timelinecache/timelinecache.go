// Package timelinecache caches timelines in Redis. Every tenant has a
// generation counter that is bumped after each commit touching the tenant;
// cache keys include the generation, so a bump orphans all of the tenant's
// cached timelines at once and they expire through their TTL.
package timelinecache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"contacts/internal/audit"
	auditmetrics "contacts/internal/audit/metrics"
	"contacts/internal/audit/models"
	"contacts/internal/persistence"
	id "contacts/pkg/domain"
	"contacts/pkg/requestcontext"
)

const (
	DefaultTTL = 5 * time.Minute

	keyPrefix = "contacts:timeline"
)

// Redis decorates a timeline provider with a read-through cache.
type Redis struct {
	next    audit.TimelineProvider
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *auditmetrics.Metrics
}

// Option configures a Redis cache.
type Option func(*Redis)

// WithTTL sets how long a cached timeline lives. Non-positive values keep
// DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithLogger sets the logger for cache failures, which never fail a read.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Redis) { r.logger = logger }
}

// WithMetrics counts cache hits and misses.
func WithMetrics(m *auditmetrics.Metrics) Option {
	return func(r *Redis) { r.metrics = m }
}

// New wraps next with a cache in client. The TTL defaults to DefaultTTL and
// the logger to slog.Default().
func New(next audit.TimelineProvider, client *redis.Client, opts ...Option) *Redis {
	r := &Redis{
		next:   next,
		client: client,
		ttl:    DefaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attach invalidates the cache of every tenant touched by a commit of m.
func (r *Redis) Attach(m *persistence.Manager) {
	m.AfterCommit(func(ctx context.Context, ev *persistence.FlushEvent) {
		seen := map[id.TenantID]bool{}
		var tenants []id.TenantID
		for _, entry := range models.Committed(ev) {
			if !seen[entry.TenantID] {
				seen[entry.TenantID] = true
				tenants = append(tenants, entry.TenantID)
			}
		}
		r.Invalidate(ctx, tenants...)
	})
}

// Get serves from cache when possible. Redis failures degrade to the
// uncached provider.
func (r *Redis) Get(ctx context.Context, tenant id.TenantID, rootID int64) (*models.TimelineView, error) {
	gen, err := r.client.Get(ctx, generationKey(tenant)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		r.warn(ctx, "read timeline generation", err)
		return r.next.Get(ctx, tenant, rootID)
	}
	key := timelineKey(tenant, gen, rootID)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		view, err := decodeView(raw)
		if err == nil {
			r.metrics.IncrementCacheHit()
			return view, nil
		}
		r.warn(ctx, "decode cached timeline", err)
	case !errors.Is(err, redis.Nil):
		r.warn(ctx, "read cached timeline", err)
	}
	r.metrics.IncrementCacheMiss()

	view, err := r.next.Get(ctx, tenant, rootID)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(view); err == nil {
		if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
			r.warn(ctx, "store cached timeline", err)
		}
	}
	return view, nil
}

// decodeView keeps snapshot numbers as json.Number so ids survive the round
// trip exactly, as they do when read from Postgres.
func decodeView(raw []byte) (*models.TimelineView, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var view models.TimelineView
	if err := dec.Decode(&view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Invalidate bumps the generation of each tenant.
func (r *Redis) Invalidate(ctx context.Context, tenants ...id.TenantID) {
	if len(tenants) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	_, err := r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, tenant := range tenants {
			p.Incr(ctx, generationKey(tenant))
		}
		return nil
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to invalidate timeline cache",
			"tenants", len(tenants),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

func (r *Redis) warn(ctx context.Context, op string, err error) {
	r.logger.WarnContext(ctx, "timeline cache degraded",
		"op", op,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
}

func generationKey(tenant id.TenantID) string {
	return fmt.Sprintf("%s:%d:gen", keyPrefix, tenant)
}

func timelineKey(tenant id.TenantID, gen, rootID int64) string {
	return fmt.Sprintf("%s:%d:%d:%d", keyPrefix, tenant, gen, rootID)
}
