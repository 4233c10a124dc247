// Package stream publishes committed audit entries to a Kafka topic so other
// services can follow a tenant's history without polling the audit log.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	auditmetrics "contacts/internal/audit/metrics"
	"contacts/internal/audit/models"
	"contacts/internal/persistence"
	"contacts/pkg/requestcontext"
)

// DefaultTimeout bounds one publish after commit.
const DefaultTimeout = 5 * time.Second

// Producer is the subset of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Publisher writes one record per committed entry, keyed by tenant so a
// tenant's entries stay ordered within a partition.
type Publisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
	metrics  *auditmetrics.Metrics
	timeout  time.Duration
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger for publish failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

// WithMetrics counts records that failed to publish.
func WithMetrics(m *auditmetrics.Metrics) Option {
	return func(p *Publisher) { p.metrics = m }
}

// WithTimeout bounds each Publish call. Non-positive values keep
// DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// New publishes to topic through producer. It logs to slog.Default() and
// applies DefaultTimeout unless options say otherwise.
func New(producer Producer, topic string, opts ...Option) *Publisher {
	p := &Publisher{
		producer: producer,
		topic:    topic,
		logger:   slog.Default(),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attach publishes after every commit of m.
func (p *Publisher) Attach(m *persistence.Manager) {
	m.AfterCommit(func(ctx context.Context, ev *persistence.FlushEvent) {
		p.Publish(ctx, models.Committed(ev))
	})
}

// Publish sends entries synchronously. Failures are logged and counted; the
// entries are already committed, so nothing is returned to the caller.
func (p *Publisher) Publish(ctx context.Context, entries []*models.Entry) {
	if len(entries) == 0 {
		return
	}
	records := make([]*kgo.Record, 0, len(entries))
	failed := 0
	for _, entry := range entries {
		rec, err := p.record(entry)
		if err != nil {
			failed++
			p.logger.ErrorContext(ctx, "failed to encode audit entry",
				"entry_id", entry.ID,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			continue
		}
		records = append(records, rec)
	}

	if len(records) > 0 {
		// The request may be finishing; the publish must not be cut short by it.
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()
		for _, res := range p.producer.ProduceSync(pctx, records...) {
			if res.Err == nil {
				continue
			}
			failed++
			p.logger.ErrorContext(ctx, "failed to publish audit entry",
				"topic", p.topic,
				"key", string(res.Record.Key),
				"error", res.Err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
	p.metrics.IncrementStreamFailures(failed)
}

func (p *Publisher) record(entry *models.Entry) (*kgo.Record, error) {
	value, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return &kgo.Record{
		Topic: p.topic,
		Key:   []byte(entry.TenantID.String()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(entry.Action)},
			{Key: "entity_type", Value: []byte(entry.EntityType)},
		},
	}, nil
}
