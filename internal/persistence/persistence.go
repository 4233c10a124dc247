// Package persistence is a small unit of work over registered entities.
//
// A request opens a Session, persists new entities, tracks the ones it loaded,
// schedules removals and calls Flush. Flush diffs tracked entities against the
// state captured when they were tracked, hands the resulting work to flush
// listeners (which may stage extra inserts), and writes everything inside one
// transaction. Commit listeners run only after the transaction commits.
package persistence

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"contacts/internal/persistence/schema"
)

// Mapper writes entity rows to a storage engine. Implementations join the
// transaction carried by ctx.
type Mapper interface {
	Insert(ctx context.Context, m *schema.Metadata, row schema.Row) error
	Update(ctx context.Context, m *schema.Metadata, id int64, row schema.Row) error
	Delete(ctx context.Context, m *schema.Metadata, id int64) error
}

// TxRunner runs fn inside a transaction bound to the context it receives.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// FlushListener runs inside the transaction before anything is written. An
// error aborts the flush and rolls the transaction back.
type FlushListener func(ctx context.Context, ev *FlushEvent) error

// CommitListener runs after a successful commit. It cannot undo the commit;
// failures are the listener's to report.
type CommitListener func(ctx context.Context, ev *FlushEvent)

// Manager holds what sessions share. Register listeners before the manager
// is used concurrently.
type Manager struct {
	registry    *schema.Registry
	mapper      Mapper
	tx          TxRunner
	allocator   IDAllocator
	metrics     *Metrics
	tracer      trace.Tracer
	onFlush     []FlushListener
	afterCommit []CommitListener
}

// Option configures a Manager.
type Option func(*Manager)

// WithAllocator sets the id source used by Persist. The default is a
// SequenceAllocator starting at 1.
func WithAllocator(a IDAllocator) Option {
	return func(m *Manager) { m.allocator = a }
}

// WithMetrics records flush durations and outcomes.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Manager) { m.metrics = metrics }
}

// WithTracer replaces the global otel tracer for flush spans.
func WithTracer(t trace.Tracer) Option {
	return func(m *Manager) { m.tracer = t }
}

// NewManager writes through mapper inside transactions from tx.
func NewManager(registry *schema.Registry, mapper Mapper, tx TxRunner, opts ...Option) *Manager {
	m := &Manager{
		registry: registry,
		mapper:   mapper,
		tx:       tx,
		tracer:   otel.Tracer("contacts/internal/persistence"),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.allocator == nil {
		m.allocator = NewSequenceAllocator(1)
	}
	return m
}

// OnFlush registers a pre-commit listener.
func (m *Manager) OnFlush(l FlushListener) {
	m.onFlush = append(m.onFlush, l)
}

// AfterCommit registers a post-commit listener.
func (m *Manager) AfterCommit(l CommitListener) {
	m.afterCommit = append(m.afterCommit, l)
}

func (m *Manager) Registry() *schema.Registry {
	return m.registry
}

// NewSession opens a request-scoped unit of work. Sessions are not safe for
// concurrent use.
func (m *Manager) NewSession() *Session {
	return &Session{
		mgr:       m,
		scheduled: make(map[any]state),
		originals: make(map[any]schema.Row),
	}
}
