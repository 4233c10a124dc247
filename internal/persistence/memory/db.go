// Package memory is an in-process storage engine for the unit of work. Tables
// are maps of rows keyed by primary key; transactions are serialized and
// journaled so a failed flush leaves no trace.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"contacts/internal/persistence/schema"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/platform/sentinel"
)

const defaultTxTimeout = 5 * time.Second

type journalKey struct{}

// journal records how to undo each write of a transaction, newest last.
type journal struct {
	undo []func()
}

// DB implements persistence.Mapper and persistence.TxRunner.
type DB struct {
	mu     sync.RWMutex
	tables map[string]map[int64]schema.Row
	rowSeq int64

	txMu    sync.Mutex
	timeout time.Duration
}

func New() *DB {
	return &DB{
		tables:  make(map[string]map[int64]schema.Row),
		timeout: defaultTxTimeout,
	}
}

// RunInTx serializes transactions. Writes made by fn are undone when fn
// fails or the context expires before it returns. Nested calls join the
// outer transaction.
func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(journalKey{}).(*journal); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.timeout)
		defer cancel()
	}

	db.txMu.Lock()
	defer db.txMu.Unlock()

	j := &journal{}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		db.rollback(j)
		return err
	}
	if err := ctx.Err(); err != nil {
		db.rollback(j)
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return nil
}

func (db *DB) rollback(j *journal) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
}

func record(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.undo = append(j.undo, undo)
	}
}

func (db *DB) Insert(ctx context.Context, m *schema.Metadata, row schema.Row) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	t := db.table(m.Table)
	id, ok := rowID(m, row)
	if !ok {
		db.rowSeq--
		id = db.rowSeq
	}
	if _, exists := t[id]; exists {
		return fmt.Errorf("%s %d: %w", m.Table, id, sentinel.ErrConflict)
	}
	t[id] = maps.Clone(row)
	record(ctx, func() { delete(t, id) })
	return nil
}

func (db *DB) Update(ctx context.Context, m *schema.Metadata, id int64, row schema.Row) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	t := db.table(m.Table)
	prev, exists := t[id]
	if !exists {
		return fmt.Errorf("%s %d: %w", m.Table, id, sentinel.ErrNotFound)
	}
	t[id] = maps.Clone(row)
	record(ctx, func() { t[id] = prev })
	return nil
}

func (db *DB) Delete(ctx context.Context, m *schema.Metadata, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	t := db.table(m.Table)
	prev, exists := t[id]
	if !exists {
		return fmt.Errorf("%s %d: %w", m.Table, id, sentinel.ErrNotFound)
	}
	delete(t, id)
	record(ctx, func() { t[id] = prev })
	return nil
}

// Get returns a copy of one row.
func (db *DB) Get(table string, id int64) (schema.Row, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	row, ok := db.tables[table][id]
	if !ok {
		return nil, false
	}
	return maps.Clone(row), true
}

// Select returns copies of the rows matching keep, in primary key order.
// A nil keep selects every row.
func (db *DB) Select(table string, keep func(schema.Row) bool) []schema.Row {
	db.mu.RLock()
	defer db.mu.RUnlock()
	t := db.tables[table]
	ids := make([]int64, 0, len(t))
	for id, row := range t {
		if keep == nil || keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	rows := make([]schema.Row, len(ids))
	for i, id := range ids {
		rows[i] = maps.Clone(t[id])
	}
	return rows
}

// Truncate drops every row of the given tables.
func (db *DB) Truncate(tables ...string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, name := range tables {
		delete(db.tables, name)
	}
}

// table must be called with mu held.
func (db *DB) table(name string) map[int64]schema.Row {
	t, ok := db.tables[name]
	if !ok {
		t = make(map[int64]schema.Row)
		db.tables[name] = t
	}
	return t
}

func rowID(m *schema.Metadata, row schema.Row) (int64, bool) {
	pk, ok := m.PK()
	if !ok {
		return 0, false
	}
	id, ok := schema.Normalize(row[pk.Column]).(int64)
	return id, ok
}
