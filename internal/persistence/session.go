package persistence

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"contacts/internal/persistence/schema"
)

var (
	ErrNotPointer = errors.New("persistence: entity must be a non-nil pointer")
	ErrNoID       = errors.New("persistence: entity has no id")
)

type state int

const (
	stateNew state = iota + 1
	stateRemoved
)

// Session collects changes until Flush.
type Session struct {
	mgr *Manager

	inserts   []any
	removals  []any
	scheduled map[any]state

	managed   []any
	originals map[any]schema.Row
}

// Persist schedules a new entity for insertion and assigns its id now when it
// has none.
func (s *Session) Persist(entity any) error {
	if err := s.assignID(entity); err != nil {
		return err
	}
	if _, ok := s.scheduled[entity]; ok {
		return nil
	}
	if _, ok := s.originals[entity]; ok {
		return nil
	}
	s.scheduled[entity] = stateNew
	s.inserts = append(s.inserts, entity)
	return nil
}

// Track marks loaded entities as managed. Their current state becomes the
// baseline that Flush diffs against.
func (s *Session) Track(entities ...any) error {
	for _, e := range entities {
		m, err := s.meta(e)
		if err != nil {
			return err
		}
		if _, ok := m.ID(e); !ok {
			return fmt.Errorf("%w: %s", ErrNoID, m.Name)
		}
		if _, ok := s.originals[e]; !ok {
			s.managed = append(s.managed, e)
		}
		s.originals[e] = m.Row(e)
	}
	return nil
}

// Remove schedules an entity for deletion. Removing an entity persisted in
// this session cancels its insert instead.
func (s *Session) Remove(entity any) error {
	m, err := s.meta(entity)
	if err != nil {
		return err
	}
	switch s.scheduled[entity] {
	case stateRemoved:
		return nil
	case stateNew:
		delete(s.scheduled, entity)
		s.inserts = without(s.inserts, entity)
		return nil
	}
	if id, ok := m.ID(entity); !ok || id == 0 {
		return fmt.Errorf("%w: %s", ErrNoID, m.Name)
	}
	s.scheduled[entity] = stateRemoved
	s.removals = append(s.removals, entity)
	return nil
}

// Flush writes all pending work in one transaction. Pending inserts and
// removals are cleared whether or not the flush succeeds; on failure nothing
// is written and staged entities are dropped.
func (s *Session) Flush(ctx context.Context) error {
	ev, err := s.buildEvent()
	if err != nil {
		s.clearPending()
		return err
	}
	if ev.empty() {
		return nil
	}

	ctx, span := s.mgr.tracer.Start(ctx, "persistence.Flush")
	defer span.End()
	span.SetAttributes(
		attribute.Int("flush.inserts", len(ev.Inserts)),
		attribute.Int("flush.updates", len(ev.Updates)),
		attribute.Int("flush.deletes", len(ev.Deletes)),
	)

	start := time.Now()
	err = s.mgr.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, l := range s.mgr.onFlush {
			if err := l(txCtx, ev); err != nil {
				return err
			}
		}
		return s.write(txCtx, ev)
	})
	s.mgr.metrics.observeFlush(start)
	s.clearPending()
	if err != nil {
		ev.staged = nil
		s.mgr.metrics.incrementFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, "flush failed")
		return err
	}
	span.SetAttributes(attribute.Int("flush.staged", len(ev.staged)))

	s.refresh(ev)
	s.mgr.metrics.addWritten(ev)
	for _, l := range s.mgr.afterCommit {
		l(ctx, ev)
	}
	return nil
}

func (s *Session) buildEvent() (*FlushEvent, error) {
	ev := &FlushEvent{session: s}
	ev.Inserts = append(ev.Inserts, s.inserts...)
	ev.Deletes = append(ev.Deletes, s.removals...)
	for _, e := range s.managed {
		if s.scheduled[e] == stateRemoved {
			continue
		}
		m, err := s.meta(e)
		if err != nil {
			return nil, err
		}
		if changes := diff(m, s.originals[e], m.Row(e)); len(changes) > 0 {
			ev.Updates = append(ev.Updates, Update{Entity: e, Changes: changes})
		}
	}
	return ev, nil
}

func (s *Session) write(ctx context.Context, ev *FlushEvent) error {
	for _, e := range ev.Inserts {
		if err := s.insert(ctx, e); err != nil {
			return err
		}
	}
	for _, u := range ev.Updates {
		m, _ := s.meta(u.Entity)
		id, _ := m.ID(u.Entity)
		if err := s.mgr.mapper.Update(ctx, m, id, m.Row(u.Entity)); err != nil {
			return fmt.Errorf("update %s %d: %w", m.Name, id, err)
		}
	}
	for _, e := range ev.Deletes {
		m, _ := s.meta(e)
		id, _ := m.ID(e)
		if err := s.mgr.mapper.Delete(ctx, m, id); err != nil {
			return fmt.Errorf("delete %s %d: %w", m.Name, id, err)
		}
	}
	for _, e := range ev.staged {
		if err := s.insert(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) insert(ctx context.Context, e any) error {
	m, err := s.meta(e)
	if err != nil {
		return err
	}
	if err := s.mgr.mapper.Insert(ctx, m, m.Row(e)); err != nil {
		return fmt.Errorf("insert %s: %w", m.Name, err)
	}
	return nil
}

// refresh moves committed entities to their new baseline.
func (s *Session) refresh(ev *FlushEvent) {
	for _, e := range ev.Inserts {
		_ = s.Track(e)
	}
	for _, u := range ev.Updates {
		_ = s.Track(u.Entity)
	}
	for _, e := range ev.Deletes {
		delete(s.originals, e)
		s.managed = without(s.managed, e)
	}
}

func (s *Session) clearPending() {
	s.inserts = nil
	s.removals = nil
	s.scheduled = make(map[any]state)
}

func (s *Session) assignID(entity any) error {
	m, err := s.meta(entity)
	if err != nil {
		return err
	}
	id, ok := m.ID(entity)
	if !ok || id != 0 {
		return nil
	}
	return m.SetID(entity, s.mgr.allocator.NextID())
}

func (s *Session) meta(entity any) (*schema.Metadata, error) {
	rv := reflect.ValueOf(entity)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotPointer, entity)
	}
	return s.mgr.registry.Of(entity)
}

func diff(m *schema.Metadata, before, after schema.Row) ChangeSet {
	changes := ChangeSet{}
	for _, f := range m.Fields {
		old, now := before[f.Column], after[f.Column]
		if schema.Equal(old, now) {
			continue
		}
		changes[f.Key()] = Change{Old: schema.Normalize(old), New: schema.Normalize(now)}
	}
	return changes
}

func without(list []any, target any) []any {
	out := list[:0]
	for _, e := range list {
		if e != target {
			out = append(out, e)
		}
	}
	return out
}
