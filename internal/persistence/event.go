package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Change is the before and after value of one field. It serializes as the
// two-element array [old, new].
type Change struct {
	Old any
	New any
}

func (c Change) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{c.Old, c.New})
}

func (c *Change) UnmarshalJSON(data []byte) error {
	var pair []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("change must be a [old, new] pair, got %d elements", len(pair))
	}
	c.Old, c.New = pair[0], pair[1]
	return nil
}

// ChangeSet maps a field key (column, or association name) to its change.
type ChangeSet map[string]Change

// Update is a managed entity whose persisted state differs from what was loaded.
type Update struct {
	Entity  any
	Changes ChangeSet
}

// FlushEvent is what listeners see of a flush: the scheduled work, in the
// order it will be written, plus whatever listeners staged.
type FlushEvent struct {
	Inserts []any
	Updates []Update
	Deletes []any

	staged  []any
	session *Session
}

// Stage schedules an extra insert into the running flush. Staged entities are
// written after the scheduled work and are not seen by flush listeners.
func (e *FlushEvent) Stage(entity any) error {
	if err := e.session.assignID(entity); err != nil {
		return err
	}
	e.staged = append(e.staged, entity)
	return nil
}

// Staged returns the entities staged by listeners.
func (e *FlushEvent) Staged() []any {
	return e.staged
}

func (e *FlushEvent) empty() bool {
	return len(e.Inserts) == 0 && len(e.Updates) == 0 && len(e.Deletes) == 0
}
