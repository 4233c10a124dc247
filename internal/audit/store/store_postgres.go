package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"contacts/internal/audit/models"
	id "contacts/pkg/domain"
	"contacts/pkg/platform/sentinel"
	"contacts/pkg/platform/tx"
)

const entryColumns = `id, user_id, tenant_id, entity_type, entity_id, action,
	changes, snapshot_before, snapshot_after, created_at`

// PostgresStore reads entries from the audit_log table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context, tenant id.TenantID, filter models.Filter) ([]*models.Entry, error) {
	where := []string{"tenant_id = $1"}
	args := []any{int64(tenant)}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		where = append(where, fmt.Sprintf("entity_type = $%d", len(args)))
	}
	if filter.EntityID != nil {
		args = append(args, *filter.EntityID)
		where = append(where, fmt.Sprintf("entity_id = $%d", len(args)))
	}
	if filter.Action != "" {
		args = append(args, string(filter.Action))
		where = append(where, fmt.Sprintf("action = $%d", len(args)))
	}
	direction := "DESC"
	if filter.Order == models.OrderAsc {
		direction = "ASC"
	}
	query := fmt.Sprintf("SELECT %s FROM audit_log WHERE %s ORDER BY created_at %s, id ASC",
		entryColumns, strings.Join(where, " AND "), direction)
	if filter.PerPage > 0 {
		args = append(args, filter.PerPage, filter.Offset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return s.query(ctx, "list audit entries", query, args...)
}

func (s *PostgresStore) FindByID(ctx context.Context, tenant id.TenantID, entryID id.AuditEntryID) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM audit_log WHERE id = $1 AND tenant_id = $2`
	row := tx.Exec(ctx, s.db).QueryRowContext(ctx, query, int64(entryID), int64(tenant))
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find audit entry: %w", err)
	}
	return entry, nil
}

// ListByRefs issues one query with an ANY() clause per entity type.
func (s *PostgresStore) ListByRefs(ctx context.Context, tenant id.TenantID, refs []models.EntityRef) ([]*models.Entry, error) {
	if len(refs) == 0 {
		return []*models.Entry{}, nil
	}
	byType := map[string][]int64{}
	var types []string
	for _, ref := range refs {
		if _, seen := byType[ref.Type]; !seen {
			types = append(types, ref.Type)
		}
		byType[ref.Type] = append(byType[ref.Type], ref.ID)
	}

	args := []any{int64(tenant)}
	clauses := make([]string, 0, len(types))
	for _, t := range types {
		args = append(args, t, pq.Array(byType[t]))
		clauses = append(clauses, fmt.Sprintf("(entity_type = $%d AND entity_id = ANY($%d::bigint[]))", len(args)-1, len(args)))
	}
	query := fmt.Sprintf("SELECT %s FROM audit_log WHERE tenant_id = $1 AND (%s) ORDER BY id ASC",
		entryColumns, strings.Join(clauses, " OR "))
	return s.query(ctx, "list audit entries by entity", query, args...)
}

func (s *PostgresStore) query(ctx context.Context, op, query string, args ...any) ([]*models.Entry, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	entries := []*models.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*models.Entry, error) {
	var (
		entry                  models.Entry
		entityID               sql.NullInt64
		action                 string
		changes, before, after []byte
	)
	if err := row.Scan(&entry.ID, &entry.ActorID, &entry.TenantID, &entry.EntityType, &entityID,
		&action, &changes, &before, &after, &entry.CreatedAt); err != nil {
		return nil, err
	}
	if entityID.Valid {
		v := entityID.Int64
		entry.EntityID = &v
	}
	entry.Action = models.Action(action)
	entry.CreatedAt = entry.CreatedAt.UTC()
	if err := decodeJSON(changes, &entry.Changes); err != nil {
		return nil, fmt.Errorf("decode changes: %w", err)
	}
	if err := decodeJSON(before, &entry.SnapshotBefore); err != nil {
		return nil, fmt.Errorf("decode snapshot_before: %w", err)
	}
	if err := decodeJSON(after, &entry.SnapshotAfter); err != nil {
		return nil, fmt.Errorf("decode snapshot_after: %w", err)
	}
	return &entry, nil
}

// decodeJSON keeps numbers as json.Number so int64 ids survive the round trip.
func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(dst)
}
