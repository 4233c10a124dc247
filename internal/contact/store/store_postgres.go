package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"contacts/internal/contact/models"
	id "contacts/pkg/domain"
	"contacts/pkg/platform/tx"
)

// PostgresStore reads contacts with plain SQL. Every query is filtered by
// tenant_id.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindContact(ctx context.Context, tenant id.TenantID, contactID id.ContactID) (*models.Contact, error) {
	c := &models.Contact{}
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, tenant_id, user_id FROM contacts WHERE tenant_id = $1 AND id = $2`,
		int64(tenant), int64(contactID),
	).Scan(&c.ID, &c.TenantID, &c.OwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find contact: %w", err)
	}
	if err := s.attachChildren(ctx, tenant, []*models.Contact{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PostgresStore) ListContacts(ctx context.Context, tenant id.TenantID, offset, limit int) ([]*models.Contact, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT id, tenant_id, user_id FROM contacts WHERE tenant_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		int64(tenant), limitArg(limit), offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*models.Contact{}
	for rows.Next() {
		c := &models.Contact{}
		if err := rows.Scan(&c.ID, &c.TenantID, &c.OwnerID); err != nil {
			return nil, fmt.Errorf("list contacts: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	if err := s.attachChildren(ctx, tenant, contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *PostgresStore) FindName(ctx context.Context, tenant id.TenantID, nameID id.ContactNameID) (*models.ContactName, error) {
	names, err := s.queryNames(ctx, `WHERE tenant_id = $1 AND id = $2`, int64(tenant), int64(nameID))
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNotFound
	}
	return names[0], nil
}

func (s *PostgresStore) ListNames(ctx context.Context, tenant id.TenantID, offset, limit int) ([]*models.ContactName, error) {
	return s.queryNames(ctx, `WHERE tenant_id = $1 ORDER BY id LIMIT $2 OFFSET $3`, int64(tenant), limitArg(limit), offset)
}

func (s *PostgresStore) FindNamesMatching(ctx context.Context, tenant id.TenantID, family, given *string) ([]*models.ContactName, error) {
	return s.queryNames(ctx,
		`WHERE tenant_id = $1 AND family IS NOT DISTINCT FROM $2::varchar AND given IS NOT DISTINCT FROM $3::varchar ORDER BY id`,
		int64(tenant), nullArg(family), nullArg(given))
}

func (s *PostgresStore) FindDate(ctx context.Context, tenant id.TenantID, dateID id.ContactDateID) (*models.ContactDate, error) {
	dates, err := s.queryDates(ctx, `WHERE tenant_id = $1 AND id = $2`, int64(tenant), int64(dateID))
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, ErrNotFound
	}
	return dates[0], nil
}

func (s *PostgresStore) ListDates(ctx context.Context, tenant id.TenantID, offset, limit int) ([]*models.ContactDate, error) {
	return s.queryDates(ctx, `WHERE tenant_id = $1 ORDER BY id LIMIT $2 OFFSET $3`, int64(tenant), limitArg(limit), offset)
}

func (s *PostgresStore) attachChildren(ctx context.Context, tenant id.TenantID, contacts []*models.Contact) error {
	if len(contacts) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(contacts))
	byID := make(map[id.ContactID]*models.Contact, len(contacts))
	for _, c := range contacts {
		c.Names, c.Dates = []*models.ContactName{}, []*models.ContactDate{}
		ids = append(ids, int64(c.ID))
		byID[c.ID] = c
	}

	names, err := s.queryNames(ctx, `WHERE tenant_id = $1 AND contact_id = ANY($2::bigint[]) ORDER BY id`, int64(tenant), pq.Array(ids))
	if err != nil {
		return err
	}
	for _, n := range names {
		if c, ok := byID[n.ContactID]; ok {
			c.Names = append(c.Names, n)
		}
	}
	dates, err := s.queryDates(ctx, `WHERE tenant_id = $1 AND contact_id = ANY($2::bigint[]) ORDER BY id`, int64(tenant), pq.Array(ids))
	if err != nil {
		return err
	}
	for _, d := range dates {
		if c, ok := byID[d.ContactID]; ok {
			c.Dates = append(c.Dates, d)
		}
	}
	return nil
}

func (s *PostgresStore) queryNames(ctx context.Context, clause string, args ...any) ([]*models.ContactName, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT id, contact_id, tenant_id, family, given FROM contact_names `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query contact names: %w", err)
	}
	defer rows.Close()

	out := []*models.ContactName{}
	for rows.Next() {
		var (
			n             models.ContactName
			family, given sql.NullString
		)
		if err := rows.Scan(&n.ID, &n.ContactID, &n.TenantID, &family, &given); err != nil {
			return nil, fmt.Errorf("scan contact name: %w", err)
		}
		n.Family, n.Given = nullString(family), nullString(given)
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (s *PostgresStore) queryDates(ctx context.Context, clause string, args ...any) ([]*models.ContactDate, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT id, contact_id, tenant_id, date, text FROM contact_dates `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query contact dates: %w", err)
	}
	defer rows.Close()

	out := []*models.ContactDate{}
	for rows.Next() {
		var (
			d    models.ContactDate
			day  sql.NullTime
			text sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.ContactID, &d.TenantID, &day, &text); err != nil {
			return nil, fmt.Errorf("scan contact date: %w", err)
		}
		if day.Valid {
			t := time.Date(day.Time.Year(), day.Time.Month(), day.Time.Day(), 0, 0, 0, 0, time.UTC)
			d.Date = &t
		}
		d.Text = nullString(text)
		out = append(out, &d)
	}
	return out, rows.Err()
}

func nullArg(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// limitArg maps "no limit" to NULL, which Postgres treats as LIMIT ALL.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
