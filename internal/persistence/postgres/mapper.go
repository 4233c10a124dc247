// Package postgres writes unit-of-work rows with generated SQL. Statements run
// on the transaction carried by the context.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"contacts/internal/persistence/schema"
	"contacts/pkg/platform/sentinel"
	"contacts/pkg/platform/tx"
)

const uniqueViolation = "23505"

// Mapper implements persistence.Mapper for PostgreSQL.
type Mapper struct {
	db *sql.DB
}

func NewMapper(db *sql.DB) *Mapper {
	return &Mapper{db: db}
}

func (m *Mapper) Insert(ctx context.Context, meta *schema.Metadata, row schema.Row) error {
	cols := make([]string, 0, len(meta.Fields))
	marks := make([]string, 0, len(meta.Fields))
	args := make([]any, 0, len(meta.Fields))
	for _, f := range meta.Fields {
		v, err := arg(f, row[f.Column])
		if err != nil {
			return err
		}
		args = append(args, v)
		cols = append(cols, ident(f.Column))
		marks = append(marks, fmt.Sprintf("$%d", len(args)))
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ident(meta.Table), strings.Join(cols, ", "), strings.Join(marks, ", "))
	if _, err := tx.Exec(ctx, m.db).ExecContext(ctx, query, args...); err != nil {
		return translate(err, "insert into "+meta.Table)
	}
	return nil
}

func (m *Mapper) Update(ctx context.Context, meta *schema.Metadata, id int64, row schema.Row) error {
	pk, ok := meta.PK()
	if !ok {
		return schema.ErrNoPrimary
	}
	sets := make([]string, 0, len(meta.Fields))
	args := make([]any, 0, len(meta.Fields)+1)
	for _, f := range meta.Fields {
		if f.PK {
			continue
		}
		v, err := arg(f, row[f.Column])
		if err != nil {
			return err
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", ident(f.Column), len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		ident(meta.Table), strings.Join(sets, ", "), ident(pk.Column), len(args))
	res, err := tx.Exec(ctx, m.db).ExecContext(ctx, query, args...)
	if err != nil {
		return translate(err, "update "+meta.Table)
	}
	return requireRow(res, meta.Table, id)
}

func (m *Mapper) Delete(ctx context.Context, meta *schema.Metadata, id int64) error {
	pk, ok := meta.PK()
	if !ok {
		return schema.ErrNoPrimary
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", ident(meta.Table), ident(pk.Column))
	res, err := tx.Exec(ctx, m.db).ExecContext(ctx, query, id)
	if err != nil {
		return translate(err, "delete from "+meta.Table)
	}
	return requireRow(res, meta.Table, id)
}

func arg(f schema.Field, v any) (any, error) {
	if !f.JSON {
		return schema.Normalize(v), nil
	}
	if schema.Normalize(v) == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", f.Column, err)
	}
	if string(b) == "null" {
		return nil, nil
	}
	return string(b), nil
}

func requireRow(res sql.Result, table string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", table, id, sentinel.ErrNotFound)
	}
	return nil
}

func translate(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
