package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"contacts/internal/user/models"
	id "contacts/pkg/domain"
	"contacts/pkg/platform/tx"
)

// PostgresStore reads users from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	return s.findOne(ctx, "id = $1", int64(userID))
}

func (s *PostgresStore) FindByUUID(ctx context.Context, uuid string) (*models.User, error) {
	return s.findOne(ctx, "uuid = $1", uuid)
}

func (s *PostgresStore) findOne(ctx context.Context, where string, arg any) (*models.User, error) {
	var (
		u     models.User
		roles []byte
	)
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, uuid, roles, password, created_at FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.UUID, &roles, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := json.Unmarshal(roles, &u.Roles); err != nil {
		return nil, fmt.Errorf("decode user roles: %w", err)
	}
	return &u, nil
}
