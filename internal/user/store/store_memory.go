package store

import (
	"context"
	"fmt"

	"contacts/internal/persistence/memory"
	"contacts/internal/persistence/schema"
	"contacts/internal/user/models"
	id "contacts/pkg/domain"
)

// InMemoryStore reads users written to a memory.DB.
type InMemoryStore struct {
	db   *memory.DB
	meta *schema.Metadata
}

func NewInMemory(db *memory.DB, registry *schema.Registry) (*InMemoryStore, error) {
	meta, err := registry.Of(&models.User{})
	if err != nil {
		return nil, fmt.Errorf("user metadata: %w", err)
	}
	return &InMemoryStore{db: db, meta: meta}, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	row, ok := s.db.Get(s.meta.Table, int64(userID))
	if !ok {
		return nil, ErrNotFound
	}
	return s.hydrate(row)
}

func (s *InMemoryStore) FindByUUID(_ context.Context, uuid string) (*models.User, error) {
	rows := s.db.Select(s.meta.Table, func(row schema.Row) bool { return row["uuid"] == uuid })
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return s.hydrate(rows[0])
}

func (s *InMemoryStore) hydrate(row schema.Row) (*models.User, error) {
	u := &models.User{}
	if err := s.meta.Hydrate(row, u); err != nil {
		return nil, err
	}
	return u, nil
}
