package store

import (
	"context"
	"fmt"

	"contacts/internal/notification/models"
	"contacts/internal/persistence/memory"
	"contacts/internal/persistence/schema"
	id "contacts/pkg/domain"
)

// InMemoryStore reads rows written to a memory.DB.
type InMemoryStore struct {
	db            *memory.DB
	channels      *schema.Metadata
	subscriptions *schema.Metadata
	intents       *schema.Metadata
}

func NewInMemory(db *memory.DB, registry *schema.Registry) (*InMemoryStore, error) {
	s := &InMemoryStore{db: db}
	for dst, e := range map[**schema.Metadata]any{
		&s.channels:      &models.NotificationChannel{},
		&s.subscriptions: &models.NotificationSubscription{},
		&s.intents:       &models.NotificationIntent{},
	} {
		m, err := registry.Of(e)
		if err != nil {
			return nil, fmt.Errorf("notification metadata: %w", err)
		}
		*dst = m
	}
	return s, nil
}

func (s *InMemoryStore) FindChannel(_ context.Context, tenant id.TenantID, channelID id.NotificationChannelID) (*models.NotificationChannel, error) {
	return memory.FindInTenant[models.NotificationChannel](s.db, s.channels, tenant, int64(channelID))
}

func (s *InMemoryStore) ListChannels(_ context.Context, tenant id.TenantID, offset, limit int) ([]*models.NotificationChannel, error) {
	rows := s.db.Select(s.channels.Table, memory.TenantRows(tenant))
	return memory.HydrateAll[models.NotificationChannel](s.channels, memory.Window(rows, offset, limit))
}

func (s *InMemoryStore) FindSubscription(_ context.Context, tenant id.TenantID, subID id.NotificationSubscriptionID) (*models.NotificationSubscription, error) {
	return memory.FindInTenant[models.NotificationSubscription](s.db, s.subscriptions, tenant, int64(subID))
}

func (s *InMemoryStore) ListSubscriptions(_ context.Context, tenant id.TenantID, filter models.SubscriptionFilter, offset, limit int) ([]*models.NotificationSubscription, error) {
	matches := func(row schema.Row) bool {
		if filter.EntityType != "" && row["entity_type"] != filter.EntityType {
			return false
		}
		if filter.EntityID != 0 && schema.Normalize(row["entity_id"]) != filter.EntityID {
			return false
		}
		return true
	}
	rows := s.db.Select(s.subscriptions.Table, memory.TenantRows(tenant, matches))
	return memory.HydrateAll[models.NotificationSubscription](s.subscriptions, memory.Window(rows, offset, limit))
}

func (s *InMemoryStore) SubscriptionsOfChannel(_ context.Context, tenant id.TenantID, channelID id.NotificationChannelID) ([]*models.NotificationSubscription, error) {
	rows := s.db.Select(s.subscriptions.Table, memory.TenantRows(tenant, onChannel(channelID)))
	return memory.HydrateAll[models.NotificationSubscription](s.subscriptions, rows)
}

func (s *InMemoryStore) FindIntent(_ context.Context, tenant id.TenantID, intentID id.NotificationIntentID) (*models.NotificationIntent, error) {
	return memory.FindInTenant[models.NotificationIntent](s.db, s.intents, tenant, int64(intentID))
}

func (s *InMemoryStore) ListIntents(_ context.Context, tenant id.TenantID, offset, limit int) ([]*models.NotificationIntent, error) {
	rows := s.db.Select(s.intents.Table, memory.TenantRows(tenant))
	return memory.HydrateAll[models.NotificationIntent](s.intents, memory.Window(rows, offset, limit))
}

func (s *InMemoryStore) IntentsOfChannel(_ context.Context, tenant id.TenantID, channelID id.NotificationChannelID) ([]*models.NotificationIntent, error) {
	rows := s.db.Select(s.intents.Table, memory.TenantRows(tenant, onChannel(channelID)))
	return memory.HydrateAll[models.NotificationIntent](s.intents, rows)
}

func onChannel(channelID id.NotificationChannelID) func(schema.Row) bool {
	return func(row schema.Row) bool {
		return schema.Normalize(row["channel_id"]) == int64(channelID)
	}
}
