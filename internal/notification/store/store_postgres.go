package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"contacts/internal/notification/models"
	id "contacts/pkg/domain"
	"contacts/pkg/platform/tx"
)

const (
	channelColumns      = `id, tenant_id, user_id, type, config, verified_at, created_at`
	subscriptionColumns = `id, tenant_id, user_id, channel_id, entity_type, entity_id, enabled`
	intentColumns       = `id, tenant_id, channel_id, payload`
)

// PostgresStore reads notification rows with plain SQL. Every query is
// filtered by tenant_id.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindChannel(ctx context.Context, tenant id.TenantID, channelID id.NotificationChannelID) (*models.NotificationChannel, error) {
	return first(s.queryChannels(ctx, `WHERE tenant_id = $1 AND id = $2`, int64(tenant), int64(channelID)))
}

func (s *PostgresStore) ListChannels(ctx context.Context, tenant id.TenantID, offset, limit int) ([]*models.NotificationChannel, error) {
	return s.queryChannels(ctx, `WHERE tenant_id = $1 ORDER BY id LIMIT $2 OFFSET $3`, int64(tenant), limitArg(limit), offset)
}

func (s *PostgresStore) FindSubscription(ctx context.Context, tenant id.TenantID, subID id.NotificationSubscriptionID) (*models.NotificationSubscription, error) {
	return first(s.querySubscriptions(ctx, `WHERE tenant_id = $1 AND id = $2`, int64(tenant), int64(subID)))
}

// ListSubscriptions treats an empty entity type and a zero entity id as
// wildcards.
func (s *PostgresStore) ListSubscriptions(ctx context.Context, tenant id.TenantID, filter models.SubscriptionFilter, offset, limit int) ([]*models.NotificationSubscription, error) {
	return s.querySubscriptions(ctx,
		`WHERE tenant_id = $1
		   AND ($2::text = '' OR entity_type = $2::text)
		   AND ($3::bigint = 0 OR entity_id = $3::bigint)
		 ORDER BY id LIMIT $4 OFFSET $5`,
		int64(tenant), filter.EntityType, filter.EntityID, limitArg(limit), offset)
}

func (s *PostgresStore) SubscriptionsOfChannel(ctx context.Context, tenant id.TenantID, channelID id.NotificationChannelID) ([]*models.NotificationSubscription, error) {
	return s.querySubscriptions(ctx, `WHERE tenant_id = $1 AND channel_id = $2 ORDER BY id`, int64(tenant), int64(channelID))
}

func (s *PostgresStore) FindIntent(ctx context.Context, tenant id.TenantID, intentID id.NotificationIntentID) (*models.NotificationIntent, error) {
	return first(s.queryIntents(ctx, `WHERE tenant_id = $1 AND id = $2`, int64(tenant), int64(intentID)))
}

func (s *PostgresStore) ListIntents(ctx context.Context, tenant id.TenantID, offset, limit int) ([]*models.NotificationIntent, error) {
	return s.queryIntents(ctx, `WHERE tenant_id = $1 ORDER BY id LIMIT $2 OFFSET $3`, int64(tenant), limitArg(limit), offset)
}

func (s *PostgresStore) IntentsOfChannel(ctx context.Context, tenant id.TenantID, channelID id.NotificationChannelID) ([]*models.NotificationIntent, error) {
	return s.queryIntents(ctx, `WHERE tenant_id = $1 AND channel_id = $2 ORDER BY id`, int64(tenant), int64(channelID))
}

func (s *PostgresStore) queryChannels(ctx context.Context, clause string, args ...any) ([]*models.NotificationChannel, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT `+channelColumns+` FROM notification_channels `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query notification channels: %w", err)
	}
	defer rows.Close()

	out := []*models.NotificationChannel{}
	for rows.Next() {
		var (
			c        models.NotificationChannel
			config   []byte
			verified sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.TenantID, &c.OwnerID, &c.Type, &config, &verified, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification channel: %w", err)
		}
		if c.Config, err = decodeObject(config); err != nil {
			return nil, fmt.Errorf("decode channel config: %w", err)
		}
		if verified.Valid {
			t := verified.Time.UTC()
			c.VerifiedAt = &t
		}
		c.CreatedAt = c.CreatedAt.UTC()
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) querySubscriptions(ctx context.Context, clause string, args ...any) ([]*models.NotificationSubscription, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT `+subscriptionColumns+` FROM notification_subscriptions `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query notification subscriptions: %w", err)
	}
	defer rows.Close()

	out := []*models.NotificationSubscription{}
	for rows.Next() {
		var (
			sub     models.NotificationSubscription
			channel sql.NullInt64
		)
		if err := rows.Scan(&sub.ID, &sub.TenantID, &sub.OwnerID, &channel, &sub.EntityType, &sub.EntityID, &sub.Enabled); err != nil {
			return nil, fmt.Errorf("scan notification subscription: %w", err)
		}
		if channel.Valid {
			c := id.NotificationChannelID(channel.Int64)
			sub.ChannelID = &c
		}
		out = append(out, &sub)
	}
	return out, rows.Err()
}

func (s *PostgresStore) queryIntents(ctx context.Context, clause string, args ...any) ([]*models.NotificationIntent, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT `+intentColumns+` FROM notification_intents `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query notification intents: %w", err)
	}
	defer rows.Close()

	out := []*models.NotificationIntent{}
	for rows.Next() {
		var (
			in      models.NotificationIntent
			payload []byte
		)
		if err := rows.Scan(&in.ID, &in.TenantID, &in.ChannelID, &payload); err != nil {
			return nil, fmt.Errorf("scan notification intent: %w", err)
		}
		if in.Payload, err = decodeObject(payload); err != nil {
			return nil, fmt.Errorf("decode intent payload: %w", err)
		}
		out = append(out, &in)
	}
	return out, rows.Err()
}

func first[T any](items []*T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return items[0], nil
}

// decodeObject keeps numbers as json.Number so large ids in config and
// payload survive exactly.
func decodeObject(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// limitArg maps "no limit" to NULL, which Postgres treats as LIMIT ALL.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

