package store_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/suite"

	"contacts/internal/notification/models"
	"contacts/internal/notification/service"
	"contacts/internal/persistence"
	id "contacts/pkg/domain"
	"contacts/pkg/platform/sentinel"
)

const (
	tenantA = id.TenantID(1)
	tenantB = id.TenantID(2)
)

// storeContract runs the same read behavior against every Store
// implementation. Embedders set store and uow in their setup.
type storeContract struct {
	suite.Suite
	store service.Store
	uow   *persistence.Manager
}

func (s *storeContract) save(entities ...any) {
	sess := s.uow.NewSession()
	for _, e := range entities {
		s.Require().NoError(sess.Persist(e))
	}
	s.Require().NoError(sess.Flush(context.Background()))
}

func (s *storeContract) seedChannel(tenant id.TenantID) *models.NotificationChannel {
	c := &models.NotificationChannel{
		TenantID:  tenant,
		OwnerID:   id.UserID(tenant),
		Type:      "telegram",
		Config:    map[string]any{"chat": json.Number("2110838056469663744")},
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	s.save(c)
	return c
}

func (s *storeContract) TestFindChannelRoundTrips() {
	c := s.seedChannel(tenantA)

	got, err := s.store.FindChannel(context.Background(), tenantA, c.ID)
	s.Require().NoError(err)
	s.Equal("telegram", got.Type)
	s.Equal(id.UserID(tenantA), got.OwnerID)
	s.Equal(json.Number("2110838056469663744"), got.Config["chat"])
	s.True(c.CreatedAt.Equal(got.CreatedAt))
	s.Nil(got.VerifiedAt)
}

func (s *storeContract) TestReadsAreTenantScoped() {
	ctx := context.Background()
	c := s.seedChannel(tenantA)
	sub := &models.NotificationSubscription{TenantID: tenantA, OwnerID: id.UserID(tenantA), ChannelID: &c.ID, EntityType: "Contact", EntityID: 1, Enabled: 1}
	intent := &models.NotificationIntent{TenantID: tenantA, ChannelID: c.ID}
	s.save(sub, intent)

	_, err := s.store.FindChannel(ctx, tenantB, c.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindSubscription(ctx, tenantB, sub.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindIntent(ctx, tenantB, intent.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	channels, err := s.store.ListChannels(ctx, tenantB, 0, 10)
	s.Require().NoError(err)
	s.Empty(channels)
	subs, err := s.store.SubscriptionsOfChannel(ctx, tenantB, c.ID)
	s.Require().NoError(err)
	s.Empty(subs)
}

func (s *storeContract) TestSubscriptionFilters() {
	ctx := context.Background()
	c := s.seedChannel(tenantA)
	s.save(
		&models.NotificationSubscription{TenantID: tenantA, OwnerID: 1, ChannelID: &c.ID, EntityType: "Contact", EntityID: 1, Enabled: 1},
		&models.NotificationSubscription{TenantID: tenantA, OwnerID: 1, EntityType: "Contact", EntityID: 2, Enabled: 0},
		&models.NotificationSubscription{TenantID: tenantA, OwnerID: 1, EntityType: "Other", EntityID: 1, Enabled: 1},
		&models.NotificationSubscription{TenantID: tenantB, OwnerID: 2, EntityType: "Contact", EntityID: 1, Enabled: 1},
	)

	all, err := s.store.ListSubscriptions(ctx, tenantA, models.SubscriptionFilter{}, 0, 0)
	s.Require().NoError(err)
	s.Len(all, 3)
	s.Nil(all[1].ChannelID)
	s.Equal(0, all[1].Enabled)

	byType, err := s.store.ListSubscriptions(ctx, tenantA, models.SubscriptionFilter{EntityType: "Contact"}, 0, 10)
	s.Require().NoError(err)
	s.Len(byType, 2)

	byBoth, err := s.store.ListSubscriptions(ctx, tenantA, models.SubscriptionFilter{EntityType: "Contact", EntityID: 1}, 0, 10)
	s.Require().NoError(err)
	s.Require().Len(byBoth, 1)
	s.Equal(c.ID, *byBoth[0].ChannelID)

	paged, err := s.store.ListSubscriptions(ctx, tenantA, models.SubscriptionFilter{EntityID: 1}, 1, 1)
	s.Require().NoError(err)
	s.Require().Len(paged, 1)
	s.Equal("Other", paged[0].EntityType)

	onChannel, err := s.store.SubscriptionsOfChannel(ctx, tenantA, c.ID)
	s.Require().NoError(err)
	s.Len(onChannel, 1)
}

func (s *storeContract) TestIntentsOfChannel() {
	ctx := context.Background()
	c := s.seedChannel(tenantA)
	other := s.seedChannel(tenantA)
	s.save(
		&models.NotificationIntent{TenantID: tenantA, ChannelID: c.ID, Payload: map[string]any{"msg": "one"}},
		&models.NotificationIntent{TenantID: tenantA, ChannelID: c.ID},
		&models.NotificationIntent{TenantID: tenantA, ChannelID: other.ID},
	)

	intents, err := s.store.IntentsOfChannel(ctx, tenantA, c.ID)
	s.Require().NoError(err)
	s.Require().Len(intents, 2)
	s.Equal("one", intents[0].Payload["msg"])
	s.Nil(intents[1].Payload)

	all, err := s.store.ListIntents(ctx, tenantA, 0, 2)
	s.Require().NoError(err)
	s.Len(all, 2)
}
