package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"contacts/internal/audit"
	auditmodels "contacts/internal/audit/models"
	auditstore "contacts/internal/audit/store"
	"contacts/internal/notification/models"
	"contacts/internal/notification/service"
	"contacts/internal/notification/store"
	"contacts/internal/persistence"
	"contacts/internal/persistence/memory"
	"contacts/internal/persistence/schema"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/platform/paging"
	"contacts/pkg/requestcontext"
)

const (
	alice = id.UserID(1)
	bob   = id.UserID(2)
)

type NotificationServiceSuite struct {
	suite.Suite
	manager *persistence.Manager
	service *service.Service
	audit   *audit.Service
	t0      time.Time
}

func TestNotificationServiceSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceSuite))
}

func (s *NotificationServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := memory.New()
	registry := schema.NewRegistry().MustRegister(append(models.Entities(), &auditmodels.Entry{})...)
	s.manager = persistence.NewManager(registry, db, db,
		persistence.WithAllocator(persistence.NewSequenceAllocator(1)))
	audit.NewInterceptor(registry, audit.WithLogger(logger)).Attach(s.manager)

	notifications, err := store.NewInMemory(db, registry)
	s.Require().NoError(err)
	entries, err := auditstore.NewInMemory(db, registry)
	s.Require().NoError(err)

	s.service = service.New(notifications, s.manager, service.WithLogger(logger))
	s.audit = audit.NewService(entries, nil)
	s.t0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func (s *NotificationServiceSuite) as(user id.UserID, offset time.Duration) context.Context {
	ctx := requestcontext.WithUserID(context.Background(), user)
	return requestcontext.WithTime(ctx, s.t0.Add(offset))
}

func (s *NotificationServiceSuite) logs(user id.UserID, filter auditmodels.Filter) []*auditmodels.Entry {
	filter.Order = auditmodels.OrderAsc
	entries, err := s.audit.List(s.as(user, 0), filter)
	s.Require().NoError(err)
	return entries
}

func (s *NotificationServiceSuite) channel(user id.UserID) *models.NotificationChannel {
	c, err := s.service.CreateChannel(s.as(user, 0), models.ChannelRequest{
		Type:   "email",
		Config: map[string]any{"address": "ada@example.com"},
	})
	s.Require().NoError(err)
	return c
}

func (s *NotificationServiceSuite) TestChannelLifecycleIsAudited() {
	c := s.channel(alice)
	s.NotZero(c.ID)
	s.Equal(s.t0, c.CreatedAt)
	s.Nil(c.VerifiedAt)

	_, err := s.service.PatchChannel(s.as(alice, time.Minute), c.ID, models.ChannelPatch{
		Config: []byte(`{"address":"lovelace@example.com"}`),
	})
	s.Require().NoError(err)

	replaced, err := s.service.ReplaceChannel(s.as(alice, 2*time.Minute), c.ID, models.ChannelRequest{Type: " sms "})
	s.Require().NoError(err)
	s.Equal("sms", replaced.Type)
	s.Nil(replaced.Config)

	logs := s.logs(alice, auditmodels.Filter{EntityType: models.EntityChannel})
	s.Require().Len(logs, 3)
	s.Equal(auditmodels.ActionInsert, logs[0].Action)
	s.Equal(int64(c.ID), logs[0].SnapshotAfter["id"])
	s.Equal(int64(alice), logs[0].SnapshotAfter["user"])
	s.Equal(map[string]any{"address": "ada@example.com"}, logs[0].SnapshotAfter["config"])
	s.Equal(auditmodels.ActionUpdate, logs[1].Action)
	s.Contains(logs[1].Changes, "config")
	s.Equal(auditmodels.Changes{
		"type":   {Old: "email", New: "sms"},
		"config": {Old: map[string]any{"address": "lovelace@example.com"}, New: nil},
	}, logs[2].Changes)

	page, err := s.service.ListChannels(s.as(alice, 0), paging.Request{})
	s.Require().NoError(err)
	s.Len(page.Items, 1)
	s.Equal(paging.DefaultPerPage, page.ItemsPerPage)
}

func (s *NotificationServiceSuite) TestChannelRequiresType() {
	_, err := s.service.CreateChannel(s.as(alice, 0), models.ChannelRequest{Type: "  "})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Empty(s.logs(alice, auditmodels.Filter{}))
}

func (s *NotificationServiceSuite) TestSubscriptionDefaultsAndFilters() {
	c := s.channel(alice)
	for _, req := range []models.SubscriptionRequest{
		{Channel: &c.ID, EntityType: "Contact", EntityID: 1},
		{EntityType: "Contact", EntityID: 2},
		{EntityType: "Other", EntityID: 1},
	} {
		sub, err := s.service.CreateSubscription(s.as(alice, 0), req)
		s.Require().NoError(err)
		s.Equal(1, sub.Enabled)
	}

	page, err := s.service.ListSubscriptions(s.as(alice, 0), models.SubscriptionFilter{EntityType: "Contact"}, paging.Request{})
	s.Require().NoError(err)
	s.Len(page.Items, 2)

	page, err = s.service.ListSubscriptions(s.as(alice, 0), models.SubscriptionFilter{EntityID: 1}, paging.Request{})
	s.Require().NoError(err)
	s.Len(page.Items, 2)

	page, err = s.service.ListSubscriptions(s.as(alice, 0), models.SubscriptionFilter{EntityType: "Contact", EntityID: 1}, paging.Request{})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(c.ID, *page.Items[0].ChannelID)

	page, err = s.service.ListSubscriptions(s.as(bob, 0), models.SubscriptionFilter{}, paging.Request{})
	s.Require().NoError(err)
	s.Empty(page.Items)
}

func (s *NotificationServiceSuite) TestSubscriptionChannelMustBeOwn() {
	foreign := s.channel(bob)

	_, err := s.service.CreateSubscription(s.as(alice, 0), models.SubscriptionRequest{
		Channel: &foreign.ID, EntityType: "Contact", EntityID: 1,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal("channel does not exist", dErrors.MessageOf(err))

	sub, err := s.service.CreateSubscription(s.as(alice, 0), models.SubscriptionRequest{EntityType: "Contact", EntityID: 1})
	s.Require().NoError(err)
	_, err = s.service.PatchSubscription(s.as(alice, time.Minute), sub.ID, models.SubscriptionPatch{
		Channel: []byte(foreign.ID.String()),
	})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *NotificationServiceSuite) TestPatchSubscriptionKeepsAbsentFields() {
	c := s.channel(alice)
	sub, err := s.service.CreateSubscription(s.as(alice, 0), models.SubscriptionRequest{
		Channel: &c.ID, EntityType: "Contact", EntityID: 5,
	})
	s.Require().NoError(err)

	patched, err := s.service.PatchSubscription(s.as(alice, time.Minute), sub.ID, models.SubscriptionPatch{
		Enabled: []byte(`0`),
	})
	s.Require().NoError(err)
	s.Equal(0, patched.Enabled)
	s.Equal(c.ID, *patched.ChannelID)
	s.Equal(int64(5), patched.EntityID)

	updates := s.logs(alice, auditmodels.Filter{Action: auditmodels.ActionUpdate})
	s.Require().Len(updates, 1)
	s.Equal(auditmodels.Changes{"enabled": {Old: int64(1), New: int64(0)}}, updates[0].Changes)

	_, err = s.service.PatchSubscription(s.as(alice, time.Minute), sub.ID, models.SubscriptionPatch{Enabled: []byte(`2`)})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *NotificationServiceSuite) TestDeleteChannelDetachesSubscriptionsAndDropsIntents() {
	c := s.channel(alice)
	sub, err := s.service.CreateSubscription(s.as(alice, 0), models.SubscriptionRequest{
		Channel: &c.ID, EntityType: "Contact", EntityID: 1,
	})
	s.Require().NoError(err)

	intent := &models.NotificationIntent{TenantID: c.TenantID, ChannelID: c.ID, Payload: map[string]any{"msg": "hello"}}
	sess := s.manager.NewSession()
	s.Require().NoError(sess.Persist(intent))
	s.Require().NoError(sess.Flush(s.as(alice, 0)))

	got, err := s.service.GetIntent(s.as(alice, 0), intent.ID)
	s.Require().NoError(err)
	s.Equal("hello", got.Payload["msg"])

	s.Require().NoError(s.service.DeleteChannel(s.as(alice, time.Hour), c.ID))

	_, err = s.service.GetChannel(s.as(alice, 0), c.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	_, err = s.service.GetIntent(s.as(alice, 0), intent.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	kept, err := s.service.GetSubscription(s.as(alice, 0), sub.ID)
	s.Require().NoError(err)
	s.Nil(kept.ChannelID)

	updates := s.logs(alice, auditmodels.Filter{EntityType: models.EntitySubscription, Action: auditmodels.ActionUpdate})
	s.Require().Len(updates, 1)
	s.Equal(auditmodels.Changes{"channel": {Old: int64(c.ID), New: nil}}, updates[0].Changes)

	removals := s.logs(alice, auditmodels.Filter{Action: auditmodels.ActionRemove})
	s.Require().Len(removals, 2)
	s.Equal(models.EntityIntent, removals[0].EntityType)
	s.Equal(models.EntityChannel, removals[1].EntityType)
	s.Equal("email", removals[1].SnapshotBefore["type"])
}

func (s *NotificationServiceSuite) TestOtherTenantsSeeNothing() {
	c := s.channel(alice)
	sub, err := s.service.CreateSubscription(s.as(alice, 0), models.SubscriptionRequest{EntityType: "Contact", EntityID: 1})
	s.Require().NoError(err)

	_, err = s.service.GetChannel(s.as(bob, 0), c.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	_, err = s.service.PatchChannel(s.as(bob, 0), c.ID, models.ChannelPatch{Type: []byte(`"x"`)})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.True(dErrors.HasCode(s.service.DeleteSubscription(s.as(bob, 0), sub.ID), dErrors.CodeNotFound))
	_, err = s.service.GetIntent(s.as(bob, 0), 99)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.Require().NoError(s.service.DeleteSubscription(s.as(alice, 0), sub.ID))
	s.Empty(s.logs(bob, auditmodels.Filter{}))
}

func (s *NotificationServiceSuite) TestAnonymousCallsAreRejected() {
	_, err := s.service.CreateChannel(context.Background(), models.ChannelRequest{Type: "email"})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	_, err = s.service.ListIntents(context.Background(), paging.Request{})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
