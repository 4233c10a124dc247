// Package service implements notification channels and subscriptions for the
// request principal, and read access to queued intents. Only the tenant's
// user may see or change them; creating is open to any authenticated user.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"contacts/internal/notification/models"
	"contacts/internal/persistence"
	"contacts/internal/tenancy"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/platform/paging"
	"contacts/pkg/platform/sentinel"
	"contacts/pkg/requestcontext"
)

// Store reads notification data for one tenant.
type Store interface {
	FindChannel(ctx context.Context, tenant id.TenantID, channelID id.NotificationChannelID) (*models.NotificationChannel, error)
	ListChannels(ctx context.Context, tenant id.TenantID, offset, limit int) ([]*models.NotificationChannel, error)
	FindSubscription(ctx context.Context, tenant id.TenantID, subID id.NotificationSubscriptionID) (*models.NotificationSubscription, error)
	ListSubscriptions(ctx context.Context, tenant id.TenantID, filter models.SubscriptionFilter, offset, limit int) ([]*models.NotificationSubscription, error)
	SubscriptionsOfChannel(ctx context.Context, tenant id.TenantID, channelID id.NotificationChannelID) ([]*models.NotificationSubscription, error)
	FindIntent(ctx context.Context, tenant id.TenantID, intentID id.NotificationIntentID) (*models.NotificationIntent, error)
	ListIntents(ctx context.Context, tenant id.TenantID, offset, limit int) ([]*models.NotificationIntent, error)
	IntentsOfChannel(ctx context.Context, tenant id.TenantID, channelID id.NotificationChannelID) ([]*models.NotificationIntent, error)
}

type Service struct {
	store  Store
	uow    *persistence.Manager
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store Store, uow *persistence.Manager, opts ...Option) *Service {
	s := &Service{store: store, uow: uow, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateChannel(ctx context.Context, req models.ChannelRequest) (*models.NotificationChannel, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c := &models.NotificationChannel{
		TenantID:  id.TenantOf(p),
		OwnerID:   p,
		Type:      strings.TrimSpace(req.Type),
		Config:    req.Config,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.persistOne(ctx, c, "create notification channel"); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetChannel(ctx context.Context, channelID id.NotificationChannelID) (*models.NotificationChannel, error) {
	return s.loadChannel(ctx, channelID, tenancy.PermissionView)
}

func (s *Service) ListChannels(ctx context.Context, page paging.Request) (models.Page[*models.NotificationChannel], error) {
	return list(ctx, page, s.store.ListChannels)
}

// ReplaceChannel overwrites type and config. VerifiedAt is kept.
func (s *Service) ReplaceChannel(ctx context.Context, channelID id.NotificationChannelID, req models.ChannelRequest) (*models.NotificationChannel, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.editChannel(ctx, channelID, "update notification channel", func(c *models.NotificationChannel) error {
		c.Type, c.Config = strings.TrimSpace(req.Type), req.Config
		return nil
	})
}

func (s *Service) PatchChannel(ctx context.Context, channelID id.NotificationChannelID, patch models.ChannelPatch) (*models.NotificationChannel, error) {
	return s.editChannel(ctx, channelID, "patch notification channel", patch.Apply)
}

// DeleteChannel removes the channel with its queued intents. Subscriptions
// routed to it stay, detached from any channel.
func (s *Service) DeleteChannel(ctx context.Context, channelID id.NotificationChannelID) error {
	c, err := s.loadChannel(ctx, channelID, tenancy.PermissionEdit)
	if err != nil {
		return err
	}
	subs, err := s.store.SubscriptionsOfChannel(ctx, c.TenantID, c.ID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load subscriptions")
	}
	intents, err := s.store.IntentsOfChannel(ctx, c.TenantID, c.ID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load intents")
	}

	sess := s.uow.NewSession()
	for _, sub := range subs {
		if err := sess.Track(sub); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to track subscription")
		}
		sub.ChannelID = nil
	}
	for _, in := range intents {
		if err := schedule(sess, in); err != nil {
			return err
		}
	}
	if err := schedule(sess, c); err != nil {
		return err
	}
	return s.flush(ctx, sess, "delete notification channel")
}

func (s *Service) CreateSubscription(ctx context.Context, req models.SubscriptionRequest) (*models.NotificationSubscription, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkChannel(ctx, req.Channel); err != nil {
		return nil, err
	}
	sub := &models.NotificationSubscription{
		TenantID:   id.TenantOf(p),
		OwnerID:    p,
		ChannelID:  req.Channel,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Enabled:    req.EnabledOrDefault(),
	}
	if err := s.persistOne(ctx, sub, "create notification subscription"); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) GetSubscription(ctx context.Context, subID id.NotificationSubscriptionID) (*models.NotificationSubscription, error) {
	return s.loadSubscription(ctx, subID, tenancy.PermissionView)
}

func (s *Service) ListSubscriptions(ctx context.Context, filter models.SubscriptionFilter, page paging.Request) (models.Page[*models.NotificationSubscription], error) {
	return list(ctx, page, func(ctx context.Context, tenant id.TenantID, offset, limit int) ([]*models.NotificationSubscription, error) {
		return s.store.ListSubscriptions(ctx, tenant, filter, offset, limit)
	})
}

func (s *Service) ReplaceSubscription(ctx context.Context, subID id.NotificationSubscriptionID, req models.SubscriptionRequest) (*models.NotificationSubscription, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.editSubscription(ctx, subID, "update notification subscription", func(sub *models.NotificationSubscription) error {
		if err := s.checkChannel(ctx, req.Channel); err != nil {
			return err
		}
		sub.ChannelID = req.Channel
		sub.EntityType, sub.EntityID = req.EntityType, req.EntityID
		sub.Enabled = req.EnabledOrDefault()
		return nil
	})
}

func (s *Service) PatchSubscription(ctx context.Context, subID id.NotificationSubscriptionID, patch models.SubscriptionPatch) (*models.NotificationSubscription, error) {
	return s.editSubscription(ctx, subID, "patch notification subscription", func(sub *models.NotificationSubscription) error {
		channel, changed, err := patch.Apply(sub)
		if err != nil || !changed {
			return err
		}
		if err := s.checkChannel(ctx, channel); err != nil {
			return err
		}
		sub.ChannelID = channel
		return nil
	})
}

func (s *Service) DeleteSubscription(ctx context.Context, subID id.NotificationSubscriptionID) error {
	sub, err := s.loadSubscription(ctx, subID, tenancy.PermissionEdit)
	if err != nil {
		return err
	}
	sess := s.uow.NewSession()
	if err := schedule(sess, sub); err != nil {
		return err
	}
	return s.flush(ctx, sess, "delete notification subscription")
}

func (s *Service) GetIntent(ctx context.Context, intentID id.NotificationIntentID) (*models.NotificationIntent, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	in, err := s.store.FindIntent(ctx, id.TenantOf(p), intentID)
	if err != nil {
		return nil, notFound(err, "notification intent not found")
	}
	if err := tenancy.Authorize(p, tenancy.PermissionView, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) ListIntents(ctx context.Context, page paging.Request) (models.Page[*models.NotificationIntent], error) {
	return list(ctx, page, s.store.ListIntents)
}

// checkChannel accepts no channel, or one the principal may edit. A channel
// outside the tenant is a validation failure, not a missing resource.
func (s *Service) checkChannel(ctx context.Context, channelID *id.NotificationChannelID) error {
	if channelID == nil {
		return nil
	}
	_, err := s.loadChannel(ctx, *channelID, tenancy.PermissionEdit)
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		return dErrors.New(dErrors.CodeValidation, "channel does not exist")
	}
	return err
}

func (s *Service) editChannel(ctx context.Context, channelID id.NotificationChannelID, op string, edit func(*models.NotificationChannel) error) (*models.NotificationChannel, error) {
	c, err := s.loadChannel(ctx, channelID, tenancy.PermissionEdit)
	if err != nil {
		return nil, err
	}
	sess := s.uow.NewSession()
	if err := sess.Track(c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+op)
	}
	if err := edit(c); err != nil {
		return nil, err
	}
	if err := s.flush(ctx, sess, op); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) editSubscription(ctx context.Context, subID id.NotificationSubscriptionID, op string, edit func(*models.NotificationSubscription) error) (*models.NotificationSubscription, error) {
	sub, err := s.loadSubscription(ctx, subID, tenancy.PermissionEdit)
	if err != nil {
		return nil, err
	}
	sess := s.uow.NewSession()
	if err := sess.Track(sub); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+op)
	}
	if err := edit(sub); err != nil {
		return nil, err
	}
	if err := s.flush(ctx, sess, op); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) loadChannel(ctx context.Context, channelID id.NotificationChannelID, perm tenancy.Permission) (*models.NotificationChannel, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.store.FindChannel(ctx, id.TenantOf(p), channelID)
	if err != nil {
		return nil, notFound(err, "notification channel not found")
	}
	if err := tenancy.Authorize(p, perm, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) loadSubscription(ctx context.Context, subID id.NotificationSubscriptionID, perm tenancy.Permission) (*models.NotificationSubscription, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	sub, err := s.store.FindSubscription(ctx, id.TenantOf(p), subID)
	if err != nil {
		return nil, notFound(err, "notification subscription not found")
	}
	if err := tenancy.Authorize(p, perm, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) persistOne(ctx context.Context, e any, op string) error {
	sess := s.uow.NewSession()
	if err := sess.Persist(e); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+op)
	}
	return s.flush(ctx, sess, op)
}

// flush maps storage conflicts to CodeConflict and passes coded errors
// through; anything left is logged as internal.
func (s *Service) flush(ctx context.Context, sess *persistence.Session, op string) error {
	err := sess.Flush(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "conflicting write")
	case dErrors.CodeOf(err) != dErrors.CodeInternal:
		return err
	}
	s.logger.ErrorContext(ctx, "failed to "+op,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+op)
}

func schedule(sess *persistence.Session, e any) error {
	if err := sess.Track(e); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to track removal")
	}
	if err := sess.Remove(e); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to schedule removal")
	}
	return nil
}

func list[T any](ctx context.Context, page paging.Request, load func(context.Context, id.TenantID, int, int) ([]T, error)) (models.Page[T], error) {
	p, err := principal(ctx)
	if err != nil {
		return models.Page[T]{}, err
	}
	page, err = page.Normalize()
	if err != nil {
		return models.Page[T]{}, err
	}
	items, err := load(ctx, id.TenantOf(p), page.Offset(), page.PerPage)
	if err != nil {
		return models.Page[T]{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list")
	}
	return models.Page[T]{Items: items, Page: page.Page, ItemsPerPage: page.PerPage}, nil
}

func principal(ctx context.Context) (id.UserID, error) {
	p := requestcontext.UserID(ctx)
	if p.IsNil() {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return p, nil
}

func notFound(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load")
}
