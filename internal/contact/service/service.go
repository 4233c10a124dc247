// Package service implements contact CRUD. Every mutation runs through one
// persistence session, so its audit entries commit with it.
package service

import (
	"context"
	"errors"
	"log/slog"

	"contacts/internal/contact/models"
	"contacts/internal/persistence"
	"contacts/internal/tenancy"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/platform/paging"
	"contacts/pkg/platform/sentinel"
	"contacts/pkg/requestcontext"
)

// Store reads contact data for one tenant.
type Store interface {
	FindContact(ctx context.Context, tenant id.TenantID, contactID id.ContactID) (*models.Contact, error)
	ListContacts(ctx context.Context, tenant id.TenantID, offset, limit int) ([]*models.Contact, error)
	FindName(ctx context.Context, tenant id.TenantID, nameID id.ContactNameID) (*models.ContactName, error)
	ListNames(ctx context.Context, tenant id.TenantID, offset, limit int) ([]*models.ContactName, error)
	FindDate(ctx context.Context, tenant id.TenantID, dateID id.ContactDateID) (*models.ContactDate, error)
	ListDates(ctx context.Context, tenant id.TenantID, offset, limit int) ([]*models.ContactDate, error)
	NameFinder
}

// Service orchestrates contacts, names and dates for the request principal.
type Service struct {
	store    Store
	uow      *persistence.Manager
	logger   *slog.Logger
	checkers []DuplicateChecker
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New uses slog.Default() unless WithLogger is given, and checks imports
// for duplicate names.
func New(store Store, uow *persistence.Manager, opts ...Option) *Service {
	s := &Service{
		store:    store,
		uow:      uow,
		logger:   slog.Default(),
		checkers: []DuplicateChecker{NewNameDuplicateChecker(store)},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Paging selects a page of a collection; zero values take the defaults.
type Paging = paging.Request

// CreateContact creates a contact owned by the principal with its names and
// dates, in one transaction.
func (s *Service) CreateContact(ctx context.Context, req models.ContactRequest) (*models.Contact, error) {
	principal, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := &models.Contact{
		TenantID: id.TenantOf(principal),
		OwnerID:  principal,
	}
	sess := s.uow.NewSession()
	if err := sess.Persist(c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to schedule contact")
	}
	if err := s.addChildren(sess, c, req); err != nil {
		return nil, err
	}
	if err := s.flush(ctx, sess, "create contact"); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetContact(ctx context.Context, contactID id.ContactID) (*models.Contact, error) {
	return s.loadContact(ctx, contactID, tenancy.PermissionView)
}

func (s *Service) ListContacts(ctx context.Context, paging Paging) (models.Page[*models.Contact], error) {
	return list(ctx, paging, s.store.ListContacts)
}

// ReplaceContact replaces the names and dates of a contact: every existing
// child is removed and the submitted ones are inserted.
func (s *Service) ReplaceContact(ctx context.Context, contactID id.ContactID, req models.ContactRequest) (*models.Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c, err := s.loadContact(ctx, contactID, tenancy.PermissionEdit)
	if err != nil {
		return nil, err
	}

	sess := s.uow.NewSession()
	if err := track(sess, c); err != nil {
		return nil, err
	}
	if err := removeChildren(sess, c); err != nil {
		return nil, err
	}
	c.Names, c.Dates = nil, nil
	if err := s.addChildren(sess, c, req); err != nil {
		return nil, err
	}
	if err := s.flush(ctx, sess, "replace contact"); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteContact removes the contact's names and dates, then the contact.
func (s *Service) DeleteContact(ctx context.Context, contactID id.ContactID) error {
	c, err := s.loadContact(ctx, contactID, tenancy.PermissionEdit)
	if err != nil {
		return err
	}
	sess := s.uow.NewSession()
	if err := track(sess, c); err != nil {
		return err
	}
	if err := removeChildren(sess, c); err != nil {
		return err
	}
	if err := sess.Remove(c); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to schedule removal")
	}
	return s.flush(ctx, sess, "delete contact")
}

func (s *Service) addChildren(sess *persistence.Session, c *models.Contact, req models.ContactRequest) error {
	for _, in := range req.ContactNames {
		n := &models.ContactName{ContactID: c.ID, TenantID: c.TenantID, Family: in.Family, Given: in.Given}
		if err := sess.Persist(n); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to schedule contact name")
		}
		c.Names = append(c.Names, n)
	}
	for _, in := range req.ContactDates {
		day, err := in.Parse()
		if err != nil {
			return err
		}
		d := &models.ContactDate{ContactID: c.ID, TenantID: c.TenantID, Date: day, Text: in.Text}
		if err := sess.Persist(d); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to schedule contact date")
		}
		c.Dates = append(c.Dates, d)
	}
	if c.Names == nil {
		c.Names = []*models.ContactName{}
	}
	if c.Dates == nil {
		c.Dates = []*models.ContactDate{}
	}
	return nil
}

// loadContact finds a contact in the principal's tenant and checks perm.
func (s *Service) loadContact(ctx context.Context, contactID id.ContactID, perm tenancy.Permission) (*models.Contact, error) {
	principal, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.store.FindContact(ctx, id.TenantOf(principal), contactID)
	if err != nil {
		return nil, notFound(err, "contact not found")
	}
	if err := tenancy.Authorize(principal, perm, c); err != nil {
		return nil, err
	}
	return c, nil
}

// flush maps storage conflicts to CodeConflict before passing coded errors
// through untouched; anything left is logged as internal.
func (s *Service) flush(ctx context.Context, sess *persistence.Session, op string) error {
	err := sess.Flush(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrConflict):
		s.logger.WarnContext(ctx, "conflicting write",
			"op", op,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
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

func track(sess *persistence.Session, c *models.Contact) error {
	entities := []any{c}
	for _, n := range c.Names {
		entities = append(entities, n)
	}
	for _, d := range c.Dates {
		entities = append(entities, d)
	}
	if err := sess.Track(entities...); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to track contact")
	}
	return nil
}

func removeChildren(sess *persistence.Session, c *models.Contact) error {
	for _, n := range c.Names {
		if err := sess.Remove(n); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to schedule removal")
		}
	}
	for _, d := range c.Dates {
		if err := sess.Remove(d); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to schedule removal")
		}
	}
	return nil
}

func list[T any](ctx context.Context, paging Paging, load func(context.Context, id.TenantID, int, int) ([]T, error)) (models.Page[T], error) {
	principal, err := principal(ctx)
	if err != nil {
		return models.Page[T]{}, err
	}
	paging, err = paging.Normalize()
	if err != nil {
		return models.Page[T]{}, err
	}
	items, err := load(ctx, id.TenantOf(principal), paging.Offset(), paging.PerPage)
	if err != nil {
		return models.Page[T]{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list")
	}
	return models.Page[T]{Items: items, Page: paging.Page, ItemsPerPage: paging.PerPage}, nil
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
