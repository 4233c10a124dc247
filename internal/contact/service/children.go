package service

import (
	"context"

	"contacts/internal/contact/models"
	"contacts/internal/tenancy"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
)

func (s *Service) CreateName(ctx context.Context, req models.ContactNameRequest) (*models.ContactName, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c, err := s.parentContact(ctx, req.Contact)
	if err != nil {
		return nil, err
	}
	n := &models.ContactName{ContactID: c.ID, TenantID: c.TenantID, Family: req.Family, Given: req.Given}
	if err := s.persistOne(ctx, n, "create contact name"); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) GetName(ctx context.Context, nameID id.ContactNameID) (*models.ContactName, error) {
	return s.loadName(ctx, nameID, tenancy.PermissionView)
}

func (s *Service) ListNames(ctx context.Context, paging Paging) (models.Page[*models.ContactName], error) {
	return list(ctx, paging, s.store.ListNames)
}

// ReplaceName overwrites family and given, and moves the name when another
// contact of the same owner is given.
func (s *Service) ReplaceName(ctx context.Context, nameID id.ContactNameID, req models.ContactNameRequest) (*models.ContactName, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	n, err := s.loadName(ctx, nameID, tenancy.PermissionEdit)
	if err != nil {
		return nil, err
	}
	sess := s.uow.NewSession()
	if err := sess.Track(n); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to track contact name")
	}
	if req.Contact != n.ContactID {
		if _, err := s.parentContact(ctx, req.Contact); err != nil {
			return nil, err
		}
		n.ContactID = req.Contact
	}
	n.Family, n.Given = req.Family, req.Given
	if err := s.flush(ctx, sess, "update contact name"); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) DeleteName(ctx context.Context, nameID id.ContactNameID) error {
	n, err := s.loadName(ctx, nameID, tenancy.PermissionEdit)
	if err != nil {
		return err
	}
	return s.removeOne(ctx, n, "delete contact name")
}

func (s *Service) CreateDate(ctx context.Context, req models.ContactDateRequest) (*models.ContactDate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c, err := s.parentContact(ctx, req.Contact)
	if err != nil {
		return nil, err
	}
	day, _ := req.Parse()
	d := &models.ContactDate{ContactID: c.ID, TenantID: c.TenantID, Date: day, Text: req.Text}
	if err := s.persistOne(ctx, d, "create contact date"); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDate(ctx context.Context, dateID id.ContactDateID) (*models.ContactDate, error) {
	return s.loadDate(ctx, dateID, tenancy.PermissionView)
}

func (s *Service) ListDates(ctx context.Context, paging Paging) (models.Page[*models.ContactDate], error) {
	return list(ctx, paging, s.store.ListDates)
}

func (s *Service) ReplaceDate(ctx context.Context, dateID id.ContactDateID, req models.ContactDateRequest) (*models.ContactDate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	d, err := s.loadDate(ctx, dateID, tenancy.PermissionEdit)
	if err != nil {
		return nil, err
	}
	sess := s.uow.NewSession()
	if err := sess.Track(d); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to track contact date")
	}
	if req.Contact != d.ContactID {
		if _, err := s.parentContact(ctx, req.Contact); err != nil {
			return nil, err
		}
		d.ContactID = req.Contact
	}
	d.Date, _ = req.Parse()
	d.Text = req.Text
	if err := s.flush(ctx, sess, "update contact date"); err != nil {
		return nil, err
	}
	return d, nil
}

// PatchDate changes only the fields present in patch.
func (s *Service) PatchDate(ctx context.Context, dateID id.ContactDateID, patch models.ContactDatePatch) (*models.ContactDate, error) {
	d, err := s.loadDate(ctx, dateID, tenancy.PermissionEdit)
	if err != nil {
		return nil, err
	}
	sess := s.uow.NewSession()
	if err := sess.Track(d); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to track contact date")
	}
	if err := patch.Apply(d); err != nil {
		return nil, err
	}
	if err := s.flush(ctx, sess, "patch contact date"); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) DeleteDate(ctx context.Context, dateID id.ContactDateID) error {
	d, err := s.loadDate(ctx, dateID, tenancy.PermissionEdit)
	if err != nil {
		return err
	}
	return s.removeOne(ctx, d, "delete contact date")
}

// parentContact resolves the contact a child is attached to. A contact
// outside the principal's tenant is reported as a validation failure, not a
// missing resource.
func (s *Service) parentContact(ctx context.Context, contactID id.ContactID) (*models.Contact, error) {
	c, err := s.loadContact(ctx, contactID, tenancy.PermissionEdit)
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		return nil, dErrors.New(dErrors.CodeValidation, "contact does not exist")
	}
	return c, err
}

func (s *Service) loadName(ctx context.Context, nameID id.ContactNameID, perm tenancy.Permission) (*models.ContactName, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.store.FindName(ctx, id.TenantOf(p), nameID)
	if err != nil {
		return nil, notFound(err, "contact name not found")
	}
	if err := tenancy.Authorize(p, perm, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) loadDate(ctx context.Context, dateID id.ContactDateID, perm tenancy.Permission) (*models.ContactDate, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.store.FindDate(ctx, id.TenantOf(p), dateID)
	if err != nil {
		return nil, notFound(err, "contact date not found")
	}
	if err := tenancy.Authorize(p, perm, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) persistOne(ctx context.Context, e any, op string) error {
	sess := s.uow.NewSession()
	if err := sess.Persist(e); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+op)
	}
	return s.flush(ctx, sess, op)
}

func (s *Service) removeOne(ctx context.Context, e any, op string) error {
	sess := s.uow.NewSession()
	if err := sess.Track(e); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+op)
	}
	if err := sess.Remove(e); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+op)
	}
	return s.flush(ctx, sess, op)
}
