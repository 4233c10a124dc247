package service

import (
	"context"

	"contacts/internal/contact/models"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
)

// DuplicateChecker decides whether an incoming contact already exists in a
// tenant. Any checker saying yes skips the contact.
type DuplicateChecker interface {
	IsDuplicate(ctx context.Context, tenant id.TenantID, req models.ContactRequest) (bool, error)
}

// NameFinder finds stored names with exactly these parts. A nil part matches
// only a missing one.
type NameFinder interface {
	FindNamesMatching(ctx context.Context, tenant id.TenantID, family, given *string) ([]*models.ContactName, error)
}

// NameDuplicateChecker flags a contact when one of its names is already
// stored with the same family and given parts.
type NameDuplicateChecker struct {
	names NameFinder
}

func NewNameDuplicateChecker(names NameFinder) *NameDuplicateChecker {
	return &NameDuplicateChecker{names: names}
}

func (c *NameDuplicateChecker) IsDuplicate(ctx context.Context, tenant id.TenantID, req models.ContactRequest) (bool, error) {
	for _, n := range req.ContactNames {
		if _, ok := n.Key(); !ok {
			continue
		}
		found, err := c.names.FindNamesMatching(ctx, tenant, n.Family, n.Given)
		if err != nil {
			return false, err
		}
		if len(found) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// WithDuplicateCheckers replaces the checkers consulted by ImportContacts.
// The default is a single NameDuplicateChecker over the store.
func WithDuplicateCheckers(checkers ...DuplicateChecker) Option {
	return func(s *Service) { s.checkers = checkers }
}

// ImportContacts creates every contact of req that no checker flags, in one
// transaction. Two contacts of the same batch sharing a name are duplicates
// too; the first one wins.
func (s *Service) ImportContacts(ctx context.Context, req models.ImportRequest) (*models.ImportResult, error) {
	principal, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	tenant := id.TenantOf(principal)

	result := &models.ImportResult{Imported: []*models.Contact{}}
	seen := map[string]bool{}
	sess := s.uow.NewSession()
	for _, in := range req.Contacts {
		dup, err := s.isDuplicate(ctx, tenant, in, seen)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check duplicates")
		}
		if dup {
			result.Skipped++
			continue
		}
		for _, n := range in.ContactNames {
			if key, ok := n.Key(); ok {
				seen[key] = true
			}
		}

		c := &models.Contact{TenantID: tenant, OwnerID: principal}
		if err := sess.Persist(c); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to schedule contact")
		}
		if err := s.addChildren(sess, c, in); err != nil {
			return nil, err
		}
		result.Imported = append(result.Imported, c)
	}
	if len(result.Imported) == 0 {
		return result, nil
	}
	if err := s.flush(ctx, sess, "import contacts"); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "contacts imported",
		"imported", len(result.Imported),
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s *Service) isDuplicate(ctx context.Context, tenant id.TenantID, req models.ContactRequest, seen map[string]bool) (bool, error) {
	for _, n := range req.ContactNames {
		if key, ok := n.Key(); ok && seen[key] {
			return true, nil
		}
	}
	for _, c := range s.checkers {
		dup, err := c.IsDuplicate(ctx, tenant, req)
		if err != nil || dup {
			return dup, err
		}
	}
	return false, nil
}
