package audit

import (
	"context"
	"errors"

	"contacts/internal/audit/models"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/platform/sentinel"
	"contacts/pkg/requestcontext"
)

// TimelineProvider is satisfied by Timeline and by its caching decorator.
type TimelineProvider interface {
	Get(ctx context.Context, tenant id.TenantID, rootID int64) (*models.TimelineView, error)
}

// Service answers audit queries for the principal in the request context.
type Service struct {
	entries  EntryReader
	timeline TimelineProvider
}

func NewService(entries EntryReader, timeline TimelineProvider) *Service {
	return &Service{entries: entries, timeline: timeline}
}

// List returns one page of the caller's entries matching filter.
func (s *Service) List(ctx context.Context, filter models.Filter) ([]*models.Entry, error) {
	tenant, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	filter, err = filter.Normalized()
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.List(ctx, tenant, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit entries")
	}
	return entries, nil
}

func (s *Service) Get(ctx context.Context, entryID id.AuditEntryID) (*models.Entry, error) {
	tenant, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := s.entries.FindByID(ctx, tenant, entryID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "audit entry not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load audit entry")
	}
	return entry, nil
}

// Timeline returns the history of a root entity owned by the caller's tenant.
func (s *Service) Timeline(ctx context.Context, rootID int64) (*models.TimelineView, error) {
	tenant, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.timeline.Get(ctx, tenant, rootID)
}

func callerTenant(ctx context.Context) (id.TenantID, error) {
	tenant := requestcontext.TenantID(ctx)
	if tenant.IsNil() {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return tenant, nil
}
