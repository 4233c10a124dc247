package store_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"contacts/internal/audit/models"
	contactmodels "contacts/internal/contact/models"
	"contacts/internal/contact/service"
	"contacts/internal/contact/store"
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

func str(v string) *string { return &v }

func (s *storeContract) save(entities ...any) {
	sess := s.uow.NewSession()
	for _, e := range entities {
		s.Require().NoError(sess.Persist(e))
	}
	s.Require().NoError(sess.Flush(context.Background()))
}

// seed writes one contact with a name and a date for tenant.
func (s *storeContract) seed(tenant id.TenantID) (*contactmodels.Contact, *contactmodels.ContactName, *contactmodels.ContactDate) {
	c := &contactmodels.Contact{TenantID: tenant, OwnerID: id.UserID(tenant)}
	s.save(c)
	day := time.Date(1999, 9, 9, 0, 0, 0, 0, time.UTC)
	n := &contactmodels.ContactName{ContactID: c.ID, TenantID: tenant, Given: str("Ann")}
	d := &contactmodels.ContactDate{ContactID: c.ID, TenantID: tenant, Date: &day, Text: str("birthday")}
	s.save(n, d)
	return c, n, d
}

func (s *storeContract) TestFindContactLoadsChildren() {
	ctx := context.Background()
	c, n, d := s.seed(tenantA)

	got, err := s.store.FindContact(ctx, tenantA, c.ID)
	s.Require().NoError(err)
	s.Equal(c.ID, got.ID)
	s.Equal(tenantA, got.TenantID)
	s.Require().Len(got.Names, 1)
	s.Equal(n.ID, got.Names[0].ID)
	s.Equal("Ann", *got.Names[0].Given)
	s.Nil(got.Names[0].Family)
	s.Require().Len(got.Dates, 1)
	s.True(d.Date.Equal(*got.Dates[0].Date))
	s.Equal(time.UTC, got.Dates[0].Date.Location())
}

func (s *storeContract) TestEmptyContactHasEmptyCollections() {
	c := &contactmodels.Contact{TenantID: tenantA, OwnerID: id.UserID(tenantA)}
	s.save(c)

	got, err := s.store.FindContact(context.Background(), tenantA, c.ID)
	s.Require().NoError(err)
	s.NotNil(got.Names)
	s.Empty(got.Names)
	s.NotNil(got.Dates)
}

func (s *storeContract) TestReadsAreTenantScoped() {
	ctx := context.Background()
	c, n, d := s.seed(tenantA)

	_, err := s.store.FindContact(ctx, tenantB, c.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindName(ctx, tenantB, n.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindDate(ctx, tenantB, d.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	contacts, err := s.store.ListContacts(ctx, tenantB, 0, 10)
	s.Require().NoError(err)
	s.Empty(contacts)
}

func (s *storeContract) TestListsPaginateInIDOrder() {
	ctx := context.Background()
	var ids []id.ContactID
	for i := 0; i < 3; i++ {
		c, _, _ := s.seed(tenantA)
		ids = append(ids, c.ID)
	}
	s.seed(tenantB)

	page, err := s.store.ListContacts(ctx, tenantA, 1, 1)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(ids[1], page[0].ID)
	s.Len(page[0].Names, 1)

	all, err := s.store.ListContacts(ctx, tenantA, 0, 0)
	s.Require().NoError(err)
	s.Len(all, 3, "a zero limit returns everything")

	names, err := s.store.ListNames(ctx, tenantA, 0, 2)
	s.Require().NoError(err)
	s.Len(names, 2)
	dates, err := s.store.ListDates(ctx, tenantA, 2, 10)
	s.Require().NoError(err)
	s.Len(dates, 1)
}

func (s *storeContract) TestTimelineRefs() {
	ctx := context.Background()
	c, n, d := s.seed(tenantA)
	timeline := store.NewTimeline(s.store)

	refs, err := timeline.TimelineRefs(ctx, tenantA, int64(c.ID))
	s.Require().NoError(err)
	s.Equal([]models.EntityRef{
		{Type: contactmodels.EntityContact, ID: int64(c.ID)},
		{Type: contactmodels.EntityContactName, ID: int64(n.ID)},
		{Type: contactmodels.EntityContactDate, ID: int64(d.ID)},
	}, refs)

	_, err = timeline.TimelineRefs(ctx, tenantB, int64(c.ID))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *storeContract) TestFindNamesMatchingComparesMissingParts() {
	ctx := context.Background()
	c, given, _ := s.seed(tenantA)
	full := &contactmodels.ContactName{ContactID: c.ID, TenantID: tenantA, Family: str("Lee"), Given: str("Ann")}
	empty := &contactmodels.ContactName{ContactID: c.ID, TenantID: tenantA, Family: str(""), Given: str("Ann")}
	s.save(full, empty)
	s.seed(tenantB)

	got, err := s.store.FindNamesMatching(ctx, tenantA, nil, str("Ann"))
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(given.ID, got[0].ID)

	got, err = s.store.FindNamesMatching(ctx, tenantA, str("Lee"), str("Ann"))
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(full.ID, got[0].ID)

	got, err = s.store.FindNamesMatching(ctx, tenantA, str(""), str("Ann"))
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(empty.ID, got[0].ID)

	got, err = s.store.FindNamesMatching(ctx, tenantA, str("Lee"), nil)
	s.Require().NoError(err)
	s.Empty(got)
}
