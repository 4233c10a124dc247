package audit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"contacts/internal/audit"
	"contacts/internal/audit/mocks"
	"contacts/internal/audit/models"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/platform/sentinel"
	"contacts/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	entries *mocks.MockEntryReader
	source  *mocks.MockTimelineSource
	service *audit.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.entries = mocks.NewMockEntryReader(s.ctrl)
	s.source = mocks.NewMockTimelineSource(s.ctrl)
	s.service = audit.NewService(s.entries, audit.NewTimeline(s.source, s.entries, nil))
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) caller(user id.UserID) context.Context {
	return requestcontext.WithUserID(context.Background(), user)
}

func (s *ServiceSuite) TestListScopesToCallerTenantWithDefaults() {
	want := []*models.Entry{{ID: 1}}
	s.entries.EXPECT().
		List(gomock.Any(), id.TenantID(4), models.Filter{EntityType: "Contact", Order: models.OrderDesc, Page: 1, PerPage: models.DefaultPerPage}).
		Return(want, nil)

	got, err := s.service.List(s.caller(4), models.Filter{EntityType: "Contact"})
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *ServiceSuite) TestListRejectsBadFilter() {
	_, err := s.service.List(s.caller(4), models.Filter{PerPage: models.MaxPerPage + 1})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestAnonymousCallerIsUnauthorized() {
	_, err := s.service.List(context.Background(), models.Filter{})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.Get(context.Background(), 1)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.Timeline(context.Background(), 1)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestGetMissingEntryIsNotFound() {
	s.entries.EXPECT().FindByID(gomock.Any(), id.TenantID(4), id.AuditEntryID(9)).Return(nil, sentinel.ErrNotFound)

	_, err := s.service.Get(s.caller(4), 9)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestTimelineUsesCallerTenant() {
	refs := []models.EntityRef{{Type: "Contact", ID: 2}}
	s.source.EXPECT().TimelineRefs(gomock.Any(), id.TenantID(4), int64(2)).Return(refs, nil)
	s.entries.EXPECT().ListByRefs(gomock.Any(), id.TenantID(4), refs).Return(nil, nil)

	view, err := s.service.Timeline(s.caller(4), 2)
	s.Require().NoError(err)
	s.Equal(int64(2), view.ID)
}
