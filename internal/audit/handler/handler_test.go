package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"contacts/internal/audit/handler/mocks"
	"contacts/internal/audit/models"
	"contacts/internal/persistence"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	auth "contacts/pkg/platform/middleware/auth"
	"contacts/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type stubValidator struct{}

func (stubValidator) ValidateToken(raw string) (*auth.JWTClaims, error) {
	if raw != "token" {
		return nil, errors.New("invalid token")
	}
	return &auth.JWTClaims{UserID: 3}, nil
}

type AuditHandlerSuite struct {
	suite.Suite
	router  chi.Router
	service *mocks.MockService
}

func TestAuditHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuditHandlerSuite))
}

func (s *AuditHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)), stubValidator{}).Register(s.router)
}

func (s *AuditHandlerSuite) get(path string) *httptest.ResponseRecorder {
	req := testutil.NewRequest(s.T(), http.MethodGet, path)
	req.Header.Set("Authorization", "Bearer token")
	return testutil.DoRequest(s.router, req)
}

func (s *AuditHandlerSuite) TestListParsesFilter() {
	entityID := int64(12)
	s.service.EXPECT().List(gomock.Any(), models.Filter{
		EntityType: "ContactName",
		EntityID:   &entityID,
		Action:     models.ActionUpdate,
		Order:      models.OrderAsc,
		Page:       2,
		PerPage:    5,
	}).Return([]*models.Entry{{
		ID:         40,
		ActorID:    3,
		TenantID:   3,
		EntityType: "ContactName",
		EntityID:   &entityID,
		Action:     models.ActionUpdate,
		Changes:    models.Changes{"given": persistence.Change{Old: "A", New: "B"}},
		CreatedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}}, nil)

	rr := s.get("/audit_logs?entityType=ContactName&entityId=12&action=UPDATE&order[createdAt]=asc&page=2&itemsPerPage=5")

	testutil.AssertStatusOK(s.T(), rr)
	assert.JSONEq(s.T(), `{
		"items": [{
			"id": 40, "actor": 3, "tenantId": 3,
			"entityType": "ContactName", "entityId": 12, "action": "UPDATE",
			"changes": {"given": ["A", "B"]},
			"snapshotBefore": null, "snapshotAfter": null,
			"createdAt": "2025-03-01T12:00:00Z"
		}],
		"page": 2,
		"itemsPerPage": 5
	}`, rr.Body.String())
}

func (s *AuditHandlerSuite) TestListDefaultsPaging() {
	s.service.EXPECT().List(gomock.Any(), models.Filter{}).Return([]*models.Entry{}, nil)

	rr := s.get("/audit_logs")

	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "itemsPerPage", float64(models.DefaultPerPage))
}

func (s *AuditHandlerSuite) TestListRejectsBadEntityID() {
	rr := s.get("/audit_logs?entityId=abc")
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
}

func (s *AuditHandlerSuite) TestListPropagatesFilterErrors() {
	s.service.EXPECT().List(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeInvalidInput, "order must be asc or desc"))

	rr := s.get("/audit_logs?order[createdAt]=sideways")

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
}

func (s *AuditHandlerSuite) TestGetEntry() {
	s.service.EXPECT().Get(gomock.Any(), id.AuditEntryID(8)).
		Return(&models.Entry{ID: 8, Action: models.ActionInsert, SnapshotAfter: models.Snapshot{"id": int64(1)}}, nil)

	rr := s.get("/audit_logs/8")

	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "action", "INSERT")
}

func (s *AuditHandlerSuite) TestGetMissingEntry() {
	s.service.EXPECT().Get(gomock.Any(), id.AuditEntryID(8)).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "audit entry not found"))

	testutil.AssertStatus(s.T(), s.get("/audit_logs/8"), http.StatusNotFound)
}

func (s *AuditHandlerSuite) TestTimeline() {
	s.service.EXPECT().Timeline(gomock.Any(), int64(77)).
		Return(&models.TimelineView{ID: 77, Logs: []*models.Entry{}}, nil)

	rr := s.get("/contacts/77/timeline")

	testutil.AssertStatusOK(s.T(), rr)
	assert.JSONEq(s.T(), `{"id": 77, "logs": []}`, rr.Body.String())
}

func (s *AuditHandlerSuite) TestTimelineNotFound() {
	s.service.EXPECT().Timeline(gomock.Any(), int64(77)).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "Contact not found"))

	rr := s.get("/contacts/77/timeline")

	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	resp := testutil.UnmarshalErrorResponse(s.T(), rr)
	require.Equal(s.T(), "Contact not found", resp["error_description"])
}

func (s *AuditHandlerSuite) TestRequiresToken() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/audit_logs"))
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
}
