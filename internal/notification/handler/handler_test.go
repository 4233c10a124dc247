package handler

import (
	"context"
	"encoding/json"
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

	"contacts/internal/notification/handler/mocks"
	"contacts/internal/notification/models"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	auth "contacts/pkg/platform/middleware/auth"
	"contacts/pkg/platform/paging"
	"contacts/pkg/requestcontext"
	"contacts/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

const token = "valid-token"

var alice = id.UserID(7)

type stubValidator struct{}

func (stubValidator) ValidateToken(raw string) (*auth.JWTClaims, error) {
	if raw != token {
		return nil, errors.New("invalid token")
	}
	return &auth.JWTClaims{UserID: alice, JTI: "jti"}, nil
}

type NotificationHandlerSuite struct {
	suite.Suite
	router  chi.Router
	service *mocks.MockService
}

func TestNotificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(NotificationHandlerSuite))
}

func (s *NotificationHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(s.service, logger, stubValidator{}).Register(s.router)
}

func (s *NotificationHandlerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+token)
	return testutil.DoRequest(s.router, req)
}

func (s *NotificationHandlerSuite) TestCreateChannel() {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s.service.EXPECT().CreateChannel(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req models.ChannelRequest) (*models.NotificationChannel, error) {
			assert.Equal(s.T(), alice, requestcontext.UserID(ctx))
			assert.Equal(s.T(), "telegram", req.Type)
			assert.Equal(s.T(), json.Number("2110838056469663744"), req.Config["chat"])
			return &models.NotificationChannel{ID: 3, TenantID: 7, OwnerID: alice, Type: req.Type, Config: req.Config, CreatedAt: created}, nil
		})

	rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/notification_channels",
		`{"type":"telegram","config":{"chat":2110838056469663744}}`))

	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	assert.Contains(s.T(), rr.Body.String(), `"chat":2110838056469663744`)
	body := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
	assert.Equal(s.T(), float64(3), (*body)["id"])
	assert.Nil(s.T(), (*body)["verifiedAt"])
	assert.Equal(s.T(), "2025-06-01T10:00:00Z", (*body)["createdAt"])
	assert.NotContains(s.T(), *body, "tenant_id")
}

func (s *NotificationHandlerSuite) TestPatchChannelPassesRawFields() {
	s.service.EXPECT().PatchChannel(gomock.Any(), id.NotificationChannelID(3), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ id.NotificationChannelID, patch models.ChannelPatch) (*models.NotificationChannel, error) {
			assert.Empty(s.T(), patch.Type)
			assert.JSONEq(s.T(), `{"phone":"+987654321"}`, string(patch.Config))
			return &models.NotificationChannel{ID: 3, Type: "sms"}, nil
		})

	rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPatch, "/notification_channels/3", `{"config":{"phone":"+987654321"}}`))

	testutil.AssertStatusOK(s.T(), rr)
}

func (s *NotificationHandlerSuite) TestListSubscriptionsPassesFilter() {
	s.service.EXPECT().ListSubscriptions(gomock.Any(),
		models.SubscriptionFilter{EntityType: "Contact", EntityID: 12},
		paging.Request{Page: 2}).
		Return(models.Page[*models.NotificationSubscription]{Items: []*models.NotificationSubscription{}, Page: 2, ItemsPerPage: 30}, nil)

	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/notification_subscriptions?entityType=Contact&entityId=12&page=2"))

	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "page", float64(2))
}

func (s *NotificationHandlerSuite) TestListSubscriptionsRejectsBadEntityID() {
	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/notification_subscriptions?entityId=abc"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
}

func (s *NotificationHandlerSuite) TestCreateSubscriptionWithForeignChannel() {
	channel := id.NotificationChannelID(9)
	s.service.EXPECT().CreateSubscription(gomock.Any(), models.SubscriptionRequest{
		Channel: &channel, EntityType: "Contact", EntityID: 123,
	}).Return(nil, dErrors.New(dErrors.CodeValidation, "channel does not exist"))

	rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/notification_subscriptions", map[string]any{
		"channel": 9, "entityType": "Contact", "entityId": 123,
	}))

	testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
	testutil.AssertJSONContains(s.T(), rr, "error_description", "channel does not exist")
}

func (s *NotificationHandlerSuite) TestSubscriptionRendersNullChannel() {
	s.service.EXPECT().GetSubscription(gomock.Any(), id.NotificationSubscriptionID(4)).
		Return(&models.NotificationSubscription{ID: 4, EntityType: "Contact", EntityID: 1, Enabled: 1}, nil)

	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/notification_subscriptions/4"))

	testutil.AssertStatusOK(s.T(), rr)
	body := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
	require.Contains(s.T(), *body, "channel")
	assert.Nil(s.T(), (*body)["channel"])
	assert.Equal(s.T(), float64(1), (*body)["enabled"])
}

func (s *NotificationHandlerSuite) TestIntentsAreReadOnly() {
	s.service.EXPECT().GetIntent(gomock.Any(), id.NotificationIntentID(5)).
		Return(&models.NotificationIntent{ID: 5, ChannelID: 3, Payload: map[string]any{"msg": "hello"}}, nil)

	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/notification_intents/5"))
	testutil.AssertStatusOK(s.T(), rr)
	assert.JSONEq(s.T(), `{"id":5,"channel":3,"payload":{"msg":"hello"}}`, rr.Body.String())

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		path := "/notification_intents/5"
		if method == http.MethodPost {
			path = "/notification_intents"
		}
		rr := s.do(testutil.NewRequestWithBody(s.T(), method, path, `{"payload":{"x":"y"}}`))
		testutil.AssertStatus(s.T(), rr, http.StatusMethodNotAllowed)
	}
}

func (s *NotificationHandlerSuite) TestMalformedIDIsNotFound() {
	rr := s.do(testutil.NewRequest(s.T(), http.MethodDelete, "/notification_channels/abc"))
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
}

func (s *NotificationHandlerSuite) TestDeleteChannelReturnsNoContent() {
	s.service.EXPECT().DeleteChannel(gomock.Any(), id.NotificationChannelID(3)).Return(nil)

	rr := s.do(testutil.NewRequest(s.T(), http.MethodDelete, "/notification_channels/3"))

	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	assert.Empty(s.T(), rr.Body.String())
}
