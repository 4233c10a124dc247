package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"contacts/internal/notification/models"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/platform/httputil"
	auth "contacts/pkg/platform/middleware/auth"
	request "contacts/pkg/platform/middleware/request"
	"contacts/pkg/platform/paging"
)

// Service defines the notification operations the handler exposes.
type Service interface {
	CreateChannel(ctx context.Context, req models.ChannelRequest) (*models.NotificationChannel, error)
	GetChannel(ctx context.Context, channelID id.NotificationChannelID) (*models.NotificationChannel, error)
	ListChannels(ctx context.Context, page paging.Request) (models.Page[*models.NotificationChannel], error)
	ReplaceChannel(ctx context.Context, channelID id.NotificationChannelID, req models.ChannelRequest) (*models.NotificationChannel, error)
	PatchChannel(ctx context.Context, channelID id.NotificationChannelID, patch models.ChannelPatch) (*models.NotificationChannel, error)
	DeleteChannel(ctx context.Context, channelID id.NotificationChannelID) error

	CreateSubscription(ctx context.Context, req models.SubscriptionRequest) (*models.NotificationSubscription, error)
	GetSubscription(ctx context.Context, subID id.NotificationSubscriptionID) (*models.NotificationSubscription, error)
	ListSubscriptions(ctx context.Context, filter models.SubscriptionFilter, page paging.Request) (models.Page[*models.NotificationSubscription], error)
	ReplaceSubscription(ctx context.Context, subID id.NotificationSubscriptionID, req models.SubscriptionRequest) (*models.NotificationSubscription, error)
	PatchSubscription(ctx context.Context, subID id.NotificationSubscriptionID, patch models.SubscriptionPatch) (*models.NotificationSubscription, error)
	DeleteSubscription(ctx context.Context, subID id.NotificationSubscriptionID) error

	GetIntent(ctx context.Context, intentID id.NotificationIntentID) (*models.NotificationIntent, error)
	ListIntents(ctx context.Context, page paging.Request) (models.Page[*models.NotificationIntent], error)
}

// Handler serves /notification_channels, /notification_subscriptions and the
// read-only /notification_intents.
type Handler struct {
	service      Service
	logger       *slog.Logger
	jwtValidator auth.JWTValidator
}

func New(svc Service, logger *slog.Logger, jwtValidator auth.JWTValidator) *Handler {
	return &Handler{service: svc, logger: logger, jwtValidator: jwtValidator}
}

// Register registers the notification routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Use(auth.RequireAuth(h.jwtValidator, h.logger))

		r.Post("/notification_channels", h.handleCreateChannel)
		r.Get("/notification_channels", h.handleListChannels)
		r.Get("/notification_channels/{id}", h.handleGetChannel)
		r.Put("/notification_channels/{id}", h.handleReplaceChannel)
		r.Patch("/notification_channels/{id}", h.handlePatchChannel)
		r.Delete("/notification_channels/{id}", h.handleDeleteChannel)

		r.Post("/notification_subscriptions", h.handleCreateSubscription)
		r.Get("/notification_subscriptions", h.handleListSubscriptions)
		r.Get("/notification_subscriptions/{id}", h.handleGetSubscription)
		r.Put("/notification_subscriptions/{id}", h.handleReplaceSubscription)
		r.Patch("/notification_subscriptions/{id}", h.handlePatchSubscription)
		r.Delete("/notification_subscriptions/{id}", h.handleDeleteSubscription)

		r.Get("/notification_intents", h.handleListIntents)
		r.Get("/notification_intents/{id}", h.handleGetIntent)
	})
}

func (h *Handler) handleCreateChannel(w http.ResponseWriter, r *http.Request) {
	var req models.ChannelRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.CreateChannel(r.Context(), req)
	h.respond(w, r, http.StatusCreated, c, err)
}

func (h *Handler) handleListChannels(w http.ResponseWriter, r *http.Request) {
	page, ok := h.paging(w, r)
	if !ok {
		return
	}
	out, err := h.service.ListChannels(r.Context(), page)
	h.respond(w, r, http.StatusOK, out, err)
}

func (h *Handler) handleGetChannel(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathID(w, r, id.ParseNotificationChannelID)
	if !ok {
		return
	}
	c, err := h.service.GetChannel(r.Context(), channelID)
	h.respond(w, r, http.StatusOK, c, err)
}

func (h *Handler) handleReplaceChannel(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathID(w, r, id.ParseNotificationChannelID)
	if !ok {
		return
	}
	var req models.ChannelRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.ReplaceChannel(r.Context(), channelID, req)
	h.respond(w, r, http.StatusOK, c, err)
}

func (h *Handler) handlePatchChannel(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathID(w, r, id.ParseNotificationChannelID)
	if !ok {
		return
	}
	var patch models.ChannelPatch
	if !h.decode(w, r, &patch) {
		return
	}
	c, err := h.service.PatchChannel(r.Context(), channelID, patch)
	h.respond(w, r, http.StatusOK, c, err)
}

func (h *Handler) handleDeleteChannel(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathID(w, r, id.ParseNotificationChannelID)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusNoContent, nil, h.service.DeleteChannel(r.Context(), channelID))
}

func (h *Handler) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req models.SubscriptionRequest
	if !h.decode(w, r, &req) {
		return
	}
	sub, err := h.service.CreateSubscription(r.Context(), req)
	h.respond(w, r, http.StatusCreated, sub, err)
}

// handleListSubscriptions accepts entityType and entityId filters.
func (h *Handler) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	page, ok := h.paging(w, r)
	if !ok {
		return
	}
	entityID, err := httputil.QueryInt(r, "entityId")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	filter := models.SubscriptionFilter{
		EntityType: r.URL.Query().Get("entityType"),
		EntityID:   int64(entityID),
	}
	out, err := h.service.ListSubscriptions(r.Context(), filter, page)
	h.respond(w, r, http.StatusOK, out, err)
}

func (h *Handler) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	subID, ok := pathID(w, r, id.ParseNotificationSubscriptionID)
	if !ok {
		return
	}
	sub, err := h.service.GetSubscription(r.Context(), subID)
	h.respond(w, r, http.StatusOK, sub, err)
}

func (h *Handler) handleReplaceSubscription(w http.ResponseWriter, r *http.Request) {
	subID, ok := pathID(w, r, id.ParseNotificationSubscriptionID)
	if !ok {
		return
	}
	var req models.SubscriptionRequest
	if !h.decode(w, r, &req) {
		return
	}
	sub, err := h.service.ReplaceSubscription(r.Context(), subID, req)
	h.respond(w, r, http.StatusOK, sub, err)
}

func (h *Handler) handlePatchSubscription(w http.ResponseWriter, r *http.Request) {
	subID, ok := pathID(w, r, id.ParseNotificationSubscriptionID)
	if !ok {
		return
	}
	var patch models.SubscriptionPatch
	if !h.decode(w, r, &patch) {
		return
	}
	sub, err := h.service.PatchSubscription(r.Context(), subID, patch)
	h.respond(w, r, http.StatusOK, sub, err)
}

func (h *Handler) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	subID, ok := pathID(w, r, id.ParseNotificationSubscriptionID)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusNoContent, nil, h.service.DeleteSubscription(r.Context(), subID))
}

func (h *Handler) handleListIntents(w http.ResponseWriter, r *http.Request) {
	page, ok := h.paging(w, r)
	if !ok {
		return
	}
	out, err := h.service.ListIntents(r.Context(), page)
	h.respond(w, r, http.StatusOK, out, err)
}

func (h *Handler) handleGetIntent(w http.ResponseWriter, r *http.Request) {
	intentID, ok := pathID(w, r, id.ParseNotificationIntentID)
	if !ok {
		return
	}
	in, err := h.service.GetIntent(r.Context(), intentID)
	h.respond(w, r, http.StatusOK, in, err)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httputil.DecodeJSON(r, dst); err != nil {
		ctx := r.Context()
		h.logger.WarnContext(ctx, "invalid request body",
			"path", r.URL.Path,
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return false
	}
	return true
}

func (h *Handler) paging(w http.ResponseWriter, r *http.Request) (paging.Request, bool) {
	page, err := httputil.QueryInt(r, "page")
	if err != nil {
		httputil.WriteError(w, err)
		return paging.Request{}, false
	}
	perPage, err := httputil.QueryInt(r, "itemsPerPage")
	if err != nil {
		httputil.WriteError(w, err)
		return paging.Request{}, false
	}
	return paging.Request{Page: page, PerPage: perPage}, true
}

// respond writes v with status, or the error. Internal errors are logged.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			ctx := r.Context()
			h.logger.ErrorContext(ctx, "request failed",
				"path", r.URL.Path,
				"error", err,
				"request_id", request.GetRequestID(ctx),
			)
		}
		httputil.WriteError(w, err)
		return
	}
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	httputil.WriteJSON(w, status, v)
}

func pathID[T any](w http.ResponseWriter, r *http.Request, parse func(string) (T, error)) (T, bool) {
	v, err := parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "not found"))
		return v, false
	}
	return v, true
}
