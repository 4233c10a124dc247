package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"contacts/internal/audit/models"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/platform/httputil"
	auth "contacts/pkg/platform/middleware/auth"
	request "contacts/pkg/platform/middleware/request"
)

// Service defines the audit read operations.
type Service interface {
	List(ctx context.Context, filter models.Filter) ([]*models.Entry, error)
	Get(ctx context.Context, entryID id.AuditEntryID) (*models.Entry, error)
	Timeline(ctx context.Context, rootID int64) (*models.TimelineView, error)
}

// Handler serves the read-only audit log and contact timelines.
type Handler struct {
	service      Service
	logger       *slog.Logger
	jwtValidator auth.JWTValidator
}

func New(svc Service, logger *slog.Logger, jwtValidator auth.JWTValidator) *Handler {
	return &Handler{service: svc, logger: logger, jwtValidator: jwtValidator}
}

// Register registers the audit routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(h.jwtValidator, h.logger))

		r.Get("/audit_logs", h.handleList)
		r.Get("/audit_logs/{id}", h.handleGet)
		r.Get("/contacts/{id}/timeline", h.handleTimeline)
	})
}

type listResponse struct {
	Items        []*models.Entry `json:"items"`
	Page         int             `json:"page"`
	ItemsPerPage int             `json:"itemsPerPage"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	entries, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	normalized, _ := filter.Normalized()
	httputil.WriteJSON(w, http.StatusOK, listResponse{
		Items:        entries,
		Page:         normalized.Page,
		ItemsPerPage: normalized.PerPage,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	entryID, err := id.ParseAuditEntryID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "audit entry not found"))
		return
	}
	entry, err := h.service.Get(r.Context(), entryID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	rootID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || rootID <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "Contact not found"))
		return
	}
	view, err := h.service.Timeline(r.Context(), rootID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "audit request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}

// parseFilter reads entityType, entityId, action, order[createdAt], page and
// itemsPerPage. Range checks happen in the service.
func parseFilter(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()
	filter := models.Filter{
		EntityType: q.Get("entityType"),
		Action:     models.Action(q.Get("action")),
		Order:      models.Order(q.Get("order[createdAt]")),
	}
	if raw := q.Get("entityId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, dErrors.New(dErrors.CodeInvalidInput, "entityId must be an integer")
		}
		filter.EntityID = &v
	}
	var err error
	if filter.Page, err = httputil.QueryInt(r, "page"); err != nil {
		return filter, err
	}
	if filter.PerPage, err = httputil.QueryInt(r, "itemsPerPage"); err != nil {
		return filter, err
	}
	return filter, nil
}
