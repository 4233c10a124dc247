package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"contacts/internal/user/models"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/platform/httputil"
	auth "contacts/pkg/platform/middleware/auth"
	request "contacts/pkg/platform/middleware/request"
)

// Service defines the user operations the handler exposes.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, req models.AuthRequest) (*models.TokenResponse, error)
	Get(ctx context.Context, userID id.UserID) (*models.User, error)
}

// Handler serves registration, login and the caller's own profile.
type Handler struct {
	service      Service
	logger       *slog.Logger
	jwtValidator auth.JWTValidator
}

func New(svc Service, logger *slog.Logger, jwtValidator auth.JWTValidator) *Handler {
	return &Handler{service: svc, logger: logger, jwtValidator: jwtValidator}
}

// Register registers the user routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Post("/users", h.handleRegister)
		r.Post("/auth", h.handleAuth)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/users/{id}", h.handleGet)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	u, err := h.service.Register(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) handleAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.AuthRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	token, err := h.service.Authenticate(ctx, req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			h.logger.WarnContext(ctx, "login failed",
				"client_ip", request.ClientIP(r),
				"request_id", request.GetRequestID(ctx),
			)
		}
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, token)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "User not found"))
		return
	}
	u, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "user request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
