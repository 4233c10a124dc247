package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"contacts/internal/contact/models"
	"contacts/internal/contact/service"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/platform/httputil"
	auth "contacts/pkg/platform/middleware/auth"
	request "contacts/pkg/platform/middleware/request"
)

// Service defines the contact operations the handler exposes.
type Service interface {
	CreateContact(ctx context.Context, req models.ContactRequest) (*models.Contact, error)
	GetContact(ctx context.Context, contactID id.ContactID) (*models.Contact, error)
	ListContacts(ctx context.Context, paging service.Paging) (models.Page[*models.Contact], error)
	ReplaceContact(ctx context.Context, contactID id.ContactID, req models.ContactRequest) (*models.Contact, error)
	DeleteContact(ctx context.Context, contactID id.ContactID) error
	ImportContacts(ctx context.Context, req models.ImportRequest) (*models.ImportResult, error)

	CreateName(ctx context.Context, req models.ContactNameRequest) (*models.ContactName, error)
	GetName(ctx context.Context, nameID id.ContactNameID) (*models.ContactName, error)
	ListNames(ctx context.Context, paging service.Paging) (models.Page[*models.ContactName], error)
	ReplaceName(ctx context.Context, nameID id.ContactNameID, req models.ContactNameRequest) (*models.ContactName, error)
	DeleteName(ctx context.Context, nameID id.ContactNameID) error

	CreateDate(ctx context.Context, req models.ContactDateRequest) (*models.ContactDate, error)
	GetDate(ctx context.Context, dateID id.ContactDateID) (*models.ContactDate, error)
	ListDates(ctx context.Context, paging service.Paging) (models.Page[*models.ContactDate], error)
	ReplaceDate(ctx context.Context, dateID id.ContactDateID, req models.ContactDateRequest) (*models.ContactDate, error)
	PatchDate(ctx context.Context, dateID id.ContactDateID, patch models.ContactDatePatch) (*models.ContactDate, error)
	DeleteDate(ctx context.Context, dateID id.ContactDateID) error
}

// Handler serves /contacts, /contact_names and /contact_dates.
type Handler struct {
	service      Service
	logger       *slog.Logger
	jwtValidator auth.JWTValidator
}

func New(svc Service, logger *slog.Logger, jwtValidator auth.JWTValidator) *Handler {
	return &Handler{service: svc, logger: logger, jwtValidator: jwtValidator}
}

// Register registers the contact routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Use(auth.RequireAuth(h.jwtValidator, h.logger))

		r.Post("/contacts", h.handleCreateContact)
		r.Get("/contacts", h.handleListContacts)
		r.Get("/contacts/{id}", h.handleGetContact)
		r.Put("/contacts/{id}", h.handleReplaceContact)
		r.Delete("/contacts/{id}", h.handleDeleteContact)
		r.Post("/contacts/import", h.handleImportContacts)

		r.Post("/contact_names", h.handleCreateName)
		r.Get("/contact_names", h.handleListNames)
		r.Get("/contact_names/{id}", h.handleGetName)
		r.Put("/contact_names/{id}", h.handleReplaceName)
		r.Delete("/contact_names/{id}", h.handleDeleteName)

		r.Post("/contact_dates", h.handleCreateDate)
		r.Get("/contact_dates", h.handleListDates)
		r.Get("/contact_dates/{id}", h.handleGetDate)
		r.Put("/contact_dates/{id}", h.handleReplaceDate)
		r.Patch("/contact_dates/{id}", h.handlePatchDate)
		r.Delete("/contact_dates/{id}", h.handleDeleteDate)
	})
}

func (h *Handler) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.CreateContact(r.Context(), req)
	h.respond(w, r, http.StatusCreated, c, err)
}

func (h *Handler) handleImportContacts(w http.ResponseWriter, r *http.Request) {
	var req models.ImportRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.service.ImportContacts(r.Context(), req)
	h.respond(w, r, http.StatusCreated, result, err)
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	paging, ok := h.paging(w, r)
	if !ok {
		return
	}
	page, err := h.service.ListContacts(r.Context(), paging)
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *Handler) handleGetContact(w http.ResponseWriter, r *http.Request) {
	contactID, ok := pathID(w, r, id.ParseContactID)
	if !ok {
		return
	}
	c, err := h.service.GetContact(r.Context(), contactID)
	h.respond(w, r, http.StatusOK, c, err)
}

func (h *Handler) handleReplaceContact(w http.ResponseWriter, r *http.Request) {
	contactID, ok := pathID(w, r, id.ParseContactID)
	if !ok {
		return
	}
	var req models.ContactRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.ReplaceContact(r.Context(), contactID, req)
	h.respond(w, r, http.StatusOK, c, err)
}

func (h *Handler) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	contactID, ok := pathID(w, r, id.ParseContactID)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusNoContent, nil, h.service.DeleteContact(r.Context(), contactID))
}

func (h *Handler) handleCreateName(w http.ResponseWriter, r *http.Request) {
	var req models.ContactNameRequest
	if !h.decode(w, r, &req) {
		return
	}
	n, err := h.service.CreateName(r.Context(), req)
	h.respond(w, r, http.StatusCreated, n, err)
}

func (h *Handler) handleListNames(w http.ResponseWriter, r *http.Request) {
	paging, ok := h.paging(w, r)
	if !ok {
		return
	}
	page, err := h.service.ListNames(r.Context(), paging)
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *Handler) handleGetName(w http.ResponseWriter, r *http.Request) {
	nameID, ok := pathID(w, r, id.ParseContactNameID)
	if !ok {
		return
	}
	n, err := h.service.GetName(r.Context(), nameID)
	h.respond(w, r, http.StatusOK, n, err)
}

func (h *Handler) handleReplaceName(w http.ResponseWriter, r *http.Request) {
	nameID, ok := pathID(w, r, id.ParseContactNameID)
	if !ok {
		return
	}
	var req models.ContactNameRequest
	if !h.decode(w, r, &req) {
		return
	}
	n, err := h.service.ReplaceName(r.Context(), nameID, req)
	h.respond(w, r, http.StatusOK, n, err)
}

func (h *Handler) handleDeleteName(w http.ResponseWriter, r *http.Request) {
	nameID, ok := pathID(w, r, id.ParseContactNameID)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusNoContent, nil, h.service.DeleteName(r.Context(), nameID))
}

func (h *Handler) handleCreateDate(w http.ResponseWriter, r *http.Request) {
	var req models.ContactDateRequest
	if !h.decode(w, r, &req) {
		return
	}
	d, err := h.service.CreateDate(r.Context(), req)
	h.respond(w, r, http.StatusCreated, d, err)
}

func (h *Handler) handleListDates(w http.ResponseWriter, r *http.Request) {
	paging, ok := h.paging(w, r)
	if !ok {
		return
	}
	page, err := h.service.ListDates(r.Context(), paging)
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *Handler) handleGetDate(w http.ResponseWriter, r *http.Request) {
	dateID, ok := pathID(w, r, id.ParseContactDateID)
	if !ok {
		return
	}
	d, err := h.service.GetDate(r.Context(), dateID)
	h.respond(w, r, http.StatusOK, d, err)
}

func (h *Handler) handleReplaceDate(w http.ResponseWriter, r *http.Request) {
	dateID, ok := pathID(w, r, id.ParseContactDateID)
	if !ok {
		return
	}
	var req models.ContactDateRequest
	if !h.decode(w, r, &req) {
		return
	}
	d, err := h.service.ReplaceDate(r.Context(), dateID, req)
	h.respond(w, r, http.StatusOK, d, err)
}

func (h *Handler) handlePatchDate(w http.ResponseWriter, r *http.Request) {
	dateID, ok := pathID(w, r, id.ParseContactDateID)
	if !ok {
		return
	}
	var patch models.ContactDatePatch
	if !h.decode(w, r, &patch) {
		return
	}
	d, err := h.service.PatchDate(r.Context(), dateID, patch)
	h.respond(w, r, http.StatusOK, d, err)
}

func (h *Handler) handleDeleteDate(w http.ResponseWriter, r *http.Request) {
	dateID, ok := pathID(w, r, id.ParseContactDateID)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusNoContent, nil, h.service.DeleteDate(r.Context(), dateID))
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

func (h *Handler) paging(w http.ResponseWriter, r *http.Request) (service.Paging, bool) {
	page, err := httputil.QueryInt(r, "page")
	if err != nil {
		httputil.WriteError(w, err)
		return service.Paging{}, false
	}
	perPage, err := httputil.QueryInt(r, "itemsPerPage")
	if err != nil {
		httputil.WriteError(w, err)
		return service.Paging{}, false
	}
	return service.Paging{Page: page, PerPage: perPage}, true
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
