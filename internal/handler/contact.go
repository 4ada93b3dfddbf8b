package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/everkeep/everkeep/internal/auth"
	"github.com/everkeep/everkeep/internal/handler/dto"
	"github.com/everkeep/everkeep/internal/pagination"
	"github.com/everkeep/everkeep/internal/service"
)

// ContactHandler handles emergency contact endpoints.
type ContactHandler struct {
	svc    *service.ContactService
	logger *slog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(svc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, logger: logger}
}

// Create handles POST /api/v1/emergency-contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.CreateContactRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact, err := h.svc.Create(r.Context(), user.ID, service.ContactInput{
		FullName:     req.FullName,
		Phone:        req.Phone,
		Email:        req.Email,
		Relationship: req.Relationship,
		Priority:     req.Priority,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("contact_created", "user_id", user.ID, "contact_id", contact.ID)

	respond(w, http.StatusCreated, "contact created", contact)
}

// Get handles GET /api/v1/emergency-contacts/{id}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	contact, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, http.StatusOK, "contact retrieved", contact)
}

// List handles GET /api/v1/emergency-contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	p, ok := parsePagination(w, r)
	if !ok {
		return
	}

	contacts, meta, err := h.svc.List(r.Context(), user.ID, p)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondPage(w, http.StatusOK, "contacts retrieved", contacts, meta)
}

// Update handles PATCH /api/v1/emergency-contacts/{id}.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.UpdateContactRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact, err := h.svc.Update(r.Context(), user.ID, chi.URLParam(r, "id"), service.UpdateContactInput{
		FullName:     req.FullName,
		Phone:        req.Phone,
		Email:        req.Email,
		Relationship: req.Relationship,
		Priority:     req.Priority,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("contact_updated", "user_id", user.ID, "contact_id", contact.ID)

	respond(w, http.StatusOK, "contact updated", contact)
}

// Delete handles DELETE /api/v1/emergency-contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), user.ID, id); err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("contact_deleted", "user_id", user.ID, "contact_id", id)

	respond(w, http.StatusOK, "contact deleted", nil)
}

// handleError maps contact service errors to HTTP responses.
func (h *ContactHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrContactNotFound):
		respondError(w, http.StatusNotFound, "contact not found")
	case errors.Is(err, service.ErrMissingContactName),
		errors.Is(err, service.ErrInvalidContactPhone),
		errors.Is(err, service.ErrInvalidContactEmail),
		errors.Is(err, service.ErrNegativePriority),
		errors.Is(err, pagination.ErrInvalidSortField):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		respondError(w, http.StatusInternalServerError, "an internal error occurred")
	}
}
