package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/everkeep/everkeep/internal/auth"
	"github.com/everkeep/everkeep/internal/handler/dto"
	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/pagination"
	"github.com/everkeep/everkeep/internal/service"
)

// ChatHandler handles chat session and message endpoints.
type ChatHandler struct {
	svc    *service.ChatService
	logger *slog.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(svc *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, logger: logger}
}

// CreateSession handles POST /api/v1/chat/sessions.
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.CreateSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.svc.CreateSession(r.Context(), user.ID, req.Title)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("chat_session_created", "user_id", user.ID, "session_id", session.ID)

	respond(w, http.StatusCreated, "session created", session)
}

// GetSession handles GET /api/v1/chat/sessions/{id}.
func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	session, err := h.svc.GetSession(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, http.StatusOK, "session retrieved", session)
}

// ListSessions handles GET /api/v1/chat/sessions.
func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	p, ok := parsePagination(w, r)
	if !ok {
		return
	}

	sessions, meta, err := h.svc.ListSessions(r.Context(), user.ID, p)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondPage(w, http.StatusOK, "sessions retrieved", sessions, meta)
}

// DeleteSession handles DELETE /api/v1/chat/sessions/{id}. Messages go
// with the session.
func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.DeleteSession(r.Context(), user.ID, id); err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("chat_session_deleted", "user_id", user.ID, "session_id", id)

	respond(w, http.StatusOK, "session deleted", nil)
}

// PostMessage handles POST /api/v1/chat/sessions/{id}/messages.
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.PostMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.svc.PostMessage(r.Context(), user.ID, chi.URLParam(r, "id"),
		model.ChatRole(req.Role), req.Content)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, http.StatusCreated, "message posted", msg)
}

// ListMessages handles GET /api/v1/chat/sessions/{id}/messages.
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	p, ok := parsePagination(w, r)
	if !ok {
		return
	}

	messages, meta, err := h.svc.ListMessages(r.Context(), user.ID, chi.URLParam(r, "id"), p)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondPage(w, http.StatusOK, "messages retrieved", messages, meta)
}

// handleError maps chat service errors to HTTP responses.
func (h *ChatHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "chat session not found")
	case errors.Is(err, service.ErrMissingContent),
		errors.Is(err, service.ErrInvalidChatRole),
		errors.Is(err, pagination.ErrInvalidSortField):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		respondError(w, http.StatusInternalServerError, "an internal error occurred")
	}
}
