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

// StoryHandler handles story endpoints.
type StoryHandler struct {
	svc    *service.StoryService
	logger *slog.Logger
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(svc *service.StoryService, logger *slog.Logger) *StoryHandler {
	return &StoryHandler{svc: svc, logger: logger}
}

// Create handles POST /api/v1/stories.
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.CreateStoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	story, err := h.svc.Create(r.Context(), user.ID, service.StoryInput{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("story_created", "user_id", user.ID, "story_id", story.ID)

	respond(w, http.StatusCreated, "story created", story)
}

// Get handles GET /api/v1/stories/{id}.
func (h *StoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	story, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, http.StatusOK, "story retrieved", story)
}

// List handles GET /api/v1/stories.
func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	p, ok := parsePagination(w, r)
	if !ok {
		return
	}

	stories, meta, err := h.svc.List(r.Context(), user.ID, p)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondPage(w, http.StatusOK, "stories retrieved", stories, meta)
}

// Update handles PATCH /api/v1/stories/{id}.
func (h *StoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.UpdateStoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	story, err := h.svc.Update(r.Context(), user.ID, chi.URLParam(r, "id"), service.UpdateStoryInput{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("story_updated", "user_id", user.ID, "story_id", story.ID)

	respond(w, http.StatusOK, "story updated", story)
}

// Delete handles DELETE /api/v1/stories/{id}.
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), user.ID, id); err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("story_deleted", "user_id", user.ID, "story_id", id)

	respond(w, http.StatusOK, "story deleted", nil)
}

// handleError maps story service errors to HTTP responses.
func (h *StoryHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrStoryNotFound):
		respondError(w, http.StatusNotFound, "story not found")
	case errors.Is(err, service.ErrMissingTitle),
		errors.Is(err, service.ErrMissingBody),
		errors.Is(err, service.ErrTooManyTags),
		errors.Is(err, pagination.ErrInvalidSortField):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		respondError(w, http.StatusInternalServerError, "an internal error occurred")
	}
}
