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

// CloneVideoHandler handles AI clone video endpoints.
type CloneVideoHandler struct {
	svc    *service.AICloneService
	logger *slog.Logger
}

// NewCloneVideoHandler creates a new CloneVideoHandler.
func NewCloneVideoHandler(svc *service.AICloneService, logger *slog.Logger) *CloneVideoHandler {
	return &CloneVideoHandler{svc: svc, logger: logger}
}

// Create handles POST /api/v1/ai-clone/videos. The request returns as
// soon as the job is dispatched; the record starts out pending.
func (h *CloneVideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.CreateCloneVideoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	video, err := h.svc.Create(r.Context(), user.ID, req.SourceMediaID, req.Script)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("clone_video_requested",
		"user_id", user.ID,
		"video_id", video.ID,
		"source_media_id", video.SourceMediaID,
	)

	respond(w, http.StatusAccepted, "clone video generation started", video)
}

// Get handles GET /api/v1/ai-clone/videos/{id}. Polls the generation
// service for fresh status when the record is still in flight.
func (h *CloneVideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	video, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, http.StatusOK, "clone video retrieved", video)
}

// List handles GET /api/v1/ai-clone/videos.
func (h *CloneVideoHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	p, ok := parsePagination(w, r)
	if !ok {
		return
	}

	videos, meta, err := h.svc.List(r.Context(), user.ID, p)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondPage(w, http.StatusOK, "clone videos retrieved", videos, meta)
}

// Delete handles DELETE /api/v1/ai-clone/videos/{id}.
func (h *CloneVideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), user.ID, id); err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("clone_video_deleted", "user_id", user.ID, "video_id", id)

	respond(w, http.StatusOK, "clone video deleted", nil)
}

// handleError maps clone video service errors to HTTP responses.
func (h *CloneVideoHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCloneVideoNotFound):
		respondError(w, http.StatusNotFound, "clone video not found")
	case errors.Is(err, service.ErrMediaNotFound):
		respondError(w, http.StatusNotFound, "source media not found")
	case errors.Is(err, service.ErrMissingScript),
		errors.Is(err, service.ErrSourceNotImage),
		errors.Is(err, pagination.ErrInvalidSortField):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoFaceDetected):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrGenerationFailed):
		respondError(w, http.StatusBadGateway, "generation service is unavailable")
	default:
		h.logger.Error("internal_error", "error", err)
		respondError(w, http.StatusInternalServerError, "an internal error occurred")
	}
}
