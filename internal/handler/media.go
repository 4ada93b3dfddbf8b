package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/everkeep/everkeep/internal/auth"
	"github.com/everkeep/everkeep/internal/pagination"
	"github.com/everkeep/everkeep/internal/service"
)

// MediaHandler handles media upload, retrieval, and streaming.
type MediaHandler struct {
	svc    *service.MediaService
	logger *slog.Logger
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(svc *service.MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{svc: svc, logger: logger}
}

// Upload handles POST /api/v1/media. Expects a multipart form with a
// single "file" part; the part's Content-Type decides the media kind.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "multipart form with a file part is required")
		return
	}
	defer file.Close()

	media, err := h.svc.Upload(r.Context(), user.ID, service.UploadInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("media_uploaded",
		"user_id", user.ID,
		"media_id", media.ID,
		"type", string(media.Type),
		"size_bytes", media.SizeBytes,
	)

	respond(w, http.StatusCreated, "media uploaded", media)
}

// Get handles GET /api/v1/media/{id}. Returns metadata only.
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	media, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, http.StatusOK, "media retrieved", media)
}

// Download handles GET /api/v1/media/{id}/content. Streams the stored
// bytes with the original content type.
func (h *MediaHandler) Download(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	media, body, err := h.svc.Open(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", media.ContentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", media.SizeBytes))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", media.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}

// List handles GET /api/v1/media.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	p, ok := parsePagination(w, r)
	if !ok {
		return
	}

	items, meta, err := h.svc.List(r.Context(), user.ID, p)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondPage(w, http.StatusOK, "media retrieved", items, meta)
}

// Delete handles DELETE /api/v1/media/{id}.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), user.ID, id); err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("media_deleted", "user_id", user.ID, "media_id", id)

	respond(w, http.StatusOK, "media deleted", nil)
}

// handleError maps media service errors to HTTP responses.
func (h *MediaHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMediaNotFound):
		respondError(w, http.StatusNotFound, "media not found")
	case errors.Is(err, service.ErrUnsupportedContentType):
		respondError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		respondError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, pagination.ErrInvalidSortField):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		respondError(w, http.StatusInternalServerError, "an internal error occurred")
	}
}
