package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/everkeep/everkeep/internal/auth"
	"github.com/everkeep/everkeep/internal/handler/dto"
	"github.com/everkeep/everkeep/internal/service"
)

// UserHandler handles account and profile endpoints.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// Me handles GET /api/v1/users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	u, profile, err := h.svc.Get(r.Context(), user.ID, user.ID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, http.StatusOK, "user retrieved", dto.UserResponse{User: u, Profile: profile})
}

// Get handles GET /api/v1/users/{id}. Accounts are private; asking for
// anyone else's returns 403.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	u, profile, err := h.svc.Get(r.Context(), user.ID, id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, http.StatusOK, "user retrieved", dto.UserResponse{User: u, Profile: profile})
}

// UpdateProfile handles PATCH /api/v1/users/me.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.svc.UpdateProfile(r.Context(), user.ID, service.UpdateProfileInput{
		FullName:    req.FullName,
		Bio:         req.Bio,
		AvatarMedia: req.AvatarMedia,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("profile_updated", "user_id", user.ID)

	respond(w, http.StatusOK, "profile updated", profile)
}

// Delete handles DELETE /api/v1/users/me. Removes the account and all
// dependent data.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), user.ID); err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("user_deleted", "user_id", user.ID)

	respond(w, http.StatusOK, "user deleted", nil)
}

// handleError maps user service errors to HTTP responses.
func (h *UserHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, service.ErrMissingFullName):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		respondError(w, http.StatusInternalServerError, "an internal error occurred")
	}
}
