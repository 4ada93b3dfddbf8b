package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/everkeep/everkeep/internal/handler/dto"
	"github.com/everkeep/everkeep/internal/service"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	respond(w, http.StatusCreated, "user registered", user)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	respond(w, http.StatusOK, "login successful", dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        user,
	})
}

// handleError maps user service errors to HTTP responses.
func (h *AuthHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrMissingFullName):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailExists):
		respondError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrPhoneExists):
		respondError(w, http.StatusConflict, "phone already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		h.logger.Error("internal_error", "error", err)
		respondError(w, http.StatusInternalServerError, "an internal error occurred")
	}
}
