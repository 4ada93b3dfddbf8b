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

// SudokuHandler handles sudoku game endpoints.
type SudokuHandler struct {
	svc    *service.SudokuService
	logger *slog.Logger
}

// NewSudokuHandler creates a new SudokuHandler.
func NewSudokuHandler(svc *service.SudokuService, logger *slog.Logger) *SudokuHandler {
	return &SudokuHandler{svc: svc, logger: logger}
}

// Create handles POST /api/v1/sudoku.
func (h *SudokuHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.NewGameRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := h.svc.NewGame(r.Context(), user.ID, model.SudokuDifficulty(req.Difficulty))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("sudoku_game_created",
		"user_id", user.ID,
		"game_id", game.ID,
		"difficulty", string(game.Difficulty),
	)

	respond(w, http.StatusCreated, "game created", game)
}

// Get handles GET /api/v1/sudoku/{id}.
func (h *SudokuHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	game, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, http.StatusOK, "game retrieved", game)
}

// List handles GET /api/v1/sudoku.
func (h *SudokuHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	p, ok := parsePagination(w, r)
	if !ok {
		return
	}

	games, meta, err := h.svc.List(r.Context(), user.ID, p)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondPage(w, http.StatusOK, "games retrieved", games, meta)
}

// UpdateBoard handles PATCH /api/v1/sudoku/{id}.
func (h *SudokuHandler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.UpdateBoardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := h.svc.UpdateBoard(r.Context(), user.ID, chi.URLParam(r, "id"), req.Board)
	if err != nil {
		h.handleError(w, err)
		return
	}

	if game.Completed {
		h.logger.Info("sudoku_game_completed", "user_id", user.ID, "game_id", game.ID)
	}

	respond(w, http.StatusOK, "board updated", game)
}

// Delete handles DELETE /api/v1/sudoku/{id}.
func (h *SudokuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), user.ID, id); err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, http.StatusOK, "game deleted", nil)
}

// handleError maps sudoku service errors to HTTP responses.
func (h *SudokuHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		respondError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, service.ErrGameCompleted):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidDifficulty),
		errors.Is(err, service.ErrInvalidBoard),
		errors.Is(err, service.ErrClueOverwritten),
		errors.Is(err, pagination.ErrInvalidSortField):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		respondError(w, http.StatusInternalServerError, "an internal error occurred")
	}
}
