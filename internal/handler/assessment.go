package handler

import (
	"log/slog"
	"net/http"

	"github.com/everkeep/everkeep/internal/repository"
)

// AssessmentHandler serves the fixed assessment type lookup.
type AssessmentHandler struct {
	repo   *repository.Repository
	logger *slog.Logger
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(repo *repository.Repository, logger *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{repo: repo, logger: logger}
}

// List handles GET /api/v1/assessment-types.
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.repo.ListAssessmentTypes(r.Context())
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		respondError(w, http.StatusInternalServerError, "an internal error occurred")
		return
	}

	respond(w, http.StatusOK, "assessment types retrieved", types)
}
