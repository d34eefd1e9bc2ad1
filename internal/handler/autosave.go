package handler

import (
	"context"
	"net/http"

	"github.com/osse101/PixelFarm_Go/internal/autosave"
	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// AutosaveHandler applies queued client actions
type AutosaveHandler struct {
	autosaveSvc autosave.Service
}

// NewAutosaveHandler creates a new AutosaveHandler
func NewAutosaveHandler(autosaveSvc autosave.Service) *AutosaveHandler {
	return &AutosaveHandler{autosaveSvc: autosaveSvc}
}

// HandleAutosave applies a batch of queued actions and returns the resulting state
// @Summary Autosave queued actions
// @Description Applies actions in timestamp order. Refused actions are reported in conflictResolutions; already processed action ids are skipped.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body AutosaveRequest true "Queued actions"
// @Success 200 {object} domain.AutosaveResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /functions/v1/autosave [post]
func (h *AutosaveHandler) HandleAutosave(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpAutosave,
		func(ctx context.Context, req AutosaveRequest) (*domain.AutosaveResponse, error) {
			return h.autosaveSvc.Autosave(ctx, req.UserID, req.Actions)
		}, nil)
}
