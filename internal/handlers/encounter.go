package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"dungeonmaster/pkg/combat"
)

// EncounterHandler exposes the live combat state of a campaign.
// Routes:
// GET /v1/campaigns/{id}/encounter
type EncounterHandler struct {
	combat *combat.Manager
	logger *slog.Logger
}

func NewEncounterHandler(combat *combat.Manager, logger *slog.Logger) *EncounterHandler {
	return &EncounterHandler{
		combat: combat,
		logger: logger,
	}
}

func (h *EncounterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for encounter endpoint",
			"method", r.Method,
			"path", r.URL.Path)
		writeJSON(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed. Only GET is supported.",
		})
		return
	}

	campaignID := r.PathValue("id")
	if campaignID == "" {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Campaign ID is required.",
		})
		return
	}

	view, err := h.combat.GetState(campaignID)
	if err != nil {
		if errors.Is(err, combat.ErrNotActive) {
			writeJSON(w, h.logger, http.StatusNotFound, ErrorResponse{
				Error: "No active encounter for this campaign.",
			})
			return
		}
		h.logger.Error("Error fetching encounter state",
			"error", err,
			"campaign_id", campaignID)
		writeJSON(w, h.logger, http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to fetch encounter state.",
		})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, view)
}
