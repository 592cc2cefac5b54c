package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"dungeonmaster/pkg/chat"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// Coordinator is the game core behind the action endpoint.
type Coordinator interface {
	HandlePlayerAction(ctx context.Context, campaignID, rawInput string) (*chat.ActionResponse, error)
}

// ActionHandler is the sole gameplay entry point.
// Routes:
// POST /v1/campaigns               - Start a new campaign
// POST /v1/campaigns/{id}/action   - Submit a player action
type ActionHandler struct {
	coordinator Coordinator
	logger      *slog.Logger
	timeout     time.Duration
}

func NewActionHandler(coordinator Coordinator, timeout time.Duration, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{
		coordinator: coordinator,
		logger:      logger,
		timeout:     timeout,
	}
}

func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for action endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)
		writeJSON(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed. Only POST is supported.",
		})
		return
	}

	var request chat.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body. Expected JSON with 'input' field.",
		})
		return
	}

	// The path ID wins over any ID in the body. Empty means a new
	// campaign bootstrap.
	if id := r.PathValue("id"); id != "" {
		request.CampaignID = id
	}

	if err := request.Validate(); err != nil {
		h.logger.Warn("Invalid action request", "error", err)
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.logger.Info("Action endpoint accessed",
		"method", r.Method,
		"path", r.URL.Path,
		"campaign_id", request.CampaignID)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	response, err := h.coordinator.HandlePlayerAction(ctx, request.CampaignID, request.Input)
	if err != nil {
		h.logger.Error("Error handling player action",
			"error", err,
			"campaign_id", request.CampaignID)
		writeJSON(w, h.logger, http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to resolve your action. Please try again.",
		})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Error encoding response", "error", err)
	}
}
