package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeonmaster/pkg/chat"
)

type mockCoordinator struct {
	Response   *chat.ActionResponse
	Err        error
	GotID      string
	GotInput   string
	CallsTotal int
}

func (m *mockCoordinator) HandlePlayerAction(ctx context.Context, campaignID, rawInput string) (*chat.ActionResponse, error) {
	m.CallsTotal++
	m.GotID = campaignID
	m.GotInput = rawInput
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func actionMux(h *ActionHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/v1/campaigns", h)
	mux.Handle("/v1/campaigns/{id}/action", h)
	return mux
}

func TestActionHandler_Success(t *testing.T) {
	coordinator := &mockCoordinator{
		Response: &chat.ActionResponse{CampaignID: "abc123", Message: "You proceed.", Phase: "exploration"},
	}
	mux := actionMux(NewActionHandler(coordinator, time.Second, testLogger()))

	body, _ := json.Marshal(chat.ActionRequest{Input: "look around"})
	req := httptest.NewRequest(http.MethodPost, "/v1/campaigns/abc123/action", bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", coordinator.GotID)
	assert.Equal(t, "look around", coordinator.GotInput)

	var resp chat.ActionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "You proceed.", resp.Message)
}

func TestActionHandler_NewCampaignHasNoPathID(t *testing.T) {
	coordinator := &mockCoordinator{
		Response: &chat.ActionResponse{CampaignID: "fresh1", Message: "Campaign created."},
	}
	mux := actionMux(NewActionHandler(coordinator, time.Second, testLogger()))

	body, _ := json.Marshal(chat.ActionRequest{Input: "new campaign"})
	req := httptest.NewRequest(http.MethodPost, "/v1/campaigns", bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, coordinator.GotID)
}

func TestActionHandler_MethodNotAllowed(t *testing.T) {
	mux := actionMux(NewActionHandler(&mockCoordinator{}, time.Second, testLogger()))

	req := httptest.NewRequest(http.MethodGet, "/v1/campaigns/abc/action", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestActionHandler_InvalidBody(t *testing.T) {
	coordinator := &mockCoordinator{}
	mux := actionMux(NewActionHandler(coordinator, time.Second, testLogger()))

	req := httptest.NewRequest(http.MethodPost, "/v1/campaigns/abc/action", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, coordinator.CallsTotal)
}

func TestActionHandler_EmptyInput(t *testing.T) {
	coordinator := &mockCoordinator{}
	mux := actionMux(NewActionHandler(coordinator, time.Second, testLogger()))

	body, _ := json.Marshal(chat.ActionRequest{Input: ""})
	req := httptest.NewRequest(http.MethodPost, "/v1/campaigns/abc/action", bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, coordinator.CallsTotal)
}

func TestActionHandler_CoordinatorError(t *testing.T) {
	coordinator := &mockCoordinator{Err: errors.New("turn failed")}
	mux := actionMux(NewActionHandler(coordinator, time.Second, testLogger()))

	body, _ := json.Marshal(chat.ActionRequest{Input: "attack"})
	req := httptest.NewRequest(http.MethodPost, "/v1/campaigns/abc/action", bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotContains(t, resp.Error, "turn failed", "internal errors must not leak to the player")
}
