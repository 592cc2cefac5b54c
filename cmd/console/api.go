package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"dungeonmaster/pkg/chat"
	"dungeonmaster/pkg/combat"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// sendAction submits one player action. An empty campaignID starts a
// new campaign.
func sendAction(client *http.Client, baseURL, campaignID, input string) (*chat.ActionResponse, error) {
	req := chat.ActionRequest{
		CampaignID: campaignID,
		Input:      input,
	}

	url := baseURL + "/v1/campaigns"
	if campaignID != "" {
		url = fmt.Sprintf("%s/v1/campaigns/%s/action", baseURL, campaignID)
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("action failed: %s", errorResp.Error)
	}

	var actionResp chat.ActionResponse
	if err := json.Unmarshal(body, &actionResp); err != nil {
		return nil, fmt.Errorf("failed to parse action response: %w", err)
	}
	return &actionResp, nil
}

// getEncounter fetches the live combat state, or nil when no encounter
// is active.
func getEncounter(client *http.Client, baseURL, campaignID string) (*combat.View, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/campaigns/%s/encounter", baseURL, campaignID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get encounter: %s", errorResp.Error)
	}

	var view combat.View
	if err := json.Unmarshal(body, &view); err != nil {
		return nil, fmt.Errorf("failed to parse encounter response: %w", err)
	}
	return &view, nil
}
