package chat

import "fmt"

const (
	ChatRoleUser   = "user"
	ChatRoleAgent  = "assistant"
	ChatRoleSystem = "system"
)

// ChatMessage represents a single message in a specialist conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ActionRequest is a player action submitted to the coordinator.
type ActionRequest struct {
	CampaignID string `json:"campaign_id"`
	Input      string `json:"input"`
}

// ActionResponse is the coordinator's reply for one player turn.
type ActionResponse struct {
	CampaignID string `json:"campaign_id,omitempty"`
	Message    string `json:"message,omitempty"`
	Phase      string `json:"phase,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (ar *ActionRequest) Validate() error {
	if ar.Input == "" {
		return fmt.Errorf("input cannot be empty")
	}
	return nil
}
