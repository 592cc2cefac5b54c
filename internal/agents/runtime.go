package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Payload is the structured request handed to a specialist.
type Payload struct {
	Action      string          `json:"action"`
	PlayerInput string          `json:"player_input"`
	Target      string          `json:"target,omitempty"`
	Context     string          `json:"context,omitempty"`    // campaign summary so far
	GameState   json.RawMessage `json:"game_state,omitempty"` // serialized state relevant to the action
	CampaignID  string          `json:"campaign_id"`
}

// Format renders the payload into the user message a specialist
// receives.
func (p *Payload) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CAMPAIGN: %s\nACTION: %s\n", p.CampaignID, p.Action)
	if p.Target != "" {
		fmt.Fprintf(&sb, "TARGET: %s\n", p.Target)
	}
	if p.Context != "" {
		fmt.Fprintf(&sb, "CONTEXT: %s\n", p.Context)
	}
	if len(p.GameState) > 0 {
		fmt.Fprintf(&sb, "GAME STATE: %s\n", p.GameState)
	}
	fmt.Fprintf(&sb, "PLAYER: %s", p.PlayerInput)
	return sb.String()
}

// TurnEvent is one event emitted while a specialist processes a turn.
// A run terminates with an event where Final is true, an event
// carrying Err, or channel close (no final response).
type TurnEvent struct {
	Content string
	Final   bool
	Err     error
}

// Runtime is the specialist execution collaborator: it owns
// conversation contexts and produces turn events.
type Runtime interface {
	// CreateSession allocates an isolated conversation context.
	CreateSession(ctx context.Context, sessionID string, specialist *Specialist) error

	// DeleteSession releases the context. Must be safe to call after
	// a failed or abandoned run.
	DeleteSession(ctx context.Context, sessionID string) error

	// RunTurn feeds the payload to the session's specialist and
	// returns the event stream for this turn.
	RunTurn(ctx context.Context, sessionID string, payload *Payload) (<-chan TurnEvent, error)
}
