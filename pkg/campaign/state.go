package campaign

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"dungeonmaster/pkg/chat"
)

// Phase is the current mode of play for a campaign. It gates which
// specialist may handle a player action.
type Phase string

const (
	PhaseCharacterCreation Phase = "character_creation"
	PhaseExploration       Phase = "exploration"
	PhaseCombat            Phase = "combat"
	PhaseDialogue          Phase = "dialogue"
)

// NPC represents a non-player character known to the campaign
type NPC struct {
	Name        string `json:"name"`
	Disposition string `json:"disposition,omitempty"` // e.g. "hostile", "neutral", "friendly"
	Profile     string `json:"profile,omitempty"`     // short description or backstory
}

// State is the durable state of a campaign.
type State struct {
	ID          string             `json:"id"`
	Phase       Phase              `json:"phase"`
	Context     string             `json:"context,omitempty"` // freeform summary of events so far
	Location    string             `json:"location,omitempty"`
	LastScene   string             `json:"last_scene,omitempty"`
	Characters  []string           `json:"characters,omitempty"` // names of persisted character sheets
	NPCs        map[string]NPC     `json:"npcs,omitempty"`
	ChatHistory []chat.ChatMessage `json:"chat_history,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// NewState creates a campaign with a fresh short ID, starting in
// character creation.
func NewState() *State {
	return &State{
		ID:          uuid.New().String()[:8],
		Phase:       PhaseCharacterCreation,
		NPCs:        make(map[string]NPC),
		ChatHistory: make([]chat.ChatMessage, 0),
		CreatedAt:   time.Now(),
	}
}

// PromptHistoryLimit caps how many chat messages are included in
// specialist prompts.
const PromptHistoryLimit = 10

// HistoryForPrompt returns the most recent chat history as JSON for
// inclusion in a specialist prompt.
func (s *State) HistoryForPrompt() []byte {
	history := s.ChatHistory
	if len(history) > PromptHistoryLimit {
		history = history[len(history)-PromptHistoryLimit:]
	}
	data, _ := json.Marshal(history)
	return data
}

// AddExchange appends a player message and the resulting response to
// the chat history.
func (s *State) AddExchange(playerInput, response string) {
	s.ChatHistory = append(s.ChatHistory,
		chat.ChatMessage{Role: chat.ChatRoleUser, Content: playerInput},
		chat.ChatMessage{Role: chat.ChatRoleAgent, Content: response},
	)
}

// HasCharacter reports whether a character name is registered with
// the campaign.
func (s *State) HasCharacter(name string) bool {
	for _, c := range s.Characters {
		if c == name {
			return true
		}
	}
	return false
}

// AddCharacter registers a character name, ignoring duplicates.
func (s *State) AddCharacter(name string) {
	if !s.HasCharacter(name) {
		s.Characters = append(s.Characters, name)
	}
}
