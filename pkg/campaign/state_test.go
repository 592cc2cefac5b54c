package campaign

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeonmaster/pkg/chat"
)

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Len(t, s.ID, 8)
	assert.Equal(t, PhaseCharacterCreation, s.Phase)
	assert.NotNil(t, s.NPCs)
	assert.False(t, s.CreatedAt.IsZero())

	other := NewState()
	assert.NotEqual(t, s.ID, other.ID)
}

func TestAddExchange(t *testing.T) {
	s := NewState()
	s.AddExchange("hello", "well met")

	require.Len(t, s.ChatHistory, 2)
	assert.Equal(t, chat.ChatRoleUser, s.ChatHistory[0].Role)
	assert.Equal(t, "hello", s.ChatHistory[0].Content)
	assert.Equal(t, chat.ChatRoleAgent, s.ChatHistory[1].Role)
	assert.Equal(t, "well met", s.ChatHistory[1].Content)
}

func TestHistoryForPrompt_CapsLength(t *testing.T) {
	s := NewState()
	for i := 0; i < 20; i++ {
		s.AddExchange(fmt.Sprintf("msg %d", i), "reply")
	}

	var history []chat.ChatMessage
	require.NoError(t, json.Unmarshal(s.HistoryForPrompt(), &history))
	assert.Len(t, history, PromptHistoryLimit)
	assert.Equal(t, "msg 15", history[0].Content, "only the most recent messages are kept")
}

func TestAddCharacter(t *testing.T) {
	s := NewState()
	s.AddCharacter("Thorin")
	s.AddCharacter("Thorin")
	s.AddCharacter("Mira")

	assert.Equal(t, []string{"Thorin", "Mira"}, s.Characters)
	assert.True(t, s.HasCharacter("Thorin"))
	assert.False(t, s.HasCharacter("Bob"))
}

func TestStateJSONRoundTrip(t *testing.T) {
	s := NewState()
	s.Phase = PhaseCombat
	s.Location = "The Broken Flagon"
	s.NPCs["Barkeep"] = NPC{Name: "Barkeep", Disposition: "friendly"}
	s.AddExchange("order an ale", "the barkeep slides one over")

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded State
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s.ID, decoded.ID)
	assert.Equal(t, PhaseCombat, decoded.Phase)
	assert.Equal(t, "friendly", decoded.NPCs["Barkeep"].Disposition)
	assert.Len(t, decoded.ChatHistory, 2)
}
