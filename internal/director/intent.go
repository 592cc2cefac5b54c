package director

import (
	"strings"

	"dungeonmaster/pkg/campaign"
)

// Intent is the single route chosen for one player turn.
type Intent string

const (
	IntentNewCampaign     Intent = "new_campaign"
	IntentLoadCampaign    Intent = "load_campaign"
	IntentStartCombat     Intent = "start_combat"
	IntentAttack          Intent = "attack"
	IntentAdvanceTurn     Intent = "advance_turn"
	IntentEndCombat       Intent = "end_combat"
	IntentTalk            Intent = "talk"
	IntentEndDialogue     Intent = "end_dialogue"
	IntentCreateCharacter Intent = "create_character"
	IntentFinishCharacter Intent = "finish_character"
	IntentExplore         Intent = "explore"
)

var (
	newCampaignWords  = []string{"new campaign", "start a campaign", "new game", "new adventure"}
	loadCampaignWords = []string{"load campaign", "resume campaign", "continue campaign", "load game"}
	startCombatWords  = []string{"attack", "fight", "charge", "ambush", "draw my sword", "roll initiative"}
	advanceWords      = []string{"next turn", "end my turn", "end turn", "pass", "done with my turn"}
	endCombatWords    = []string{"end combat", "flee", "retreat", "surrender", "stand down"}
	talkWords         = []string{"talk to", "speak to", "speak with", "ask", "say ", "tell ", "greet"}
	endDialogueWords  = []string{"leave", "walk away", "end conversation", "goodbye", "farewell"}
	finishCharWords   = []string{"finish my character", "character is done", "ready to play", "begin the adventure"}
)

// classifyIntent scans the raw input for keywords, gated by the current
// phase. Exactly one intent is returned per turn.
func classifyIntent(input string, phase campaign.Phase) Intent {
	lower := strings.ToLower(input)

	if containsAny(lower, newCampaignWords) {
		return IntentNewCampaign
	}
	if containsAny(lower, loadCampaignWords) {
		return IntentLoadCampaign
	}

	switch phase {
	case campaign.PhaseCharacterCreation:
		if containsAny(lower, finishCharWords) {
			return IntentFinishCharacter
		}
		return IntentCreateCharacter

	case campaign.PhaseCombat:
		if containsAny(lower, endCombatWords) {
			return IntentEndCombat
		}
		if containsAny(lower, advanceWords) {
			return IntentAdvanceTurn
		}
		// Anything else in combat is an action to resolve.
		return IntentAttack

	case campaign.PhaseDialogue:
		if containsAny(lower, endDialogueWords) {
			return IntentEndDialogue
		}
		return IntentTalk

	default: // exploration
		if containsAny(lower, startCombatWords) {
			return IntentStartCombat
		}
		if containsAny(lower, talkWords) {
			return IntentTalk
		}
		return IntentExplore
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
