package director

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dungeonmaster/pkg/campaign"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		phase campaign.Phase
		want  Intent
	}{
		{"new campaign anywhere", "let's start a new campaign", campaign.PhaseExploration, IntentNewCampaign},
		{"load campaign", "load campaign please", campaign.PhaseExploration, IntentLoadCampaign},
		{"character creation default", "a half-elf rogue", campaign.PhaseCharacterCreation, IntentCreateCharacter},
		{"character creation done", "I'm ready to play", campaign.PhaseCharacterCreation, IntentFinishCharacter},
		{"exploration default", "I examine the altar", campaign.PhaseExploration, IntentExplore},
		{"exploration attack starts combat", "I attack the guard", campaign.PhaseExploration, IntentStartCombat},
		{"exploration talk", "talk to the blacksmith", campaign.PhaseExploration, IntentTalk},
		{"combat default is attack", "I bring my hammer down", campaign.PhaseCombat, IntentAttack},
		{"combat advance", "end my turn", campaign.PhaseCombat, IntentAdvanceTurn},
		{"combat retreat ends it", "we retreat to the hills", campaign.PhaseCombat, IntentEndCombat},
		{"dialogue default", "what do you know about the mine?", campaign.PhaseDialogue, IntentTalk},
		{"dialogue leave", "I say goodbye and leave", campaign.PhaseDialogue, IntentEndDialogue},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyIntent(tc.input, tc.phase))
		})
	}
}
