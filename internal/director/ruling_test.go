package director

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeonmaster/pkg/actor"
	"dungeonmaster/pkg/combat"
)

func TestParseRuling(t *testing.T) {
	reply := "Thorin swings. 15 + 5 = 20 beats AC 16.\n" +
		`{"target": "Goblin", "attack_roll": 15, "attack_bonus": 5, "hit": true, "damage": 6, "damage_type": "slashing"}`

	rul, ok := parseRuling(reply)
	require.True(t, ok)
	assert.Equal(t, "Goblin", rul.Target)
	assert.Equal(t, 15, rul.AttackRoll)
	assert.Equal(t, 5, rul.AttackBonus)
	assert.True(t, rul.Hit)
	assert.Equal(t, 6, rul.Damage)
	assert.Equal(t, "slashing", rul.DamageType)
}

func TestParseRuling_NarrativeOnly(t *testing.T) {
	_, ok := parseRuling("The blow glances off the goblin's shield.")
	assert.False(t, ok)
}

func TestParseRuling_MalformedJSON(t *testing.T) {
	_, ok := parseRuling(`ruling: {"target": "Goblin", "hit":`)
	assert.False(t, ok)
}

func TestParseRuling_MissingTarget(t *testing.T) {
	_, ok := parseRuling(`{"attack_roll": 12, "hit": false}`)
	assert.False(t, ok)
}

func TestTargetNumbers(t *testing.T) {
	view := &combat.View{
		Characters: map[string]actor.CharacterSheet{
			"Thorin": {Name: "Thorin", HP: 20, MaxHP: 28, AC: 16},
		},
		Monsters: map[string]combat.Monster{
			"Goblin": {Name: "Goblin", CurrentHP: 7, MaxHP: 7, AC: 15},
		},
	}

	hp, ac, ok := targetNumbers(view, "Thorin")
	require.True(t, ok)
	assert.Equal(t, 20, hp)
	assert.Equal(t, 16, ac)

	hp, ac, ok = targetNumbers(view, "Goblin")
	require.True(t, ok)
	assert.Equal(t, 7, hp)
	assert.Equal(t, 15, ac)

	_, _, ok = targetNumbers(view, "Nobody")
	assert.False(t, ok)
}
