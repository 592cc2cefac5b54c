package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModifier(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{1, -5},
		{8, -1},
		{9, -1},
		{10, 0},
		{11, 0},
		{12, 1},
		{15, 2},
		{20, 5},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Modifier(tc.score), "score %d", tc.score)
	}
}

func TestHitDie(t *testing.T) {
	assert.Equal(t, 12, HitDie("barbarian"))
	assert.Equal(t, 10, HitDie("Fighter"))
	assert.Equal(t, 6, HitDie("wizard"))
	assert.Equal(t, 8, HitDie("artificer"), "unknown classes use d8")
}

func TestDeriveMaxHP(t *testing.T) {
	fighter := &CharacterSheet{
		Class: "fighter",
		Level: 1,
		Stats: Stats5e{Constitution: 15},
	}
	assert.Equal(t, 12, fighter.DeriveMaxHP(), "level 1: die max + CON mod")

	fighter.Level = 3
	assert.Equal(t, 28, fighter.DeriveMaxHP(), "each level past 1 adds die average rounded up + CON mod")
}

func TestDeriveMaxHP_FloorOfOne(t *testing.T) {
	frail := &CharacterSheet{
		Class: "wizard",
		Level: 1,
		Stats: Stats5e{Constitution: 1},
	}
	assert.Equal(t, 1, frail.DeriveMaxHP())
}

func TestEnsureHP(t *testing.T) {
	sheet := &CharacterSheet{Class: "rogue", Level: 2, Stats: Stats5e{Constitution: 12}}
	sheet.EnsureHP()
	assert.Equal(t, sheet.MaxHP, sheet.HP)
	assert.Equal(t, 15, sheet.MaxHP) // 8+1 at level 1, +5+1 at level 2

	// Persisted values are never overwritten.
	persisted := &CharacterSheet{HP: 4, MaxHP: 20}
	persisted.EnsureHP()
	assert.Equal(t, 4, persisted.HP)
	assert.Equal(t, 20, persisted.MaxHP)
}

func TestEnsureHP_DownedCharacterRecoversToMax(t *testing.T) {
	// Zero HP is indistinguishable from unset HP after a JSON round
	// trip, so a downed sheet comes back at full health.
	downed := &CharacterSheet{HP: 0, MaxHP: 15}
	downed.EnsureHP()
	assert.Equal(t, 15, downed.HP)
	assert.Equal(t, 15, downed.MaxHP)
}

func TestBuildActor(t *testing.T) {
	sheet := &CharacterSheet{
		Name:  "Mira",
		Class: "rogue",
		Level: 2,
		AC:    14,
		Stats: Stats5e{Strength: 10, Dexterity: 16, Constitution: 12, Intelligence: 13, Wisdom: 11, Charisma: 14},
		Attributes: map[string]int{
			"stealth": 5,
		},
	}

	a, err := sheet.BuildActor()
	require.NoError(t, err)
	assert.Equal(t, sheet.MaxHP, a.MaxHP())
	assert.Equal(t, 14, a.AC())

	dex, ok := a.Attribute("dexterity")
	require.True(t, ok)
	assert.Equal(t, 16, dex)

	stealth, ok := a.Attribute("stealth")
	require.True(t, ok)
	assert.Equal(t, 5, stealth)
}

func TestBuildActor_WoundedSheetKeepsCurrentHP(t *testing.T) {
	sheet := &CharacterSheet{
		Name:  "Mira",
		Class: "rogue",
		Level: 2,
		HP:    3,
		MaxHP: 15,
		AC:    14,
	}

	a, err := sheet.BuildActor()
	require.NoError(t, err)
	assert.Equal(t, 3, a.HP())
	assert.Equal(t, 15, a.MaxHP())
}
