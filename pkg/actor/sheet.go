package actor

import (
	"fmt"
	"maps"
	"strings"

	"github.com/jwebster45206/d20"
)

// Stats5e represents the six core D&D 5e ability scores
type Stats5e struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// ToAttributes converts Stats5e to a map for d20.Actor compatibility
func (s *Stats5e) ToAttributes() map[string]int {
	return map[string]int{
		"strength":     s.Strength,
		"dexterity":    s.Dexterity,
		"constitution": s.Constitution,
		"intelligence": s.Intelligence,
		"wisdom":       s.Wisdom,
		"charisma":     s.Charisma,
	}
}

// Modifier converts an ability score to its modifier, e.g. 15 -> +2.
func Modifier(score int) int {
	// Floor division, also for negative values
	diff := score - 10
	if diff < 0 {
		return -((-diff + 1) / 2)
	}
	return diff / 2
}

// CharacterSheet is the serializable record of a player character.
type CharacterSheet struct {
	Name        string         `json:"name"`
	Class       string         `json:"class,omitempty"`
	Level       int            `json:"level,omitempty"`
	Race        string         `json:"race,omitempty"`
	Background  string         `json:"background,omitempty"`
	Description string         `json:"description,omitempty"`
	Stats       Stats5e        `json:"stats,omitempty"`
	HP          int            `json:"hit_points,omitempty"`
	MaxHP       int            `json:"max_hit_points,omitempty"`
	AC          int            `json:"armor_class,omitempty"`
	Attributes  map[string]int `json:"attributes,omitempty"` // skills, proficiencies
	Inventory   []string       `json:"inventory,omitempty"`
}

// hitDice maps class name to hit die size. Unknown classes use d8.
var hitDice = map[string]int{
	"barbarian": 12,
	"fighter":   10,
	"paladin":   10,
	"ranger":    10,
	"bard":      8,
	"cleric":    8,
	"druid":     8,
	"monk":      8,
	"rogue":     8,
	"warlock":   8,
	"sorcerer":  6,
	"wizard":    6,
}

const defaultHitDie = 8

// HitDie returns the hit die size for a class name.
func HitDie(class string) int {
	if die, ok := hitDice[strings.ToLower(class)]; ok {
		return die
	}
	return defaultHitDie
}

// DeriveMaxHP computes maximum hit points from class, level and
// Constitution. Level 1 is the die maximum plus the CON modifier;
// each further level adds the die average rounded up plus the CON
// modifier. Never returns less than 1.
func (cs *CharacterSheet) DeriveMaxHP() int {
	level := cs.Level
	if level < 1 {
		level = 1
	}

	die := HitDie(cs.Class)
	conMod := Modifier(cs.Stats.Constitution)

	hp := die + conMod
	if level > 1 {
		perLevel := (die/2 + 1) + conMod
		hp += perLevel * (level - 1)
	}

	if hp < 1 {
		hp = 1
	}
	return hp
}

// EnsureHP fills in HP and MaxHP when the sheet has no persisted
// values, deriving them from class, level and Constitution. HP at or
// below zero is treated as unset: the zero value is dropped by the
// sheet's JSON encoding, so a character stored while downed re-enters
// play at full health.
func (cs *CharacterSheet) EnsureHP() {
	if cs.MaxHP <= 0 {
		if cs.HP > 0 {
			cs.MaxHP = cs.HP
		} else {
			cs.MaxHP = cs.DeriveMaxHP()
		}
	}
	if cs.HP <= 0 {
		cs.HP = cs.MaxHP
	}
}

// BuildActor constructs the runtime d20.Actor for this sheet.
func (cs *CharacterSheet) BuildActor() (*d20.Actor, error) {
	cs.EnsureHP()

	allAttrs := cs.Stats.ToAttributes()
	maps.Copy(allAttrs, cs.Attributes)

	a, err := d20.NewActor(cs.Name).
		WithHP(cs.MaxHP).
		WithAC(cs.AC).
		WithAttributes(allAttrs).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}

	if cs.HP != cs.MaxHP && cs.HP > 0 {
		if err := a.SetHP(cs.HP); err != nil {
			return nil, fmt.Errorf("failed to set HP: %w", err)
		}
	}

	return a, nil
}
