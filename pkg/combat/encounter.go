package combat

import (
	"sync"

	"dungeonmaster/pkg/actor"
)

// Status marks whether an encounter is still running.
type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Monster is a combat participant backed by an SRD stat block. Name is
// the display name from the start request (possibly an NPC alias);
// StatBlock is the resolved SRD key it was loaded from.
type Monster struct {
	Name            string  `json:"name"`
	StatBlock       string  `json:"stat_block"`
	CurrentHP       int     `json:"current_hit_points"`
	MaxHP           int     `json:"max_hit_points"`
	AC              int     `json:"armor_class"`
	ChallengeRating float64 `json:"challenge_rating,omitempty"`
}

// Encounter is the turn state for one campaign's active combat. All
// access goes through the Manager, which serializes mutations per
// campaign via mu.
type Encounter struct {
	mu sync.Mutex

	CampaignID  string                           `json:"campaign_id"`
	Characters  map[string]*actor.CharacterSheet `json:"characters"`
	Monsters    map[string]*Monster              `json:"monsters"`
	TurnOrder   []string                         `json:"turn_order"`
	CurrentTurn int                              `json:"current_turn"`
	Round       int                              `json:"round"`
	Status      Status                           `json:"status"`
}

// participantHP returns the current HP for a participant name, with
// ok=false when the name is not part of the encounter. Caller holds mu.
func (e *Encounter) participantHP(name string) (int, bool) {
	if c, ok := e.Characters[name]; ok {
		return c.HP, true
	}
	if m, ok := e.Monsters[name]; ok {
		return m.CurrentHP, true
	}
	return 0, false
}

// View is a point-in-time copy of an encounter, safe to read and
// serialize while combat continues.
type View struct {
	CampaignID  string                          `json:"campaign_id"`
	Characters  map[string]actor.CharacterSheet `json:"characters"`
	Monsters    map[string]Monster              `json:"monsters"`
	TurnOrder   []string                        `json:"turn_order"`
	CurrentTurn int                             `json:"current_turn"`
	Round       int                             `json:"round"`
	Status      Status                          `json:"status"`
}

// view copies the encounter. Caller holds mu.
func (e *Encounter) view() *View {
	v := &View{
		CampaignID:  e.CampaignID,
		Characters:  make(map[string]actor.CharacterSheet, len(e.Characters)),
		Monsters:    make(map[string]Monster, len(e.Monsters)),
		TurnOrder:   append([]string(nil), e.TurnOrder...),
		CurrentTurn: e.CurrentTurn,
		Round:       e.Round,
		Status:      e.Status,
	}
	for name, c := range e.Characters {
		v.Characters[name] = *c
	}
	for name, m := range e.Monsters {
		v.Monsters[name] = *m
	}
	return v
}
