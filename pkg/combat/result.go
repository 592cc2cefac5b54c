package combat

import (
	"fmt"
	"time"
)

// Result captures one resolved combat action for handoff from the
// rules arbiter to the narrator. At most one result is outstanding per
// campaign; recording a new one replaces any unconsumed predecessor.
type Result struct {
	CampaignID   string    `json:"campaign_id"`
	Timestamp    time.Time `json:"timestamp"`
	ActionType   string    `json:"action_type"` // attack, spell, ...
	Attacker     string    `json:"attacker"`
	Target       string    `json:"target"`
	AttackRoll   int       `json:"attack_roll"`
	AttackBonus  int       `json:"attack_bonus"`
	TargetAC     int       `json:"target_ac"`
	Hit          bool      `json:"hit"`
	Damage       int       `json:"damage,omitempty"`
	DamageType   string    `json:"damage_type,omitempty"`
	Critical     bool      `json:"critical,omitempty"`
	TargetHPPrev int       `json:"target_hp_before"`
	TargetHPNow  int       `json:"target_hp_after"`
	TargetStatus string    `json:"target_status"` // alive, unconscious, dead

	// MechanicalSummary is a compact human-readable account of the
	// roll math, filled in by RecordResult.
	MechanicalSummary string `json:"mechanical_summary"`
}

func (r *Result) summarize() string {
	outcome := "MISS"
	if r.Hit {
		outcome = "HIT"
	}
	s := fmt.Sprintf("Attack: %d + %d = %d vs AC %d (%s)",
		r.AttackRoll, r.AttackBonus, r.AttackRoll+r.AttackBonus, r.TargetAC, outcome)
	if r.Hit && r.Damage > 0 {
		s += fmt.Sprintf(" | Damage: %d %s | Target HP: %d/%d",
			r.Damage, r.DamageType, r.TargetHPNow, r.TargetHPPrev)
	}
	if r.Critical {
		s += " | CRITICAL HIT!"
	}
	return s
}

// RecordResult stores the result for its campaign, stamping it and
// building the mechanical summary.
func (m *Manager) RecordResult(r *Result) {
	r.Timestamp = time.Now()
	r.MechanicalSummary = r.summarize()

	m.resultMu.Lock()
	m.results[r.CampaignID] = r
	m.resultMu.Unlock()
}

// Result returns the pending combat result for a campaign without
// consuming it.
func (m *Manager) Result(campaignID string) (*Result, error) {
	m.resultMu.Lock()
	defer m.resultMu.Unlock()
	r, ok := m.results[campaignID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoResult, campaignID)
	}
	return r, nil
}

// ClearResult discards the pending combat result, if any.
func (m *Manager) ClearResult(campaignID string) {
	m.resultMu.Lock()
	delete(m.results, campaignID)
	m.resultMu.Unlock()
}
