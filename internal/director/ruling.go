package director

import (
	"encoding/json"
	"strings"

	"dungeonmaster/pkg/combat"
)

// ruling is the structured verdict the rules arbiter appends to its
// reply as a JSON object, per its system prompt.
type ruling struct {
	Attacker    string `json:"attacker"`
	Target      string `json:"target"`
	AttackRoll  int    `json:"attack_roll"`
	AttackBonus int    `json:"attack_bonus"`
	Hit         bool   `json:"hit"`
	Damage      int    `json:"damage"`
	DamageType  string `json:"damage_type"`
	Critical    bool   `json:"critical"`
}

// parseRuling extracts the JSON verdict embedded in an arbiter reply.
// Replies without one are narrative-only and carry no mechanical
// effect. A verdict must at least name its target.
func parseRuling(reply string) (*ruling, bool) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return nil, false
	}

	var r ruling
	if err := json.Unmarshal([]byte(reply[start:end+1]), &r); err != nil {
		return nil, false
	}
	if r.Target == "" {
		return nil, false
	}
	return &r, true
}

// applyRuling turns a parsed verdict into encounter state: damage goes
// through UpdateHitPoints, and the outcome is recorded for the
// narrator handoff. Verdicts naming a combatant outside the encounter
// are dropped.
func (d *Director) applyRuling(campaignID string, view *combat.View, attacker string, rul *ruling) {
	targetHP, targetAC, ok := targetNumbers(view, rul.Target)
	if !ok {
		d.logger.Warn("Ruling names a combatant outside the encounter",
			"campaign_id", campaignID, "target", rul.Target)
		return
	}
	if rul.Attacker != "" {
		attacker = rul.Attacker
	}

	result := &combat.Result{
		CampaignID:   campaignID,
		ActionType:   "attack",
		Attacker:     attacker,
		Target:       rul.Target,
		AttackRoll:   rul.AttackRoll,
		AttackBonus:  rul.AttackBonus,
		TargetAC:     targetAC,
		Hit:          rul.Hit,
		Damage:       rul.Damage,
		DamageType:   rul.DamageType,
		Critical:     rul.Critical,
		TargetHPPrev: targetHP,
		TargetHPNow:  targetHP,
		TargetStatus: "alive",
	}

	if rul.Hit && rul.Damage > 0 {
		update, err := d.combat.UpdateHitPoints(campaignID, rul.Target, targetHP-rul.Damage)
		if err != nil {
			d.logger.Warn("Hit point update from ruling failed",
				"campaign_id", campaignID, "target", rul.Target, "error", err)
			return
		}
		result.TargetHPNow = update.HP
		if update.Down {
			result.TargetStatus = "unconscious"
		}
	}

	d.combat.RecordResult(result)
}

// targetNumbers reads a participant's current HP and AC out of an
// encounter snapshot.
func targetNumbers(view *combat.View, name string) (hp, ac int, ok bool) {
	if c, found := view.Characters[name]; found {
		return c.HP, c.AC, true
	}
	if m, found := view.Monsters[name]; found {
		return m.CurrentHP, m.AC, true
	}
	return 0, 0, false
}
