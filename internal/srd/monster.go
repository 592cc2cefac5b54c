package srd

import (
	"context"
	"encoding/json"
	"fmt"
)

// MonsterRecord is the subset of an SRD monster stat block the combat
// engine needs.
type MonsterRecord struct {
	Index     string `json:"index"`
	Name      string `json:"name"`
	HitPoints int    `json:"hit_points"`
	ArmorClass []struct {
		Type  string `json:"type"`
		Value int    `json:"value"`
	} `json:"armor_class"`
	ChallengeRating float64 `json:"challenge_rating"`
	HitDice         string  `json:"hit_dice,omitempty"`
}

// AC returns the monster's primary armor class value.
func (m *MonsterRecord) AC() int {
	if len(m.ArmorClass) == 0 {
		return 10
	}
	return m.ArmorClass[0].Value
}

// MonsterBlock looks up a monster stat block by name.
func (c *Client) MonsterBlock(ctx context.Context, name string) (*MonsterRecord, error) {
	raw, err := c.Lookup(ctx, "monsters", name)
	if err != nil {
		return nil, err
	}

	var record MonsterRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to parse monster record: %w", err)
	}
	return &record, nil
}

// HasMonster reports whether a monster stat block resolves. Used by
// the NPC resolver to probe candidate keys.
func (c *Client) HasMonster(ctx context.Context, key string) bool {
	entries, err := c.index(ctx, "monsters")
	if err != nil {
		c.logger.Warn("Monster index unavailable", "error", err)
		return false
	}
	_, ok := search(key, entries)
	return ok
}
