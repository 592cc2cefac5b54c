package combat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"dungeonmaster/pkg/actor"
)

// CharacterSource loads persisted character sheets for a campaign.
type CharacterSource interface {
	LoadCharacter(ctx context.Context, campaignID, name string) (*actor.CharacterSheet, error)
}

// MonsterRef names one monster-side participant. Name is an SRD key or
// an NPC's narrative name and becomes the turn-order entry; Description
// is optional narrative detail fed to NPC classification.
type MonsterRef struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// MonsterSource turns a monster reference into a loaded stat block.
// Implementations run NPC resolution before the reference-data lookup.
type MonsterSource interface {
	ResolveMonster(ctx context.Context, ref MonsterRef) (*Monster, error)
}

// Manager owns all active encounters, keyed by campaign ID. Operations
// on the same campaign are mutually exclusive; different campaigns
// never block each other.
type Manager struct {
	mu         sync.RWMutex
	encounters map[string]*Encounter
	starting   map[string]struct{} // campaigns with a StartCombat in flight

	resultMu sync.Mutex
	results  map[string]*Result

	characters CharacterSource
	monsters   MonsterSource
	logger     *slog.Logger
}

func NewManager(characters CharacterSource, monsters MonsterSource, logger *slog.Logger) *Manager {
	return &Manager{
		encounters: make(map[string]*Encounter),
		starting:   make(map[string]struct{}),
		results:    make(map[string]*Result),
		characters: characters,
		monsters:   monsters,
		logger:     logger,
	}
}

// StartSummary describes a freshly started encounter.
type StartSummary struct {
	CampaignID string            `json:"campaign_id"`
	Characters []string          `json:"characters"`
	Monsters   []string          `json:"monsters"`
	Resolved   map[string]string `json:"resolved,omitempty"` // display name -> stat-block key, where they differ
	TurnOrder  []string          `json:"turn_order"`
	FirstTurn  string            `json:"first_turn"`
}

// StartCombat loads every requested participant and registers a new
// encounter for the campaign. It fails without side effects if any
// character or monster cannot be loaded, or if an encounter is already
// active. Turn order is characters then monsters, in input order.
func (m *Manager) StartCombat(ctx context.Context, campaignID string, characterNames []string, monsterRefs []MonsterRef) (*StartSummary, error) {
	if len(characterNames)+len(monsterRefs) == 0 {
		return nil, ErrNoParticipants
	}

	monsterNames := make([]string, len(monsterRefs))
	for i, ref := range monsterRefs {
		monsterNames[i] = ref.Name
	}

	seen := make(map[string]struct{}, len(characterNames)+len(monsterRefs))
	for _, name := range append(append([]string(nil), characterNames...), monsterNames...) {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, name)
		}
		seen[name] = struct{}{}
	}

	// Reserve the campaign slot before loading anything, so a
	// concurrent StartCombat for the same campaign fails immediately.
	m.mu.Lock()
	if _, active := m.encounters[campaignID]; active {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrAlreadyActive, campaignID)
	}
	if _, inFlight := m.starting[campaignID]; inFlight {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrAlreadyActive, campaignID)
	}
	m.starting[campaignID] = struct{}{}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.starting, campaignID)
		m.mu.Unlock()
	}()

	enc := &Encounter{
		CampaignID:  campaignID,
		Characters:  make(map[string]*actor.CharacterSheet, len(characterNames)),
		Monsters:    make(map[string]*Monster, len(monsterRefs)),
		CurrentTurn: 0,
		Round:       1,
		Status:      StatusActive,
	}

	g, gctx := errgroup.WithContext(ctx)

	sheets := make([]*actor.CharacterSheet, len(characterNames))
	for i, name := range characterNames {
		g.Go(func() error {
			sheet, err := m.characters.LoadCharacter(gctx, campaignID, name)
			if err != nil {
				return fmt.Errorf("loading character %q: %w", name, err)
			}
			sheet.EnsureHP()
			sheets[i] = sheet
			return nil
		})
	}

	loaded := make([]*Monster, len(monsterRefs))
	for i, ref := range monsterRefs {
		g.Go(func() error {
			mon, err := m.monsters.ResolveMonster(gctx, ref)
			if err != nil {
				return fmt.Errorf("loading monster %q: %w", ref.Name, err)
			}
			mon.Name = ref.Name
			loaded[i] = mon
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved := make(map[string]string)
	for i, name := range characterNames {
		enc.Characters[name] = sheets[i]
		enc.TurnOrder = append(enc.TurnOrder, name)
	}
	for i, name := range monsterNames {
		enc.Monsters[name] = loaded[i]
		enc.TurnOrder = append(enc.TurnOrder, name)
		if loaded[i].StatBlock != name {
			resolved[name] = loaded[i].StatBlock
		}
	}

	m.mu.Lock()
	m.encounters[campaignID] = enc
	m.mu.Unlock()

	m.logger.Info("Combat started",
		"campaign_id", campaignID,
		"characters", len(characterNames),
		"monsters", len(monsterRefs))

	return &StartSummary{
		CampaignID: campaignID,
		Characters: characterNames,
		Monsters:   monsterNames,
		Resolved:   resolved,
		TurnOrder:  enc.TurnOrder,
		FirstTurn:  enc.TurnOrder[0],
	}, nil
}

// encounter returns the live encounter for a campaign.
func (m *Manager) encounter(campaignID string) (*Encounter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	enc, ok := m.encounters[campaignID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotActive, campaignID)
	}
	return enc, nil
}

// GetState returns a consistent snapshot of the campaign's encounter.
func (m *Manager) GetState(campaignID string) (*View, error) {
	enc, err := m.encounter(campaignID)
	if err != nil {
		return nil, err
	}
	enc.mu.Lock()
	defer enc.mu.Unlock()
	return enc.view(), nil
}

// HPUpdate reports the outcome of an UpdateHitPoints call.
type HPUpdate struct {
	Name            string `json:"name"`
	ParticipantType string `json:"participant_type"` // "character" or "monster"
	HP              int    `json:"hit_points"`
	MaxHP           int    `json:"max_hit_points"`
	Down            bool   `json:"down"` // reduced to 0 HP
}

// UpdateHitPoints sets a participant's HP, clamped to [0, max].
func (m *Manager) UpdateHitPoints(campaignID, participantName string, newHP int) (*HPUpdate, error) {
	enc, err := m.encounter(campaignID)
	if err != nil {
		return nil, err
	}

	enc.mu.Lock()
	defer enc.mu.Unlock()

	if c, ok := enc.Characters[participantName]; ok {
		c.HP = clampHP(newHP, c.MaxHP)
		return &HPUpdate{
			Name:            participantName,
			ParticipantType: "character",
			HP:              c.HP,
			MaxHP:           c.MaxHP,
			Down:            c.HP <= 0,
		}, nil
	}
	if mon, ok := enc.Monsters[participantName]; ok {
		mon.CurrentHP = clampHP(newHP, mon.MaxHP)
		return &HPUpdate{
			Name:            participantName,
			ParticipantType: "monster",
			HP:              mon.CurrentHP,
			MaxHP:           mon.MaxHP,
			Down:            mon.CurrentHP <= 0,
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrParticipantNotFound, participantName)
}

func clampHP(hp, max int) int {
	if hp < 0 {
		return 0
	}
	if max > 0 && hp > max {
		return max
	}
	return hp
}

// NextTurn describes whose turn it is after an advance.
type NextTurn struct {
	Name     string `json:"name"`
	HP       int    `json:"hit_points"`
	Round    int    `json:"round"`
	NewRound bool   `json:"new_round"`
}

// AdvanceTurn moves to the next participant in turn order, starting a
// new round when the index wraps to 0. Participants at 0 HP are
// skipped; the skip does not advance the round counter. When everyone
// is down it returns ErrEncounterExhausted instead of looping.
func (m *Manager) AdvanceTurn(campaignID string) (*NextTurn, error) {
	enc, err := m.encounter(campaignID)
	if err != nil {
		return nil, err
	}

	enc.mu.Lock()
	defer enc.mu.Unlock()

	if len(enc.TurnOrder) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoParticipants, campaignID)
	}

	enc.CurrentTurn = (enc.CurrentTurn + 1) % len(enc.TurnOrder)
	newRound := enc.CurrentTurn == 0
	if newRound {
		enc.Round++
	}

	// Skip participants at 0 HP, bounded by one full cycle.
	for range enc.TurnOrder {
		name := enc.TurnOrder[enc.CurrentTurn]
		hp, _ := enc.participantHP(name)
		if hp > 0 {
			return &NextTurn{
				Name:     name,
				HP:       hp,
				Round:    enc.Round,
				NewRound: newRound,
			}, nil
		}
		enc.CurrentTurn = (enc.CurrentTurn + 1) % len(enc.TurnOrder)
	}

	return nil, fmt.Errorf("%w: %s", ErrEncounterExhausted, campaignID)
}

// Summary is the casualty report produced by EndCombat.
type Summary struct {
	CampaignID      string `json:"campaign_id"`
	Rounds          int    `json:"rounds"`
	CharactersAlive int    `json:"characters_alive"`
	CharactersDead  int    `json:"characters_dead"`
	MonstersAlive   int    `json:"monsters_alive"`
	MonstersDead    int    `json:"monsters_dead"`
}

// EndCombat removes the campaign's encounter and reports casualties.
// Any pending combat result for the campaign is discarded with it.
func (m *Manager) EndCombat(campaignID string) (*Summary, error) {
	m.mu.Lock()
	enc, ok := m.encounters[campaignID]
	if !ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotActive, campaignID)
	}
	delete(m.encounters, campaignID)
	m.mu.Unlock()

	enc.mu.Lock()
	defer enc.mu.Unlock()
	enc.Status = StatusEnded

	summary := &Summary{
		CampaignID: campaignID,
		Rounds:     enc.Round,
	}
	for _, c := range enc.Characters {
		if c.HP > 0 {
			summary.CharactersAlive++
		} else {
			summary.CharactersDead++
		}
	}
	for _, mon := range enc.Monsters {
		if mon.CurrentHP > 0 {
			summary.MonstersAlive++
		} else {
			summary.MonstersDead++
		}
	}

	m.ClearResult(campaignID)

	m.logger.Info("Combat ended",
		"campaign_id", campaignID,
		"rounds", summary.Rounds,
		"characters_alive", summary.CharactersAlive,
		"monsters_alive", summary.MonstersAlive)

	return summary, nil
}
