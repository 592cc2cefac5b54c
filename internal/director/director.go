package director

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dungeonmaster/internal/agents"
	"dungeonmaster/internal/logger"
	"dungeonmaster/internal/srd"
	"dungeonmaster/internal/storage"
	"dungeonmaster/pkg/actor"
	"dungeonmaster/pkg/campaign"
	"dungeonmaster/pkg/chat"
	"dungeonmaster/pkg/combat"
	"dungeonmaster/pkg/dice"
)

// Invoker runs one specialist turn. Satisfied by agents.Manager.
type Invoker interface {
	Invoke(ctx context.Context, specialist agents.SpecialistName, payload *agents.Payload) (string, error)
}

// Director is the root coordinator. Each player turn is classified and
// dispatched to exactly one route: campaign bootstrap, a combat
// operation, or a single specialist.
type Director struct {
	store  storage.Storage
	agents Invoker
	combat *combat.Manager
	logger *slog.Logger
}

func New(store storage.Storage, invoker Invoker, combatMgr *combat.Manager, logger *slog.Logger) *Director {
	return &Director{
		store:  store,
		agents: invoker,
		combat: combatMgr,
		logger: logger,
	}
}

// HandlePlayerAction is the sole entry point for a player turn. It
// returns a guidance response for recoverable conditions and an error
// only when the turn itself failed.
func (d *Director) HandlePlayerAction(ctx context.Context, campaignID, rawInput string) (*chat.ActionResponse, error) {
	input := strings.TrimSpace(rawInput)
	if input == "" {
		return &chat.ActionResponse{CampaignID: campaignID, Error: "input cannot be empty"}, nil
	}

	// Bootstrap routes work without loaded state.
	if campaignID == "" || classifyIntent(input, campaign.PhaseExploration) == IntentNewCampaign {
		return d.newCampaign(ctx, input)
	}

	state, err := d.store.LoadCampaignState(ctx, campaignID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &chat.ActionResponse{
				CampaignID: campaignID,
				Error:      "That campaign could not be found. Say 'new campaign' to start one.",
			}, nil
		}
		return nil, fmt.Errorf("loading campaign %s: %w", campaignID, err)
	}

	intent := classifyIntent(input, state.Phase)
	log := d.logger.With("campaign_id", campaignID, "phase", state.Phase, "intent", intent)
	log.Info("Handling player action")

	var response *chat.ActionResponse
	switch intent {
	case IntentLoadCampaign:
		response, err = d.resumeCampaign(ctx, state)
	case IntentCreateCharacter:
		response, err = d.createCharacter(ctx, state, input)
	case IntentFinishCharacter:
		response, err = d.finishCharacter(ctx, state, input)
	case IntentStartCombat:
		response, err = d.startCombat(ctx, state, input)
	case IntentAttack:
		response, err = d.resolveAttack(ctx, state, input)
	case IntentAdvanceTurn:
		response, err = d.advanceTurn(state)
	case IntentEndCombat:
		response, err = d.endCombat(ctx, state, input)
	case IntentTalk:
		response, err = d.talk(ctx, state, input)
	case IntentEndDialogue:
		response, err = d.endDialogue(ctx, state, input)
	default:
		response, err = d.explore(ctx, state, input)
	}
	if err != nil {
		return nil, err
	}

	if response.Message != "" {
		state.AddExchange(input, response.Message)
	}
	state.UpdatedAt = time.Now()
	if err := d.store.SaveCampaignState(ctx, state); err != nil {
		return nil, fmt.Errorf("saving campaign %s: %w", campaignID, err)
	}

	response.CampaignID = state.ID
	response.Phase = string(state.Phase)
	return response, nil
}

func (d *Director) newCampaign(ctx context.Context, input string) (*chat.ActionResponse, error) {
	state := campaign.NewState()
	log := logger.WithCampaignID(d.logger, state.ID)

	outline, err := d.agents.Invoke(ctx, agents.CampaignWriter, &agents.Payload{
		CampaignID:  state.ID,
		Action:      "draft_campaign",
		PlayerInput: input,
	})
	if err != nil {
		return nil, fmt.Errorf("drafting campaign: %w", err)
	}
	state.Context = outline

	if err := d.store.SaveCampaignState(ctx, state); err != nil {
		return nil, fmt.Errorf("saving campaign %s: %w", state.ID, err)
	}

	log.Info("Campaign created")
	return &chat.ActionResponse{
		CampaignID: state.ID,
		Phase:      string(state.Phase),
		Message:    fmt.Sprintf("Campaign %s created. Let's build your character.\n\n%s", state.ID, outline),
	}, nil
}

func (d *Director) resumeCampaign(ctx context.Context, state *campaign.State) (*chat.ActionResponse, error) {
	recap, err := d.agents.Invoke(ctx, agents.Narrator, &agents.Payload{
		CampaignID:  state.ID,
		Action:      "recap",
		Context:     state.Context,
		GameState:   state.HistoryForPrompt(),
		PlayerInput: "Recap where we left off.",
	})
	if err != nil {
		return nil, err
	}
	return &chat.ActionResponse{Message: recap}, nil
}

func (d *Director) createCharacter(ctx context.Context, state *campaign.State, input string) (*chat.ActionResponse, error) {
	reply, err := d.agents.Invoke(ctx, agents.CharacterBuilder, &agents.Payload{
		CampaignID:  state.ID,
		Action:      "build_character",
		Context:     state.Context,
		GameState:   state.HistoryForPrompt(),
		PlayerInput: input,
	})
	if err != nil {
		return nil, err
	}
	return &chat.ActionResponse{Message: reply}, nil
}

func (d *Director) finishCharacter(ctx context.Context, state *campaign.State, input string) (*chat.ActionResponse, error) {
	state.Phase = campaign.PhaseExploration
	opening, err := d.agents.Invoke(ctx, agents.Narrator, &agents.Payload{
		CampaignID:  state.ID,
		Action:      "open_scene",
		Context:     state.Context,
		PlayerInput: input,
	})
	if err != nil {
		return nil, err
	}
	return &chat.ActionResponse{Message: opening}, nil
}

// startCombat performs the explicit exploration to combat transition:
// the encounter is registered before any turn or HP operation runs.
func (d *Director) startCombat(ctx context.Context, state *campaign.State, input string) (*chat.ActionResponse, error) {
	if len(state.Characters) == 0 {
		return &chat.ActionResponse{Error: "No characters are ready to fight. Create a character first."}, nil
	}

	hostiles := hostileNPCs(state)
	if len(hostiles) == 0 {
		return &chat.ActionResponse{Error: "There is no one here to fight."}, nil
	}

	summary, err := d.combat.StartCombat(ctx, state.ID, state.Characters, hostiles)
	if err != nil {
		if guidance := guidanceFor(err); guidance != "" {
			return &chat.ActionResponse{Error: guidance}, nil
		}
		return nil, fmt.Errorf("starting combat: %w", err)
	}

	state.Phase = campaign.PhaseCombat
	gameState, _ := json.Marshal(summary)
	narration, err := d.agents.Invoke(ctx, agents.Narrator, &agents.Payload{
		CampaignID:  state.ID,
		Action:      "narrate_combat_start",
		Context:     state.Context,
		GameState:   gameState,
		PlayerInput: input,
	})
	if err != nil {
		return nil, err
	}

	return &chat.ActionResponse{
		Message: fmt.Sprintf("%s\n\nTurn order: %s. %s acts first.",
			narration, strings.Join(summary.TurnOrder, ", "), summary.FirstTurn),
	}, nil
}

func (d *Director) resolveAttack(ctx context.Context, state *campaign.State, input string) (*chat.ActionResponse, error) {
	view, err := d.combat.GetState(state.ID)
	if err != nil {
		return &chat.ActionResponse{Error: guidanceFor(err)}, nil
	}

	// The d20 is rolled here so the arbiter adjudicates a fair roll
	// instead of inventing one.
	attackRoll, err := dice.New("1d20")
	if err != nil {
		return nil, err
	}
	rollContext := fmt.Sprintf("Attack roll: %s", attackRoll)

	// When a character acts, its d20 actor supplies the to-hit and
	// armor numbers for the ruling.
	acting := view.TurnOrder[view.CurrentTurn]
	if sheet, ok := view.Characters[acting]; ok {
		if a, buildErr := sheet.BuildActor(); buildErr == nil {
			bonus := 0
			if str, has := a.Attribute("strength"); has {
				bonus = actor.Modifier(str)
			}
			rollContext = fmt.Sprintf("%s. %s attacks with %+d to hit (AC %d, HP %d/%d).",
				rollContext, acting, bonus, a.AC(), a.HP(), a.MaxHP())
		} else {
			d.logger.Warn("Actor build failed for acting character",
				"campaign_id", state.ID, "character", acting, "error", buildErr)
		}
	}

	gameState, _ := json.Marshal(view)
	verdict, err := d.agents.Invoke(ctx, agents.RulesArbiter, &agents.Payload{
		CampaignID:  state.ID,
		Action:      "resolve_action",
		Context:     rollContext,
		GameState:   gameState,
		PlayerInput: input,
	})
	if err != nil {
		return nil, err
	}

	// The arbiter's structured verdict drives the actual hit point
	// change; a narrative-only reply changes nothing.
	if rul, ok := parseRuling(verdict); ok {
		d.applyRuling(state.ID, view, acting, rul)
	}

	// A recorded mechanical result is handed to the narrator once,
	// then discarded.
	if result, resErr := d.combat.Result(state.ID); resErr == nil {
		narration, narrErr := d.agents.Invoke(ctx, agents.Narrator, &agents.Payload{
			CampaignID:  state.ID,
			Action:      "narrate_combat_result",
			Context:     result.MechanicalSummary,
			PlayerInput: input,
		})
		d.combat.ClearResult(state.ID)
		if narrErr == nil {
			return &chat.ActionResponse{Message: fmt.Sprintf("%s\n\n%s", verdict, narration)}, nil
		}
		d.logger.Warn("Combat result narration failed", "campaign_id", state.ID, "error", narrErr)
	}

	return &chat.ActionResponse{Message: verdict}, nil
}

func (d *Director) advanceTurn(state *campaign.State) (*chat.ActionResponse, error) {
	next, err := d.combat.AdvanceTurn(state.ID)
	if err != nil {
		if guidance := guidanceFor(err); guidance != "" {
			return &chat.ActionResponse{Error: guidance}, nil
		}
		return nil, err
	}

	msg := fmt.Sprintf("It is %s's turn (round %d).", next.Name, next.Round)
	if next.NewRound {
		msg = fmt.Sprintf("Round %d begins. %s", next.Round, msg)
	}
	return &chat.ActionResponse{Message: msg}, nil
}

func (d *Director) endCombat(ctx context.Context, state *campaign.State, input string) (*chat.ActionResponse, error) {
	summary, err := d.combat.EndCombat(state.ID)
	if err != nil {
		return &chat.ActionResponse{Error: guidanceFor(err)}, nil
	}

	state.Phase = campaign.PhaseExploration
	gameState, _ := json.Marshal(summary)
	narration, err := d.agents.Invoke(ctx, agents.Narrator, &agents.Payload{
		CampaignID:  state.ID,
		Action:      "narrate_combat_end",
		Context:     state.Context,
		GameState:   gameState,
		PlayerInput: input,
	})
	if err != nil {
		return nil, err
	}

	return &chat.ActionResponse{
		Message: fmt.Sprintf("%s\n\nCombat lasted %d rounds. Party standing: %d up, %d down. Foes: %d up, %d down.",
			narration, summary.Rounds,
			summary.CharactersAlive, summary.CharactersDead,
			summary.MonstersAlive, summary.MonstersDead),
	}, nil
}

func (d *Director) talk(ctx context.Context, state *campaign.State, input string) (*chat.ActionResponse, error) {
	state.Phase = campaign.PhaseDialogue

	gameState, _ := json.Marshal(state.NPCs)
	reply, err := d.agents.Invoke(ctx, agents.NPCActor, &agents.Payload{
		CampaignID:  state.ID,
		Action:      "npc_dialogue",
		Context:     state.Context,
		GameState:   gameState,
		PlayerInput: input,
	})
	if err != nil {
		return nil, err
	}
	return &chat.ActionResponse{Message: reply}, nil
}

func (d *Director) endDialogue(ctx context.Context, state *campaign.State, input string) (*chat.ActionResponse, error) {
	state.Phase = campaign.PhaseExploration
	return d.explore(ctx, state, input)
}

func (d *Director) explore(ctx context.Context, state *campaign.State, input string) (*chat.ActionResponse, error) {
	narration, err := d.agents.Invoke(ctx, agents.Narrator, &agents.Payload{
		CampaignID:  state.ID,
		Action:      "narrate",
		Context:     state.Context,
		GameState:   state.HistoryForPrompt(),
		PlayerInput: input,
	})
	if err != nil {
		return nil, err
	}
	return &chat.ActionResponse{Message: narration}, nil
}

// hostileNPCs lists the campaign's hostile NPCs, used as the monster
// side of a new encounter. The profile rides along so classification
// sees more than the name.
func hostileNPCs(state *campaign.State) []combat.MonsterRef {
	var hostiles []combat.MonsterRef
	for name, n := range state.NPCs {
		if n.Disposition == "hostile" {
			hostiles = append(hostiles, combat.MonsterRef{Name: name, Description: n.Profile})
		}
	}
	return hostiles
}

// guidanceFor maps recoverable errors to user-facing text. Internal
// error identifiers are never surfaced to the player.
func guidanceFor(err error) string {
	switch {
	case errors.Is(err, combat.ErrNotActive):
		return "There is no active combat. Combat must be started first."
	case errors.Is(err, combat.ErrAlreadyActive):
		return "Combat is already underway here."
	case errors.Is(err, combat.ErrParticipantNotFound):
		return "There is no combatant by that name in this encounter."
	case errors.Is(err, combat.ErrEncounterExhausted):
		return "Everyone is down. The fight is over; end combat to continue."
	case errors.Is(err, combat.ErrNoParticipants):
		return "There is no one here to fight."
	case errors.Is(err, combat.ErrDuplicateParticipant):
		return "The same combatant cannot join an encounter twice."
	case errors.Is(err, storage.ErrNotFound):
		return "That could not be found in this campaign."
	case errors.Is(err, srd.ErrNotFound):
		return "No reference entry exists for that name."
	default:
		return ""
	}
}
