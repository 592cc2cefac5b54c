package agents

// SpecialistName identifies one of the closed set of specialist agents.
type SpecialistName string

const (
	Narrator         SpecialistName = "narrative"
	RulesArbiter     SpecialistName = "rules_lawyer"
	NPCActor         SpecialistName = "npc"
	CharacterBuilder SpecialistName = "character_creation"
	CampaignWriter   SpecialistName = "campaign_creation"
	PlayerProxy      SpecialistName = "player_interface"
)

// Specialist is one member of the game master's table of experts.
type Specialist struct {
	Name         SpecialistName
	Description  string
	SystemPrompt string
}

var registry = map[SpecialistName]*Specialist{
	Narrator: {
		Name:        Narrator,
		Description: "Describes scenes, locations and story beats.",
		SystemPrompt: "You are the narrative voice of a Dungeons & Dragons campaign. " +
			"Describe scenes, locations and consequences of player actions vividly but concisely. " +
			"Stay in second person and never reveal game mechanics unless asked.",
	},
	RulesArbiter: {
		Name:        RulesArbiter,
		Description: "Resolves mechanics: attack rolls, checks, damage.",
		SystemPrompt: "You are the rules arbiter for a Dungeons & Dragons 5th edition game. " +
			"Resolve attacks, checks and saves strictly by the rules, using the provided " +
			"attack roll and showing the roll math. Report outcomes mechanically; narration " +
			"is someone else's job. End every combat resolution with exactly one JSON object " +
			"on its own line, for example: " +
			`{"target": "Goblin", "attack_roll": 14, "attack_bonus": 5, "hit": true, ` +
			`"damage": 6, "damage_type": "slashing", "critical": false}`,
	},
	NPCActor: {
		Name:        NPCActor,
		Description: "Plays non-player characters in dialogue.",
		SystemPrompt: "You voice the non-player characters of a Dungeons & Dragons campaign. " +
			"Speak in character, consistent with each NPC's disposition and profile. " +
			"Never speak for the player.",
	},
	CharacterBuilder: {
		Name:        CharacterBuilder,
		Description: "Guides players through character creation.",
		SystemPrompt: "You help a player build a Dungeons & Dragons 5th edition character step by step: " +
			"race, class, background, ability scores and starting equipment. " +
			"Ask one question at a time and summarize the sheet when complete.",
	},
	CampaignWriter: {
		Name:        CampaignWriter,
		Description: "Drafts campaign outlines and story arcs.",
		SystemPrompt: "You write campaign outlines for Dungeons & Dragons: a premise, three acts, " +
			"key locations and a handful of recurring NPCs. Keep it playable, not a novel.",
	},
	PlayerProxy: {
		Name:        PlayerProxy,
		Description: "Clarifies ambiguous player input into structured intent.",
		SystemPrompt: "You translate free-form player input into a clear, structured game intent. " +
			"State the intended action, the actor and the target in one short sentence.",
	},
}

// Get returns the specialist for a name.
func Get(name SpecialistName) (*Specialist, bool) {
	s, ok := registry[name]
	return s, ok
}

// All returns every registered specialist name.
func All() []SpecialistName {
	names := make([]SpecialistName, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
