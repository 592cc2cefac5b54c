package npc

import "strings"

// Threat is the combat classification of an NPC.
type Threat string

const (
	ThreatWeak   Threat = "weak"
	ThreatMedium Threat = "medium"
	ThreatStrong Threat = "strong"
)

// Keyword sets are checked strongest-first: a "veteran guard" is
// strong, not medium. The ordering is load-bearing for reproducible
// classification and must not be reshuffled.
var strongKeywords = []string{
	"veteran", "elite", "knight", "paladin", "warrior", "fighter", "berserker",
	"assassin", "rogue", "wizard", "sorcerer", "warlock", "cleric", "druid",
	"commander", "captain", "leader", "boss", "villain", "enemy", "foe",
	"armored", "heavily armed", "well-equipped", "experienced", "trained",
	"guardian", "protector", "champion", "hero", "adventurer",
}

var mediumKeywords = []string{
	"guard", "soldier", "bandit", "thug", "scout", "hunter", "ranger",
	"mercenary", "armed", "weapon", "sword", "axe",
	"bow", "crossbow", "spear", "shield", "armor", "leather", "chain",
	"skilled", "professional",
}

var weakKeywords = []string{
	"commoner", "peasant", "farmer", "merchant", "trader", "child", "elderly",
	"old", "young", "defenseless", "helpless", "innocent",
	"civilian", "villager", "townsfolk", "citizen", "resident", "worker",
	"laborer", "servant", "maid", "cook", "blacksmith", "carpenter",
}

// disarmedPhrases negate an armament keyword: "no weapons" must not
// read as the medium keyword "weapon", and "unarmed" must not read as
// "armed". Matched phrases are removed before the keyword scan and
// count as weak evidence. Longer phrases come first so a shorter one
// never leaves a fragment behind.
var disarmedPhrases = []string{
	"without a weapon", "without weapons", "no weapons", "no weapon",
	"weaponless", "unarmed",
}

var personWords = []string{"figure", "person", "individual", "someone"}

var mysteryWords = []string{"cloaked", "hooded", "mysterious", "shadowy"}

// Classify buckets an NPC into weak/medium/strong from its name and
// description. Unknown NPCs default to medium.
func Classify(name, description string) Threat {
	text := strings.ToLower(name) + " " + strings.ToLower(description)

	disarmed := false
	for _, phrase := range disarmedPhrases {
		if strings.Contains(text, phrase) {
			text = strings.ReplaceAll(text, phrase, " ")
			disarmed = true
		}
	}

	if containsAny(text, strongKeywords) {
		return ThreatStrong
	}
	if containsAny(text, mediumKeywords) {
		return ThreatMedium
	}
	if disarmed || containsAny(text, weakKeywords) {
		return ThreatWeak
	}

	// Generic person-words: mysterious figures read as medium threat,
	// plain ones as weak.
	if containsAny(text, personWords) {
		if containsAny(text, mysteryWords) {
			return ThreatMedium
		}
		return ThreatWeak
	}

	return ThreatMedium
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
