package npc

import (
	"context"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Gateway is the reference-data probe used by the resolver.
type Gateway interface {
	// HasMonster reports whether a stat block exists for the key.
	HasMonster(ctx context.Context, key string) bool
}

// DefaultStatBlock is the key used when nothing else resolves.
const DefaultStatBlock = "commoner"

// preferredStatBlocks lists stat-block keys per threat class, probed
// in order.
var preferredStatBlocks = map[Threat][]string{
	ThreatWeak:   {"commoner", "peasant", "child"},
	ThreatMedium: {"guard", "bandit", "thug", "scout"},
	ThreatStrong: {"veteran", "knight", "berserker", "assassin"},
}

// fallbackStatBlocks is the short second-chance list per threat class.
var fallbackStatBlocks = map[Threat][]string{
	ThreatWeak:   {"commoner", "peasant"},
	ThreatMedium: {"guard", "bandit"},
	ThreatStrong: {"veteran", "knight"},
}

var titleCaser = cases.Title(language.English)

// Resolver maps free-text NPC references to SRD stat-block keys.
type Resolver struct {
	gateway Gateway
	logger  *slog.Logger
}

func NewResolver(gateway Gateway, logger *slog.Logger) *Resolver {
	return &Resolver{gateway: gateway, logger: logger}
}

// ResolveToMonsterKey picks the first stat-block key for the threat
// class that the gateway can actually serve, falling back to
// DefaultStatBlock if nothing resolves.
func (r *Resolver) ResolveToMonsterKey(ctx context.Context, threat Threat) string {
	for _, key := range preferredStatBlocks[threat] {
		if r.gateway.HasMonster(ctx, key) {
			return key
		}
	}
	for _, key := range fallbackStatBlocks[threat] {
		if r.gateway.HasMonster(ctx, key) {
			return key
		}
	}

	r.logger.Warn("No stat block resolved for threat class, using default",
		"threat", threat, "default", DefaultStatBlock)
	return DefaultStatBlock
}

// ResolveNPCToMonster classifies an NPC reference and resolves it to a
// stat-block key in one step.
func (r *Resolver) ResolveNPCToMonster(ctx context.Context, name, description string) string {
	return r.ResolveToMonsterKey(ctx, Classify(name, description))
}

// DisplayName formats a stat-block key for narration, e.g.
// "veteran" -> "Veteran".
func DisplayName(key string) string {
	return titleCaser.String(key)
}
