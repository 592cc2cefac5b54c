package npc

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setGateway answers HasMonster from a fixed key set.
type setGateway map[string]bool

func (g setGateway) HasMonster(ctx context.Context, key string) bool {
	return g[key]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func TestResolveToMonsterKey_PrefersFirstAvailable(t *testing.T) {
	r := NewResolver(setGateway{"veteran": true, "knight": true}, testLogger())
	assert.Equal(t, "veteran", r.ResolveToMonsterKey(context.Background(), ThreatStrong))
}

func TestResolveToMonsterKey_SkipsMissingKeys(t *testing.T) {
	r := NewResolver(setGateway{"thug": true}, testLogger())
	assert.Equal(t, "thug", r.ResolveToMonsterKey(context.Background(), ThreatMedium))
}

func TestResolveToMonsterKey_DefaultWhenNothingServes(t *testing.T) {
	r := NewResolver(setGateway{}, testLogger())
	assert.Equal(t, DefaultStatBlock, r.ResolveToMonsterKey(context.Background(), ThreatStrong))
}

func TestResolveNPCToMonster(t *testing.T) {
	gateway := setGateway{"veteran": true, "guard": true, "commoner": true}
	r := NewResolver(gateway, testLogger())

	assert.Equal(t, "veteran", r.ResolveNPCToMonster(context.Background(), "Veteran Guard", ""))
	assert.Equal(t, "commoner", r.ResolveNPCToMonster(context.Background(), "Young Merchant", ""))
	assert.Equal(t, "guard", r.ResolveNPCToMonster(context.Background(), "Cloaked Figure", ""))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Veteran", DisplayName("veteran"))
	assert.Equal(t, "Dire Wolf", DisplayName("dire wolf"))
}
