package director

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeonmaster/internal/srd"
	"dungeonmaster/pkg/combat"
	"dungeonmaster/pkg/npc"
)

// fakeBlocks serves a fixed set of stat blocks and doubles as the
// resolver's probe gateway.
type fakeBlocks struct {
	records map[string]*srd.MonsterRecord
}

func (f *fakeBlocks) MonsterBlock(ctx context.Context, name string) (*srd.MonsterRecord, error) {
	if r, ok := f.records[name]; ok {
		return r, nil
	}
	return nil, srd.ErrNotFound
}

func (f *fakeBlocks) HasMonster(ctx context.Context, key string) bool {
	_, ok := f.records[key]
	return ok
}

var _ npc.Gateway = (*fakeBlocks)(nil)

func TestResolveMonster_DirectStatBlock(t *testing.T) {
	blocks := &fakeBlocks{records: map[string]*srd.MonsterRecord{
		"goblin": {Index: "goblin", Name: "Goblin", HitPoints: 7, ChallengeRating: 0.25},
	}}
	source := NewMonsterSource(blocks, npc.NewResolver(blocks, testLogger()), testLogger())

	mon, err := source.ResolveMonster(context.Background(), combat.MonsterRef{Name: "goblin"})
	require.NoError(t, err)
	assert.Equal(t, "goblin", mon.StatBlock)
	assert.Equal(t, 7, mon.CurrentHP)
	assert.Equal(t, 7, mon.MaxHP)
	assert.Equal(t, 10, mon.AC, "missing armor class defaults to 10")
}

func TestResolveMonster_NPCNameGoesThroughClassification(t *testing.T) {
	blocks := &fakeBlocks{records: map[string]*srd.MonsterRecord{
		"veteran": {Index: "veteran", Name: "Veteran", HitPoints: 58, ChallengeRating: 3},
	}}
	source := NewMonsterSource(blocks, npc.NewResolver(blocks, testLogger()), testLogger())

	mon, err := source.ResolveMonster(context.Background(), combat.MonsterRef{Name: "Veteran Guard Captain"})
	require.NoError(t, err)
	assert.Equal(t, "veteran", mon.StatBlock)
	assert.Equal(t, 58, mon.MaxHP)
}

func TestResolveMonster_DescriptionInformsClassification(t *testing.T) {
	blocks := &fakeBlocks{records: map[string]*srd.MonsterRecord{
		"commoner": {Index: "commoner", Name: "Commoner", HitPoints: 4},
		"veteran":  {Index: "veteran", Name: "Veteran", HitPoints: 58, ChallengeRating: 3},
	}}
	source := NewMonsterSource(blocks, npc.NewResolver(blocks, testLogger()), testLogger())

	// The name alone says nothing; the profile is what marks the threat.
	mon, err := source.ResolveMonster(context.Background(), combat.MonsterRef{
		Name:        "Joss of the Crossroads",
		Description: "A trained and experienced duelist",
	})
	require.NoError(t, err)
	assert.Equal(t, "veteran", mon.StatBlock)

	mon, err = source.ResolveMonster(context.Background(), combat.MonsterRef{Name: "Joss of the Crossroads"})
	require.NoError(t, err)
	assert.Equal(t, "commoner", mon.StatBlock)
}

func TestResolveMonster_NothingResolves(t *testing.T) {
	blocks := &fakeBlocks{records: map[string]*srd.MonsterRecord{}}
	source := NewMonsterSource(blocks, npc.NewResolver(blocks, testLogger()), testLogger())

	_, err := source.ResolveMonster(context.Background(), combat.MonsterRef{Name: "Unknowable Horror"})
	assert.ErrorIs(t, err, srd.ErrNotFound)
}
