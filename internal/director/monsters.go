package director

import (
	"context"
	"errors"
	"log/slog"

	"dungeonmaster/internal/srd"
	"dungeonmaster/pkg/combat"
	"dungeonmaster/pkg/npc"
)

// StatBlockSource serves monster stat blocks from reference data.
type StatBlockSource interface {
	MonsterBlock(ctx context.Context, name string) (*srd.MonsterRecord, error)
}

// MonsterSource adapts reference data and the NPC resolver into the
// combat engine's monster loader. A reference name is tried verbatim
// first; a miss means it is a narrative NPC and its name plus
// description go through classification.
type MonsterSource struct {
	blocks   StatBlockSource
	resolver *npc.Resolver
	logger   *slog.Logger
}

var _ combat.MonsterSource = (*MonsterSource)(nil)

func NewMonsterSource(blocks StatBlockSource, resolver *npc.Resolver, logger *slog.Logger) *MonsterSource {
	return &MonsterSource{blocks: blocks, resolver: resolver, logger: logger}
}

func (s *MonsterSource) ResolveMonster(ctx context.Context, ref combat.MonsterRef) (*combat.Monster, error) {
	record, err := s.blocks.MonsterBlock(ctx, ref.Name)
	if errors.Is(err, srd.ErrNotFound) {
		key := s.resolver.ResolveNPCToMonster(ctx, ref.Name, ref.Description)
		s.logger.Debug("NPC reference resolved to stat block", "ref", ref.Name, "stat_block", key)
		record, err = s.blocks.MonsterBlock(ctx, key)
	}
	if err != nil {
		return nil, err
	}

	return &combat.Monster{
		Name:            record.Name,
		StatBlock:       record.Index,
		CurrentHP:       record.HitPoints,
		MaxHP:           record.HitPoints,
		AC:              record.AC(),
		ChallengeRating: record.ChallengeRating,
	}, nil
}
