package storage

import (
	"context"
	"errors"

	"dungeonmaster/pkg/actor"
	"dungeonmaster/pkg/campaign"
)

// ErrNotFound is returned when a campaign or character does not exist.
var ErrNotFound = errors.New("not found in storage")

// Storage is the persistence gateway for campaign durable state and
// character sheets.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Campaign state
	SaveCampaignState(ctx context.Context, state *campaign.State) error
	LoadCampaignState(ctx context.Context, campaignID string) (*campaign.State, error)
	DeleteCampaignState(ctx context.Context, campaignID string) error

	// Character sheets, scoped per campaign
	SaveCharacter(ctx context.Context, campaignID string, sheet *actor.CharacterSheet) error
	LoadCharacter(ctx context.Context, campaignID, name string) (*actor.CharacterSheet, error)
	ListCharacters(ctx context.Context, campaignID string) ([]string, error)
}
