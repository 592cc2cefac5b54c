package storage

import (
	"context"
	"fmt"
	"sync"

	"dungeonmaster/pkg/actor"
	"dungeonmaster/pkg/campaign"
)

// MockStorage is an in-memory Storage implementation for testing.
// Behavior can be overridden per method via the Func fields.
type MockStorage struct {
	mu         sync.Mutex
	campaigns  map[string]*campaign.State
	characters map[string]*actor.CharacterSheet

	PingFunc          func(ctx context.Context) error
	LoadCharacterFunc func(ctx context.Context, campaignID, name string) (*actor.CharacterSheet, error)

	// Call tracking
	SaveCampaignCalls  int
	LoadCharacterCalls int
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		campaigns:  make(map[string]*campaign.State),
		characters: make(map[string]*actor.CharacterSheet),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveCampaignState(ctx context.Context, state *campaign.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCampaignCalls++
	m.campaigns[state.ID] = state
	return nil
}

func (m *MockStorage) LoadCampaignState(ctx context.Context, campaignID string) (*campaign.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.campaigns[campaignID]
	if !ok {
		return nil, fmt.Errorf("campaign %q: %w", campaignID, ErrNotFound)
	}
	return state, nil
}

func (m *MockStorage) DeleteCampaignState(ctx context.Context, campaignID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.campaigns, campaignID)
	return nil
}

func (m *MockStorage) SaveCharacter(ctx context.Context, campaignID string, sheet *actor.CharacterSheet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.characters[campaignID+":"+sheet.Name] = sheet
	return nil
}

func (m *MockStorage) LoadCharacter(ctx context.Context, campaignID, name string) (*actor.CharacterSheet, error) {
	if m.LoadCharacterFunc != nil {
		return m.LoadCharacterFunc(ctx, campaignID, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCharacterCalls++
	sheet, ok := m.characters[campaignID+":"+name]
	if !ok {
		return nil, fmt.Errorf("character %q: %w", name, ErrNotFound)
	}
	// Copy so combat mutations don't leak back into "storage"
	copied := *sheet
	return &copied, nil
}

func (m *MockStorage) ListCharacters(ctx context.Context, campaignID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := campaignID + ":"
	var names []string
	for key := range m.characters {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			names = append(names, key[len(prefix):])
		}
	}
	return names, nil
}
