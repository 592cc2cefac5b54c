package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeonmaster/internal/storage"
	"dungeonmaster/pkg/actor"
	"dungeonmaster/pkg/combat"
)

type stubMonsterSource struct{}

func (stubMonsterSource) ResolveMonster(ctx context.Context, ref combat.MonsterRef) (*combat.Monster, error) {
	return &combat.Monster{Name: ref.Name, StatBlock: "goblin", CurrentHP: 7, MaxHP: 7, AC: 15}, nil
}

func encounterMux(h *EncounterHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/v1/campaigns/{id}/encounter", h)
	return mux
}

func startedCombatManager(t *testing.T) *combat.Manager {
	t.Helper()
	store := storage.NewMockStorage()
	sheet := &actor.CharacterSheet{Name: "Mira", Class: "rogue", Level: 2}
	sheet.EnsureHP()
	require.NoError(t, store.SaveCharacter(context.Background(), "camp-1", sheet))

	mgr := combat.NewManager(store, stubMonsterSource{}, testLogger())
	_, err := mgr.StartCombat(context.Background(), "camp-1", []string{"Mira"}, []combat.MonsterRef{{Name: "goblin"}})
	require.NoError(t, err)
	return mgr
}

func TestEncounterHandler_Success(t *testing.T) {
	mux := encounterMux(NewEncounterHandler(startedCombatManager(t), testLogger()))

	req := httptest.NewRequest(http.MethodGet, "/v1/campaigns/camp-1/encounter", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view combat.View
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Equal(t, []string{"Mira", "goblin"}, view.TurnOrder)
	assert.Equal(t, 1, view.Round)
}

func TestEncounterHandler_NoActiveEncounter(t *testing.T) {
	mgr := combat.NewManager(storage.NewMockStorage(), stubMonsterSource{}, testLogger())
	mux := encounterMux(NewEncounterHandler(mgr, testLogger()))

	req := httptest.NewRequest(http.MethodGet, "/v1/campaigns/idle/encounter", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEncounterHandler_MethodNotAllowed(t *testing.T) {
	mgr := combat.NewManager(storage.NewMockStorage(), stubMonsterSource{}, testLogger())
	mux := encounterMux(NewEncounterHandler(mgr, testLogger()))

	req := httptest.NewRequest(http.MethodPost, "/v1/campaigns/camp-1/encounter", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
