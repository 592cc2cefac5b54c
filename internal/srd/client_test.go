package srd

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

// newSRDServer serves a monsters index and per-monster records, and
// counts index fetches.
func newSRDServer(t *testing.T, indexHits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/2014/monsters", func(w http.ResponseWriter, r *http.Request) {
		if indexHits != nil {
			indexHits.Add(1)
		}
		_ = json.NewEncoder(w).Encode(indexResponse{
			Count: 3,
			Results: []IndexEntry{
				{Index: "goblin", Name: "Goblin", URL: "/api/2014/monsters/goblin"},
				{Index: "dire-wolf", Name: "Dire Wolf", URL: "/api/2014/monsters/dire-wolf"},
				{Index: "veteran", Name: "Veteran", URL: "/api/2014/monsters/veteran"},
			},
		})
	})

	mux.HandleFunc("/api/2014/monsters/goblin", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"index": "goblin", "name": "Goblin", "hit_points": 7,
			"armor_class": [{"type": "armor", "value": 15}],
			"challenge_rating": 0.25, "hit_dice": "2d6"
		}`))
	})

	mux.HandleFunc("/api/2014/monsters/dire-wolf", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"index": "dire-wolf", "name": "Dire Wolf", "hit_points": 37, "challenge_rating": 1}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLookup_ExactMatch(t *testing.T) {
	server := newSRDServer(t, nil)
	client := NewClient(server.URL, testLogger())

	raw, err := client.Lookup(context.Background(), "monsters", "Goblin")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"hit_points": 7`)
}

func TestLookup_CaseInsensitiveAndPartial(t *testing.T) {
	server := newSRDServer(t, nil)
	client := NewClient(server.URL, testLogger())

	// Partial name falls back to substring match.
	raw, err := client.Lookup(context.Background(), "monsters", "dire")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"index": "dire-wolf"`)
}

func TestLookup_NotFound(t *testing.T) {
	server := newSRDServer(t, nil)
	client := NewClient(server.URL, testLogger())

	_, err := client.Lookup(context.Background(), "monsters", "tarrasque")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookup_UnknownCategory(t *testing.T) {
	server := newSRDServer(t, nil)
	client := NewClient(server.URL, testLogger())

	_, err := client.Lookup(context.Background(), "vehicles", "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndexIsCached(t *testing.T) {
	var indexHits atomic.Int32
	server := newSRDServer(t, &indexHits)
	client := NewClient(server.URL, testLogger())

	for i := 0; i < 3; i++ {
		_, err := client.Lookup(context.Background(), "monsters", "Goblin")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), indexHits.Load(), "the category index is fetched once per process")
}

func TestMonsterBlock(t *testing.T) {
	server := newSRDServer(t, nil)
	client := NewClient(server.URL, testLogger())

	record, err := client.MonsterBlock(context.Background(), "goblin")
	require.NoError(t, err)
	assert.Equal(t, "goblin", record.Index)
	assert.Equal(t, 7, record.HitPoints)
	assert.Equal(t, 15, record.AC())
	assert.Equal(t, 0.25, record.ChallengeRating)
}

func TestMonsterRecord_ACDefault(t *testing.T) {
	server := newSRDServer(t, nil)
	client := NewClient(server.URL, testLogger())

	record, err := client.MonsterBlock(context.Background(), "dire wolf")
	require.NoError(t, err)
	assert.Equal(t, 10, record.AC(), "records without armor class default to 10")
}

func TestHasMonster(t *testing.T) {
	server := newSRDServer(t, nil)
	client := NewClient(server.URL, testLogger())

	assert.True(t, client.HasMonster(context.Background(), "veteran"))
	assert.False(t, client.HasMonster(context.Background(), "lich"))
}
