package srd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a category or key has no SRD record.
var ErrNotFound = errors.New("reference data not found")

const apiPrefix = "/api/2014"

// IndexEntry is one row of a category index.
type IndexEntry struct {
	Index string `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

type indexResponse struct {
	Count   int          `json:"count"`
	Results []IndexEntry `json:"results"`
}

// Client is a read-only, caching lookup client for the D&D 5e SRD API.
// Category indexes are fetched once and cached for the process
// lifetime; the reference data is static.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	mu      sync.Mutex
	indexes map[string][]IndexEntry
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:  logger,
		indexes: make(map[string][]IndexEntry),
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SRD request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// index returns the cached category index, fetching it on first use.
func (c *Client) index(ctx context.Context, category string) ([]IndexEntry, error) {
	c.mu.Lock()
	if cached, ok := c.indexes[category]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	var resp indexResponse
	if err := c.getJSON(ctx, apiPrefix+"/"+category, &resp); err != nil {
		return nil, fmt.Errorf("fetching index for %q: %w", category, err)
	}

	c.logger.Debug("Cached SRD index", "category", category, "entries", len(resp.Results))

	c.mu.Lock()
	c.indexes[category] = resp.Results
	c.mu.Unlock()

	return resp.Results, nil
}

// search finds an index entry by name: exact match first, then
// substring match. Both are case-insensitive.
func search(name string, entries []IndexEntry) (IndexEntry, bool) {
	query := strings.ToLower(name)
	for _, e := range entries {
		if query == strings.ToLower(e.Name) {
			return e, true
		}
	}
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), query) {
			return e, true
		}
	}
	return IndexEntry{}, false
}

// Lookup fetches the full record for a named item in a category.
// Returns ErrNotFound when the name matches nothing in the index.
func (c *Client) Lookup(ctx context.Context, category, name string) (json.RawMessage, error) {
	entries, err := c.index(ctx, category)
	if err != nil {
		return nil, err
	}

	entry, ok := search(name, entries)
	if !ok {
		return nil, fmt.Errorf("%w: %q in category %q", ErrNotFound, name, category)
	}

	var record json.RawMessage
	if err := c.getJSON(ctx, entry.URL, &record); err != nil {
		return nil, fmt.Errorf("fetching %q: %w", entry.Index, err)
	}
	return record, nil
}
