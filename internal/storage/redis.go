package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"dungeonmaster/pkg/actor"
	"dungeonmaster/pkg/campaign"
)

// RedisStorage implements the Storage interface using Redis.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Storage = (*RedisStorage)(nil)

func NewRedisStorage(redisURL string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisStorage{
		client: rdb,
		logger: logger,
	}
}

func campaignKey(campaignID string) string {
	return "campaign:" + campaignID
}

func characterKey(campaignID, name string) string {
	return "character:" + campaignID + ":" + name
}

func characterPattern(campaignID string) string {
	return "character:" + campaignID + ":*"
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStorage) SaveCampaignState(ctx context.Context, state *campaign.State) error {
	state.UpdatedAt = time.Now()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign state: %w", err)
	}

	if err := r.client.Set(ctx, campaignKey(state.ID), string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save campaign state", "campaign_id", state.ID, "error", err)
		return fmt.Errorf("failed to save campaign state: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadCampaignState(ctx context.Context, campaignID string) (*campaign.State, error) {
	data, err := r.client.Get(ctx, campaignKey(campaignID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("campaign %q: %w", campaignID, ErrNotFound)
		}
		r.logger.Error("Failed to load campaign state", "campaign_id", campaignID, "error", err)
		return nil, fmt.Errorf("failed to load campaign state: %w", err)
	}

	var state campaign.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaign state: %w", err)
	}
	return &state, nil
}

func (r *RedisStorage) DeleteCampaignState(ctx context.Context, campaignID string) error {
	if err := r.client.Del(ctx, campaignKey(campaignID)).Err(); err != nil {
		return fmt.Errorf("failed to delete campaign state: %w", err)
	}
	return nil
}

func (r *RedisStorage) SaveCharacter(ctx context.Context, campaignID string, sheet *actor.CharacterSheet) error {
	if sheet.Name == "" {
		return fmt.Errorf("character name cannot be empty")
	}

	data, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	if err := r.client.Set(ctx, characterKey(campaignID, sheet.Name), string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save character",
			"campaign_id", campaignID, "name", sheet.Name, "error", err)
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadCharacter(ctx context.Context, campaignID, name string) (*actor.CharacterSheet, error) {
	data, err := r.client.Get(ctx, characterKey(campaignID, name)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("character %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load character: %w", err)
	}

	var sheet actor.CharacterSheet
	if err := json.Unmarshal([]byte(data), &sheet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return &sheet, nil
}

func (r *RedisStorage) ListCharacters(ctx context.Context, campaignID string) ([]string, error) {
	keys, err := r.client.Keys(ctx, characterPattern(campaignID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	prefix := "character:" + campaignID + ":"
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, key[len(prefix):])
	}
	return names, nil
}
