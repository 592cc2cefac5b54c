package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisURL string

	LLMProvider     string
	AnthropicAPIKey string
	ModelName       string

	// SRDBaseURL is the base URL of the D&D 5e SRD reference API.
	SRDBaseURL string

	// InvokeTimeout bounds a single specialist invocation.
	InvokeTimeout time.Duration
}

func Load() (*Config, error) {
	invokeTimeout, err := parseDuration(getEnv("INVOKE_TIMEOUT", "90s"))
	if err != nil {
		return nil, fmt.Errorf("invalid INVOKE_TIMEOUT: %w", err)
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		LLMProvider:     getEnv("LLM_PROVIDER", "anthropic"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		ModelName:       getEnv("MODEL_NAME", "claude-sonnet-4-20250514"),
		SRDBaseURL:      getEnv("SRD_BASE_URL", "https://www.dnd5eapi.co"),
		InvokeTimeout:   invokeTimeout,
	}, nil
}

func parseDuration(value string) (time.Duration, error) {
	// Accept plain seconds for convenience
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(value)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
