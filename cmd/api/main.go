package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dungeonmaster/internal/agents"
	"dungeonmaster/internal/config"
	"dungeonmaster/internal/director"
	"dungeonmaster/internal/handlers"
	"dungeonmaster/internal/logger"
	"dungeonmaster/internal/middleware"
	"dungeonmaster/internal/services"
	"dungeonmaster/internal/srd"
	"dungeonmaster/internal/storage"
	"dungeonmaster/pkg/combat"
	"dungeonmaster/pkg/npc"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Dungeon Master API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Error("Anthropic API key is required when using anthropic provider")
			os.Exit(1)
		}
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
		log.Info("Using Anthropic LLM provider")
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"anthropic"})
		os.Exit(1)
	}

	store := storage.NewRedisStorage(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	srdClient := srd.NewClient(cfg.SRDBaseURL, log)
	resolver := npc.NewResolver(srdClient, log)
	monsters := director.NewMonsterSource(srdClient, resolver, log)
	combatMgr := combat.NewManager(store, monsters, log)

	runtime := agents.NewLLMRuntime(llmService, log)
	sessionMgr := agents.NewManager(runtime, cfg.InvokeTimeout, log)

	coordinator := director.New(store, sessionMgr, combatMgr, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	actionHandler := handlers.NewActionHandler(coordinator, cfg.InvokeTimeout+30*time.Second, log)
	mux.Handle("/v1/campaigns", actionHandler)
	mux.Handle("/v1/campaigns/{id}/action", actionHandler)

	encounterHandler := handlers.NewEncounterHandler(combatMgr, log)
	mux.Handle("/v1/campaigns/{id}/encounter", encounterHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
