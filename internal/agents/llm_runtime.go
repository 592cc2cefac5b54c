package agents

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"dungeonmaster/internal/services"
	"dungeonmaster/pkg/chat"
)

// LLMRuntime implements Runtime over an LLMService. Each session holds
// its own message history; sessions never share state.
type LLMRuntime struct {
	llm    services.LLMService
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*llmSession
}

type llmSession struct {
	specialist *Specialist
	messages   []chat.ChatMessage
}

var _ Runtime = (*LLMRuntime)(nil)

func NewLLMRuntime(llm services.LLMService, logger *slog.Logger) *LLMRuntime {
	return &LLMRuntime{
		llm:      llm,
		logger:   logger,
		sessions: make(map[string]*llmSession),
	}
}

func (r *LLMRuntime) CreateSession(ctx context.Context, sessionID string, specialist *Specialist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[sessionID]; exists {
		return fmt.Errorf("session %q already exists", sessionID)
	}

	r.sessions[sessionID] = &llmSession{
		specialist: specialist,
		messages: []chat.ChatMessage{
			{Role: chat.ChatRoleSystem, Content: specialist.SystemPrompt},
		},
	}

	r.logger.Debug("Session created", "session_id", sessionID, "specialist", specialist.Name)
	return nil
}

func (r *LLMRuntime) DeleteSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[sessionID]; !exists {
		return fmt.Errorf("session %q does not exist", sessionID)
	}
	delete(r.sessions, sessionID)

	r.logger.Debug("Session deleted", "session_id", sessionID)
	return nil
}

// RunTurn sends the payload through the session's conversation and
// emits the specialist's answer as a single final event. The channel
// is closed when the run finishes.
func (r *LLMRuntime) RunTurn(ctx context.Context, sessionID string, payload *Payload) (<-chan TurnEvent, error) {
	r.mu.Lock()
	session, exists := r.sessions[sessionID]
	if !exists {
		r.mu.Unlock()
		return nil, fmt.Errorf("session %q does not exist", sessionID)
	}
	session.messages = append(session.messages, chat.ChatMessage{
		Role:    chat.ChatRoleUser,
		Content: payload.Format(),
	})
	messages := append([]chat.ChatMessage(nil), session.messages...)
	r.mu.Unlock()

	events := make(chan TurnEvent, 1)
	go func() {
		defer close(events)

		response, err := r.llm.Chat(ctx, messages)
		if err != nil {
			events <- TurnEvent{Err: err}
			return
		}
		if response == "" {
			// Close without a final event; the caller substitutes
			// its placeholder.
			return
		}

		r.mu.Lock()
		if s, ok := r.sessions[sessionID]; ok {
			s.messages = append(s.messages, chat.ChatMessage{
				Role:    chat.ChatRoleAgent,
				Content: response,
			})
		}
		r.mu.Unlock()

		events <- TurnEvent{Content: response, Final: true}
	}()

	return events, nil
}

// SessionCount returns the number of live sessions. Used by health
// reporting and tests.
func (r *LLMRuntime) SessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
