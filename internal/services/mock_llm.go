package services

import (
	"context"
	"sync"

	"dungeonmaster/pkg/chat"
)

// MockLLM is a mock implementation of LLMService for testing
type MockLLM struct {
	ChatFunc func(ctx context.Context, messages []chat.ChatMessage) (string, error)

	// Track calls for testing
	ChatCalls [][]chat.ChatMessage

	mu sync.Mutex
}

var _ LLMService = (*MockLLM)(nil)

func NewMockLLM() *MockLLM {
	return &MockLLM{
		ChatCalls: make([][]chat.ChatMessage, 0),
	}
}

func (m *MockLLM) Chat(ctx context.Context, messages []chat.ChatMessage) (string, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, messages)
	fn := m.ChatFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}
	return "Mock response", nil
}

// SetChatError sets up the mock to fail every Chat call
func (m *MockLLM) SetChatError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatFunc = func(ctx context.Context, messages []chat.ChatMessage) (string, error) {
		return "", err
	}
}

// CallCount returns the number of Chat calls in a thread-safe way
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ChatCalls)
}
