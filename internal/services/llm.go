package services

import (
	"context"

	"dungeonmaster/pkg/chat"
)

// LLMService defines the interface for text generation. The
// orchestration core treats generation as an opaque capability.
type LLMService interface {
	// Chat generates a response to the conversation.
	Chat(ctx context.Context, messages []chat.ChatMessage) (string, error)
}
