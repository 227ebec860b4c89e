// Package llm provides a provider-agnostic chat client used by the
// structured-call layer. Providers normalize their SDK types into the
// small surface defined here.
package llm

import (
	"context"
	"fmt"
)

// MessageRole represents the role of a chat message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is the provider-agnostic message we pass around.
type ChatMessage struct {
	Role    MessageRole
	Content string
}

// Validate checks if the ChatMessage is valid.
func (m ChatMessage) Validate() error {
	switch m.Role {
	case RoleSystem, RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("invalid message role: %s", m.Role)
	}
}

// Usage holds token accounting returned by providers.
type Usage struct {
	Prompt     int
	Completion int
	Total      int
}

// Response is a normalized result of one chat call.
type Response struct {
	Content      string
	Usage        Usage
	FinishReason string // "stop" | "length" | "content_filter"
}

// ChatOptions keeps knobs forwarded to the SDK.
type ChatOptions struct {
	Temperature     float32
	MaxOutputTokens int
}

// Client abstracts the chosen SDK (OpenAI, Anthropic, etc.).
type Client interface {
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (Response, error)
}

// ClientFunc adapts a plain function to the Client interface. Tests use it
// to script canned response sequences.
type ClientFunc func(ctx context.Context, messages []ChatMessage, opts ChatOptions) (Response, error)

func (f ClientFunc) Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (Response, error) {
	return f(ctx, messages, opts)
}
