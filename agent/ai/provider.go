package ai

import (
	"context"
	"encoding/json"
)

// Message is a single conversation turn sent to the provider.
type Message struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
}

// ToolCall represents a tool invocation requested by the model.
type ToolCall struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// ToolDefinition describes a tool available to the model for routing.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// ChatRequest represents a request to the AI provider.
type ChatRequest struct {
	Messages  []Message        `json:"messages"`
	Tools     []ToolDefinition `json:"tools,omitempty"`
	System    string           `json:"system,omitempty"`
	MaxTokens int              `json:"max_tokens,omitempty"`
	Model     string           `json:"model,omitempty"` // Model override
}

// ChatResponse holds the first choice of a completion: the model's own text
// plus any tool calls it decided on.
type ChatResponse struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Provider interface for AI providers. Complete issues a single
// chat-completion request and reads back the first choice. This is the only
// suspension point in an agent turn; callers bound it with a context
// deadline.
type Provider interface {
	// ID returns the provider identifier (e.g., "openai")
	ID() string

	// Complete sends a request and returns the first choice
	Complete(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// ProviderError represents an error from a provider.
type ProviderError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string {
	return e.Message
}
