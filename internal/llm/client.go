// Package llm wraps text-generation providers behind one small interface.
package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

// Request describes one completion. A negative Temperature leaves the
// provider default in place.
type Request struct {
	Model       string
	System      []string
	Messages    []Message
	MaxTokens   int32
	Temperature float32
	TopP        float32
	// JSON asks the provider for a JSON-only reply where supported.
	JSON bool
}

type Response struct {
	Text       string
	Usage      TokenUsage
	StopReason string
}

// Client generates text.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
