package llm

import (
	"context"
	"fmt"
)

// Message is one turn of the conversation history.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Request carries everything a provider needs to produce a completion.
type Request struct {
	System    string    // confession system prompt
	History   []Message // short prior conversation, oldest first
	Question  string    // current user question
	MaxTokens int       // 0 means provider default
}

// Provider is the interface for all AI completion backends.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// ProviderError wraps a provider-level failure (timeout, auth, rate limit,
// network). The dispatcher treats any ProviderError as a signal to advance to
// the next provider in the chain.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

const defaultMaxTokens = 1200

func maxTokensOrDefault(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}
