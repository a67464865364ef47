package llm

import "context"

// Message is one turn of a model conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Options tune a single completion call.
type Options struct {
	MaxTokens   int
	Temperature float64
	System      string
}

// TextGenerator is the text-generation collaborator contract. Implementations
// return a generic error on transport, API, or empty-response failures; no
// finer error taxonomy is promised.
type TextGenerator interface {
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}
