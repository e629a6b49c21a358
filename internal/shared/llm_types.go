package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// AgentMeta holds operational metadata for one LLM-backed operation, named
// after the agent that ran it ("Generator", "Clipper").
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}
