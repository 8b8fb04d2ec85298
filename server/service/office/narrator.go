package office

import (
	"context"

	"github.com/hrygo/officehours/plugin/ai"
)

// Narrator turns a decided answer into prose.
type Narrator interface {
	Narrate(ctx context.Context, req *NarrationRequest) (string, error)
}

// LLMNarrator narrates with a chat model.
type LLMNarrator struct {
	llm ai.LLMService
}

// NewLLMNarrator creates an LLMNarrator.
func NewLLMNarrator(llm ai.LLMService) *LLMNarrator {
	return &LLMNarrator{llm: llm}
}

func (n *LLMNarrator) Narrate(ctx context.Context, req *NarrationRequest) (string, error) {
	return n.llm.Chat(ctx, ai.FormatMessages(systemPrompt, buildUserPrompt(req)))
}

var _ Narrator = (*LLMNarrator)(nil)
