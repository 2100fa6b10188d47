package ai

import (
	"fmt"

	"github.com/keshon/soul-engine/internal/config"
)

// Message is one chat-completion turn, in the OpenAI-style role/content shape.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is a chat-completion backend. It is an external collaborator
// the engine core never imports directly; only internal/llmeval does.
type Provider interface {
	Generate(messages []Message) (string, error)
}

// DefaultProvider selects a Provider from Config.AIProvider.
func DefaultProvider(cfg *config.Config) (Provider, error) {
	switch cfg.AIProvider {
	case "pollinations":
		return NewPollinationsProvider(), nil
	case "g4f":
		return NewG4FProvider("g4f:gpt-oss-120b"), nil
	case "fake", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER: %s", cfg.AIProvider)
	}
}
