package llm

import (
	"fmt"
	"strings"
)

// NewProvider builds the configured provider. An empty provider name means
// LLM features are disabled and yields (nil, nil); callers must handle the
// nil provider.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(config)
	case "anthropic", "claude":
		return NewAnthropicProvider(config)
	case "ollama":
		return NewOllamaProvider(config)
	}
	return nil, fmt.Errorf("unknown LLM provider %q (supported: openai, anthropic, ollama)", config.Provider)
}
