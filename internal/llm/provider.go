package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/veridical/veridical/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates a completion for the given request
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for a completion
type CompletionRequest struct {
	// System is the system instruction (empty for providers without one)
	System string

	// Prompt is the user prompt
	Prompt string

	// Model is the specific model to use (provider-specific, empty = default)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls randomness; extraction wants it low
	Temperature float32
}

// CompletionResponse contains the provider's output
type CompletionResponse struct {
	// Text is the raw completion text
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 3000,
	}
}

// resolveModel picks the model for a request: per-request override, then
// the configured model, then the provider's default
func (c Config) resolveModel(req CompletionRequest, fallback string) string {
	if req.Model != "" {
		return req.Model
	}
	if c.Model != "" {
		return c.Model
	}
	return fallback
}

// resolveMaxTokens picks the response token budget for a request
func (c Config) resolveMaxTokens(req CompletionRequest) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return 3000
}

// requestTimeout converts the configured timeout, falling back when unset
func (c Config) requestTimeout(fallback time.Duration) time.Duration {
	if c.Timeout > 0 {
		return time.Duration(c.Timeout) * time.Second
	}
	return fallback
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:  modelConfig.Provider,
		Model:     modelConfig.Model,
		APIKey:    modelConfig.APIKey,
		BaseURL:   modelConfig.BaseURL,
		Timeout:   modelConfig.Timeout,
		MaxTokens: modelConfig.MaxTokens,
	}
}

// BuildSummaryPrompt constructs the prompt for the optional per-report
// summary. The summary never affects validation outcomes.
func BuildSummaryPrompt(results []model.CountryResult) string {
	prompt := "Generate a short report on the metric validation results below. " +
		"Describe, per country, which reported values matched the reference data and which did not. " +
		"Do not speculate beyond the data.\n\n"
	for _, cr := range results {
		prompt += fmt.Sprintf("Country: %s\n", cr.Country)
		for _, r := range cr.Result {
			if r.Claim != nil {
				prompt += fmt.Sprintf("- %s = %s (%s): %s\n",
					r.Claim.MetricName, r.Claim.MetricValue, r.Outcome, r.Message)
			} else {
				prompt += fmt.Sprintf("- %s: %s\n", r.Outcome, r.Message)
			}
		}
	}
	return prompt
}
