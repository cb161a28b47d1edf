package llm

import (
	"strings"
	"testing"
	"time"

	"github.com/veridical/veridical/internal/model"
)

func TestResolveModel(t *testing.T) {
	cfg := Config{Model: "configured"}

	if got := cfg.resolveModel(CompletionRequest{Model: "per-request"}, "fallback"); got != "per-request" {
		t.Errorf("Expected per-request model to win, got %q", got)
	}
	if got := cfg.resolveModel(CompletionRequest{}, "fallback"); got != "configured" {
		t.Errorf("Expected configured model, got %q", got)
	}
	if got := (Config{}).resolveModel(CompletionRequest{}, "fallback"); got != "fallback" {
		t.Errorf("Expected fallback model, got %q", got)
	}
}

func TestResolveMaxTokens(t *testing.T) {
	cfg := Config{MaxTokens: 500}

	if got := cfg.resolveMaxTokens(CompletionRequest{MaxTokens: 100}); got != 100 {
		t.Errorf("Expected request budget to win, got %d", got)
	}
	if got := cfg.resolveMaxTokens(CompletionRequest{}); got != 500 {
		t.Errorf("Expected configured budget, got %d", got)
	}
	if got := (Config{}).resolveMaxTokens(CompletionRequest{}); got != 3000 {
		t.Errorf("Expected default budget, got %d", got)
	}
}

func TestRequestTimeout(t *testing.T) {
	if got := (Config{Timeout: 10}).requestTimeout(time.Minute); got != 10*time.Second {
		t.Errorf("Expected 10s, got %v", got)
	}
	if got := (Config{}).requestTimeout(time.Minute); got != time.Minute {
		t.Errorf("Expected fallback, got %v", got)
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("Expected no error for disabled provider, got %v", err)
	}
	if provider != nil {
		t.Error("Expected nil provider when no provider is configured")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "cohere"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestNewProvider_MissingKeys(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("Expected error for openai without API key")
	}
	if _, err := NewProvider(Config{Provider: "anthropic"}); err == nil {
		t.Error("Expected error for anthropic without API key")
	}
}

func TestNewProvider_ClaudeAlias(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "claude", APIKey: "sk-ant-test"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider.Name() != "anthropic" {
		t.Errorf("Expected anthropic provider for claude alias, got %q", provider.Name())
	}
}

func TestBuildSummaryPrompt(t *testing.T) {
	results := []model.CountryResult{{
		Country: "Norway",
		Result: []model.ValidationResult{{
			Claim:   &model.Claim{MetricName: "Retail Trade Growth", MetricValue: "5.6"},
			Outcome: model.OutcomeValid,
			Message: model.OutcomeValid.Message(),
		}},
	}}

	prompt := BuildSummaryPrompt(results)
	if !strings.Contains(prompt, "Norway") {
		t.Error("Expected country name in prompt")
	}
	if !strings.Contains(prompt, "Retail Trade Growth = 5.6") {
		t.Error("Expected claim detail in prompt")
	}
	if !strings.Contains(prompt, string(model.OutcomeValid)) {
		t.Error("Expected outcome in prompt")
	}
}
