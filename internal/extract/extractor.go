// Package extract turns free text into candidate metric claims via an LLM
// provider. The engine consumes the result as a black box; nothing here
// affects validation outcomes.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/veridical/veridical/internal/llm"
	"github.com/veridical/veridical/internal/model"
)

const systemInstruction = "You parse unstructured articles about measured country metrics " +
	"into structured JSON. You only output JSON, never prose."

const extractionInstruction = `Extract every measured metric from the article below. Output a JSON array where each element describes one country:
[{"country": "COUNTRY", "country_metrics": [{"metric_name": "METRIC", "metric_value": "VALUE", "metric_month": "MONTH", "metric_year": "YEAR", "metric_source": "SOURCE"}]}]

Rules:
- "metric_value" always contains the number exactly as written in the text, as a string.
- "metric_name" is the indicator name without the country (e.g. "Retail Trade Growth").
- Omit "metric_month", "metric_year" or "metric_source" when the text does not state them.
- Omit "country" only when the article never names the country.
- The returned JSON MUST be valid.

Article:
`

const repairInstruction = "Format the JSON string below to make sure it is valid. Output only the corrected JSON.\n"

// Extractor extracts metric claim groups from text using an LLM provider
type Extractor struct {
	provider llm.Provider
}

// NewExtractor creates an extractor backed by the given provider
func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract runs the extraction prompt and parses the response into claim
// groups. A malformed response gets one repair round-trip through the
// provider before the error is surfaced.
func (e *Extractor) Extract(ctx context.Context, text string) ([]model.ClaimGroup, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured (set llm.provider)")
	}

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      systemInstruction,
		Prompt:      extractionInstruction + text,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction prompt: %w", err)
	}

	groups, parseErr := ParseResponse(resp.Text)
	if parseErr == nil {
		return groups, nil
	}

	// One repair attempt: ask the model to fix its own JSON
	repaired, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      systemInstruction,
		Prompt:      repairInstruction + resp.Text,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("repair prompt after %v: %w", parseErr, err)
	}

	groups, err = ParseResponse(repaired.Text)
	if err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}
	return groups, nil
}

// ParseResponse parses an LLM extraction response into claim groups,
// tolerating code fences, leading prose and single-quoted JSON.
func ParseResponse(text string) ([]model.ClaimGroup, error) {
	cleaned := clean(text)
	if cleaned == "" {
		return nil, fmt.Errorf("empty response")
	}

	var groups []model.ClaimGroup
	if err := json.Unmarshal([]byte(cleaned), &groups); err == nil {
		return groups, nil
	}

	// Some models emit pythonic single quotes
	requoted := strings.ReplaceAll(cleaned, "'", `"`)
	var groups2 []model.ClaimGroup
	if err := json.Unmarshal([]byte(requoted), &groups2); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return groups2, nil
}

// clean strips code fences and anything outside the outermost JSON array
func clean(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
