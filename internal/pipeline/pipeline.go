// Package pipeline composes extraction, validation and rendering into the
// complete text evaluation flow.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/veridical/veridical/internal/cache"
	"github.com/veridical/veridical/internal/extract"
	"github.com/veridical/veridical/internal/fetch"
	"github.com/veridical/veridical/internal/llm"
	"github.com/veridical/veridical/internal/model"
	"github.com/veridical/veridical/internal/refstore"
	"github.com/veridical/veridical/internal/validate"
)

// Pipeline orchestrates the complete evaluation process
type Pipeline struct {
	fetcher      *fetch.Fetcher
	extractor    *extract.Extractor
	orchestrator *validate.Orchestrator
	extractCache cache.Cache // nil when caching is disabled
	provider     llm.Provider
	config       *model.Config
}

// NewPipeline creates a pipeline over the given reference store
func NewPipeline(cfg *model.Config, store *refstore.Store) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	var extractCache cache.Cache
	if cfg.Cache.Enabled {
		extractCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		fetcher:      fetch.NewFetcher(cfg.HTTP),
		extractor:    extract.NewExtractor(provider),
		orchestrator: validate.NewOrchestrator(store),
		extractCache: extractCache,
		provider:     provider,
		config:       cfg,
	}, nil
}

// EvaluateText extracts metric claims from the text and validates them
// against the reference store
func (p *Pipeline) EvaluateText(ctx context.Context, text string) (*model.Report, error) {
	groups, fromCache, err := p.extractGroups(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}

	metrics, err := p.orchestrator.Validate(text, groups)
	if err != nil {
		return nil, fmt.Errorf("validate claims: %w", err)
	}

	report := &model.Report{
		EvaluatedAt: time.Now().UTC(),
		Text:        text,
		Metrics:     metrics,
		FromCache:   fromCache,
	}

	// Optional narrative, generated after validation and never affecting it
	if p.config.LLM.Summaries && p.provider != nil {
		resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
			Prompt:      llm.BuildSummaryPrompt(metrics),
			Temperature: 0.3,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: summary generation failed: %v\n", err)
		} else {
			report.LLM = &model.LLMSummary{
				Provider:  p.provider.Name(),
				Model:     resp.Model,
				SummaryMD: resp.Text,
			}
		}
	}

	return report, nil
}

// ScanURL fetches the page at url and evaluates its visible text
func (p *Pipeline) ScanURL(ctx context.Context, url string) (*model.Report, error) {
	fetched, err := p.fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	report, err := p.EvaluateText(ctx, fetched.Text)
	if err != nil {
		return nil, err
	}
	report.Source = fetched.FinalURL
	return report, nil
}

// extractGroups runs LLM extraction, consulting the cache first so repeated
// evaluations of identical text skip the provider round-trip
func (p *Pipeline) extractGroups(ctx context.Context, text string) ([]model.ClaimGroup, bool, error) {
	key := cache.Key(text)

	if p.extractCache != nil {
		if data, found := p.extractCache.Get(key); found {
			var groups []model.ClaimGroup
			if err := json.Unmarshal(data, &groups); err == nil {
				return groups, true, nil
			}
			// Corrupt entry: drop it and re-extract
			_ = p.extractCache.Delete(key)
		}
	}

	groups, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return nil, false, err
	}

	if p.extractCache != nil {
		if data, err := json.Marshal(groups); err == nil {
			_ = p.extractCache.Set(key, data, 0)
		}
	}

	return groups, false, nil
}
