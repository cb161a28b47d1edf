package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/veridical/veridical/internal/model"
	"github.com/veridical/veridical/internal/refstore"
)

// Flags shared by the evaluation commands
var (
	dataPath    string
	outJSON     string
	noCache     bool
	llmProvider string
	llmModel    string
	summaries   bool
)

// buildConfig assembles the runtime configuration from defaults, the config
// file and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if dataPath != "" {
		cfg.Store.Path = dataPath
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.Verbose = verbose

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if summaries {
		cfg.LLM.Summaries = true
	}

	// API keys come from the environment, never from config files
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

// loadStore loads the reference table named by the configuration
func loadStore(cfg *model.Config) (*refstore.Store, error) {
	store, err := refstore.LoadCSV(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded reference table: %d rows, %d countries\n",
			store.Len(), len(store.Countries()))
	}
	return store, nil
}
