package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridical/veridical/internal/pipeline"
	"github.com/veridical/veridical/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP evaluation service",
	Long: `Serve loads the reference table once and exposes the evaluation pipeline
over HTTP:

  POST /evaluate   {"text": "..."}  validate the metric claims in a text
  GET  /countries  list the known countries
  GET  /healthz    liveness and table size

Example:
  veridical serve --addr :8000 --llm-provider openai`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config, default :8000)")
	serveCmd.Flags().StringVar(&dataPath, "data", "", "reference table CSV path (overrides config)")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction cache")

	// LLM flags
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	serveCmd.Flags().BoolVar(&summaries, "summaries", false, "generate an LLM summary per request")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	store, err := loadStore(cfg)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, store)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	return server.New(cfg.Server, p, store).Run()
}
