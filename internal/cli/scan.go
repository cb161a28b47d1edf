package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridical/veridical/internal/pipeline"
)

var scanTimeout time.Duration

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Fetch an article URL and validate its metric claims",
	Long: `Scan fetches a web page (honoring robots.txt and per-domain rate limits),
reduces it to visible text, extracts its metric claims and validates them
against the reference table.

Example:
  veridical scan https://example.com/norway-economy --llm-provider openai
  veridical scan https://example.com/article --json report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&dataPath, "data", "", "reference table CSV path (overrides config)")
	scanCmd.Flags().StringVar(&outJSON, "json", "", "write the full JSON report to this path (\"-\" for stdout)")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 2*time.Minute, "overall scan timeout")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction cache (force fresh extraction)")

	// LLM flags
	scanCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	scanCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	scanCmd.Flags().BoolVar(&summaries, "summaries", false, "generate an LLM summary of the results")
}

func runScan(cmd *cobra.Command, args []string) error {
	url := args[0]

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	store, err := loadStore(cfg)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, store)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", url)
	}

	report, err := p.ScanURL(ctx, url)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Evaluated %d country groups\n", len(report.Metrics))
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Pretty)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return err
		}
	}
	renderer.RenderSummary(report)

	return nil
}
