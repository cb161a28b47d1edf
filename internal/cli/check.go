package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridical/veridical/internal/pipeline"
)

var checkTimeout time.Duration

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file|->",
	Short: "Validate the metric claims in a text file",
	Long: `Check reads a text (from a file, or stdin with "-"), extracts its metric
claims with the configured LLM provider, and validates each claim against
the reference table.

Example:
  veridical check article.txt --llm-provider openai
  cat article.txt | veridical check - --json report.json
  veridical check article.txt --data cleaned_data.csv --summaries`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&dataPath, "data", "", "reference table CSV path (overrides config)")
	checkCmd.Flags().StringVar(&outJSON, "json", "", "write the full JSON report to this path (\"-\" for stdout)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall evaluation timeout")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction cache (force fresh extraction)")

	// LLM flags
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	checkCmd.Flags().BoolVar(&summaries, "summaries", false, "generate an LLM summary of the results")
}

func runCheck(cmd *cobra.Command, args []string) error {
	text, err := readInput(args[0])
	if err != nil {
		return err
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Evaluating %d bytes of text\n", len(text))
	}

	report, err := p.EvaluateText(ctx, text)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
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

// readInput loads the source text from a file, or stdin for "-"
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
