package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridical/veridical/internal/model"
	"github.com/veridical/veridical/internal/pipeline"
	"github.com/veridical/veridical/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Validate every text file in a directory in parallel",
	Long: `Batch evaluates all .txt files in a directory concurrently:
- Each file is extracted and validated independently
- Files are processed in parallel with a configurable worker count
- One JSON report is written per input file

Example:
  veridical batch ./articles
  veridical batch ./articles --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./veridical-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&dataPath, "data", "", "reference table CSV path (overrides config)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction cache")

	// LLM flags
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	batchCmd.Flags().BoolVar(&summaries, "summaries", false, "generate an LLM summary per file")
}

// evalJob validates one text file through the shared pipeline
type evalJob struct {
	path     string
	pipeline *pipeline.Pipeline
	renderer *pipeline.Renderer
	outDir   string
}

// evalResult implements worker.Result
type evalResult struct {
	path   string
	report *model.Report
	err    error
}

func (r evalResult) Err() error { return r.err }

func (j evalJob) Execute(ctx context.Context) worker.Result {
	data, err := os.ReadFile(j.path)
	if err != nil {
		return evalResult{path: j.path, err: fmt.Errorf("read %s: %w", j.path, err)}
	}

	report, err := j.pipeline.EvaluateText(ctx, string(data))
	if err != nil {
		return evalResult{path: j.path, err: fmt.Errorf("evaluate %s: %w", j.path, err)}
	}
	report.Source = j.path

	base := strings.TrimSuffix(filepath.Base(j.path), filepath.Ext(j.path))
	outPath := filepath.Join(j.outDir, base+".json")
	if err := j.renderer.RenderJSON(report, outPath); err != nil {
		return evalResult{path: j.path, err: err}
	}

	return evalResult{path: j.path, report: report}
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	store, err := loadStore(cfg)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, store)
	if err != nil {
		return err
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return fmt.Errorf("list inputs: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .txt files in %s", dir)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Evaluating %d files with %d workers\n", len(paths), cfg.Concurrency.Workers)

	renderer := pipeline.NewRenderer(cfg.Output.Pretty)

	pool := worker.NewPool(cfg.Concurrency.Workers)
	pool.Start()
	for _, path := range paths {
		pool.Submit(evalJob{path: path, pipeline: p, renderer: renderer, outDir: outputDir})
	}

	done := make(chan []worker.Result, 1)
	go func() { done <- pool.Wait() }()

	var results []worker.Result
	select {
	case results = <-done:
	case <-time.After(batchTimeout):
		pool.Shutdown()
		return fmt.Errorf("batch timed out after %v", batchTimeout)
	}

	failed := 0
	for _, r := range results {
		if err := r.Err(); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Done: %d succeeded, %d failed, reports in %s\n",
		len(results)-failed, failed, outputDir)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
