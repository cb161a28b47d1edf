package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/veridical/veridical/internal/model"
)

// Renderer writes evaluation reports
type Renderer struct {
	pretty bool
}

// NewRenderer creates a renderer
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// RenderJSON writes the report as JSON to path, or to stdout when path is "-"
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	var data []byte
	var err error
	if r.pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints a per-claim verdict table to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	for _, cr := range report.Metrics {
		fmt.Printf("%s\n", cr.Country)
		for _, v := range cr.Result {
			mark := "✗"
			if v.IsValid {
				mark = "✓"
			}
			if v.Claim != nil {
				fmt.Printf("  %s %s = %s", mark, v.Claim.MetricName, v.Claim.MetricValue)
				if v.TimeKey != "" {
					fmt.Printf(" [%s]", v.TimeKey)
				}
				fmt.Printf(" %s\n", v.Outcome)
			} else {
				fmt.Printf("  %s %s\n", mark, v.Outcome)
			}
		}
	}
	if report.LLM != nil && report.LLM.SummaryMD != "" {
		fmt.Printf("\nSummary (%s/%s):\n%s\n", report.LLM.Provider, report.LLM.Model, report.LLM.SummaryMD)
	}
}
