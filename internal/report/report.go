// Package report aggregates per-case results into a run summary and renders
// it in the supported output formats.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/erbsland-dev/elcl-conformance/internal/runner"
	"github.com/erbsland-dev/elcl-conformance/internal/types"
)

// CaseReport describes a single non-passing test case in the summary.
type CaseReport struct {
	Status      types.Status `json:"status"`
	Case        string       `json:"case"`
	Differences []string     `json:"differences"`
}

// Summary is the aggregated result of a conformance run. It is derived
// entirely from the per-case results and never persisted.
type Summary struct {
	Result              types.Status `json:"result"`
	Tier                types.Tier   `json:"tier"`
	LangVersion         string       `json:"lang_version"`
	Total               int          `json:"total"`
	Passed              int          `json:"passed"`
	PassedWithDeviation int          `json:"passed_with_deviation"`
	Failed              int          `json:"failed"`
	Percentage          float64      `json:"percentage"`
	Score               int          `json:"score"`
	Failures            []CaseReport `json:"failures"`
}

// Summarize tallies all results into a Summary. Every case contributes to
// the total, including cases where the adapter crashed or timed out.
func Summarize(tier types.Tier, langVersion string, results []runner.Result) *Summary {
	summary := &Summary{
		Result:      types.StatusPass,
		Tier:        tier,
		LangVersion: langVersion,
		Total:       len(results),
		Failures:    []CaseReport{},
	}
	for _, result := range results {
		switch result.Comparison.Status {
		case types.StatusFail:
			summary.Result = types.StatusFail
			summary.Failed++
		case types.StatusPassWithDeviation:
			summary.PassedWithDeviation++
		default:
			summary.Passed++
		}
		summary.Score += result.Comparison.Score
		if result.Comparison.Status != types.StatusPass {
			summary.Failures = append(summary.Failures, CaseReport{
				Status:      result.Comparison.Status,
				Case:        result.Case.Name,
				Differences: result.Comparison.Differences,
			})
		}
	}
	if summary.Total > 0 {
		summary.Percentage = roundPercentage(summary.Passed, summary.Total)
	}
	return summary
}

// Passing returns true if no test case failed.
func (s *Summary) Passing() bool {
	return s.Failed == 0
}

// failureReports returns the non-passing cases with the given status.
func (s *Summary) failureReports(status types.Status) []CaseReport {
	var reports []CaseReport
	for _, report := range s.Failures {
		if report.Status == status {
			reports = append(reports, report)
		}
	}
	return reports
}

// roundPercentage computes count/total as a percentage with two decimals.
func roundPercentage(count, total int) float64 {
	return math.Round(float64(count)/float64(total)*10000) / 100
}

// Renderer renders a summary to a writer. One implementation exists per
// output format; the format decision is made once, not per write.
type Renderer interface {
	Render(w io.Writer, s *Summary) error
}

// NewRenderer returns the renderer for the given format.
func NewRenderer(format types.Format) (Renderer, error) {
	switch format {
	case types.FormatText:
		return &textRenderer{}, nil
	case types.FormatJSON:
		return &jsonRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
