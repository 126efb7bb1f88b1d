// Package compare evaluates finalized results against configured
// thresholds and stored baselines. It is the downstream consumer of the
// polarity tag carried by each metric.
package compare

import (
	"fmt"

	"benchkit/internal/core"
	"benchkit/internal/stats"
)

// defaultPercentile is the distribution point thresholds are checked at
// when the configuration does not name one.
const defaultPercentile = 90

// ThresholdResult represents the outcome of a single threshold check.
type ThresholdResult struct {
	Name      string `json:"name"`
	Passed    bool   `json:"passed"`
	Threshold string `json:"threshold"`
	Actual    string `json:"actual"`
}

// ThresholdResults contains all threshold check results.
type ThresholdResults struct {
	Passed  bool              `json:"passed"`
	Results []ThresholdResult `json:"results"`
}

// CheckThresholds evaluates every result that carries a threshold.
// Results without thresholds are skipped.
func CheckThresholds(results []core.Result) *ThresholdResults {
	out := &ThresholdResults{
		Passed:  true,
		Results: make([]ThresholdResult, 0),
	}

	for _, r := range results {
		t := r.Threshold
		if t == nil {
			continue
		}
		p := t.Percentile
		if p <= 0 {
			p = defaultPercentile
		}
		actual := r.Scaled(r.Statistics.Percentile(p))

		var passed bool
		var bound int64
		if r.Metric.Polarity() == stats.PrefersLarger {
			if t.Min == 0 {
				continue
			}
			bound = t.Min
			passed = actual >= bound
		} else {
			if t.Max == 0 {
				continue
			}
			bound = t.Max
			passed = actual <= bound
		}

		if !passed {
			out.Passed = false
		}
		out.Results = append(out.Results, ThresholdResult{
			Name:      fmt.Sprintf("%s.p%g", r.Metric.String(), p),
			Passed:    passed,
			Threshold: fmt.Sprintf("%d", bound),
			Actual:    fmt.Sprintf("%d", actual),
		})
	}

	return out
}

// Violations returns only the failed threshold results.
func (r *ThresholdResults) Violations() []ThresholdResult {
	violations := make([]ThresholdResult, 0)
	for _, result := range r.Results {
		if !result.Passed {
			violations = append(violations, result)
		}
	}
	return violations
}
