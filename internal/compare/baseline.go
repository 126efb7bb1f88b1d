package compare

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"benchkit/internal/core"
	"benchkit/internal/stats"
)

// Baseline maps metric descriptions to the p90 value recorded by a
// previous run's JSON report.
type Baseline map[string]int64

// LoadBaseline reads a stored JSON report and extracts per-metric p90
// values for regression comparison.
func LoadBaseline(path string) (Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading baseline file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON in baseline file %s", path)
	}

	base := make(Baseline)
	gjson.GetBytes(data, "results").ForEach(func(_, v gjson.Result) bool {
		metric := v.Get("metric").String()
		if metric != "" {
			base[metric] = v.Get("p90").Int()
		}
		return true
	})

	if len(base) == 0 {
		return nil, fmt.Errorf("baseline file %s contains no results", path)
	}
	return base, nil
}

// CompareBaseline checks the current run against a baseline with a
// relative tolerance in percent. Metrics absent from the baseline are
// skipped; polarity decides the direction of the comparison.
func CompareBaseline(current []core.Result, base Baseline, tolerancePct float64) *ThresholdResults {
	out := &ThresholdResults{
		Passed:  true,
		Results: make([]ThresholdResult, 0),
	}

	for _, r := range current {
		want, ok := base[r.Metric.String()]
		if !ok {
			continue
		}
		actual := r.Scaled(r.Statistics.Percentile(defaultPercentile))

		var passed bool
		var bound int64
		if r.Metric.Polarity() == stats.PrefersLarger {
			bound = int64(float64(want) * (1 - tolerancePct/100))
			passed = actual >= bound
		} else {
			bound = int64(float64(want) * (1 + tolerancePct/100))
			passed = actual <= bound
		}

		if !passed {
			out.Passed = false
		}
		out.Results = append(out.Results, ThresholdResult{
			Name:      fmt.Sprintf("%s.p%d", r.Metric.String(), defaultPercentile),
			Passed:    passed,
			Threshold: fmt.Sprintf("%d", bound),
			Actual:    fmt.Sprintf("%d", actual),
		})
	}

	return out
}
