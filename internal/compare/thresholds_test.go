package compare

import (
	"testing"

	"benchkit/internal/core"
	"benchkit/internal/stats"
)

func resultWithSamples(m core.Metric, threshold *core.Threshold, samples ...int64) core.Result {
	s := stats.New(stats.UnitsCount, m.Polarity())
	for _, v := range samples {
		s.Add(v)
	}
	return core.Result{
		Metric:        m,
		ScalingFactor: 1,
		Threshold:     threshold,
		Statistics:    s,
	}
}

func TestCheckThresholds_NoThresholdsPasses(t *testing.T) {
	results := []core.Result{resultWithSamples(core.WallClock, nil, 10, 20)}

	checks := CheckThresholds(results)
	if !checks.Passed {
		t.Error("expected pass when no thresholds are configured")
	}
	if len(checks.Results) != 0 {
		t.Errorf("expected no check results, got %d", len(checks.Results))
	}
}

func TestCheckThresholds_SmallerIsBetter(t *testing.T) {
	pass := resultWithSamples(core.WallClock, &core.Threshold{Max: 100}, 50, 60, 70)
	checks := CheckThresholds([]core.Result{pass})
	if !checks.Passed {
		t.Error("expected pass when p90 is under the max")
	}

	fail := resultWithSamples(core.WallClock, &core.Threshold{Max: 10}, 50, 60, 70)
	checks = CheckThresholds([]core.Result{fail})
	if checks.Passed {
		t.Error("expected failure when p90 exceeds the max")
	}
	if len(checks.Violations()) != 1 {
		t.Errorf("expected 1 violation, got %d", len(checks.Violations()))
	}
}

func TestCheckThresholds_LargerIsBetter(t *testing.T) {
	pass := resultWithSamples(core.Throughput, &core.Threshold{Min: 100}, 500, 600)
	if !CheckThresholds([]core.Result{pass}).Passed {
		t.Error("expected pass when throughput p90 is above the min")
	}

	fail := resultWithSamples(core.Throughput, &core.Threshold{Min: 1000}, 500, 600)
	if CheckThresholds([]core.Result{fail}).Passed {
		t.Error("expected failure when throughput p90 is below the min")
	}
}

func TestCheckThresholds_NamedPercentile(t *testing.T) {
	r := resultWithSamples(core.WallClock, &core.Threshold{Percentile: 100, Max: 90}, 10, 20, 100)
	checks := CheckThresholds([]core.Result{r})
	if checks.Passed {
		t.Error("expected failure checking p100 against max 90")
	}
	if checks.Results[0].Name != "wallClock.p100" {
		t.Errorf("unexpected check name %q", checks.Results[0].Name)
	}
}

func TestCheckThresholds_ZeroBoundSkipped(t *testing.T) {
	// A threshold with no Max on a prefers-smaller metric checks nothing.
	r := resultWithSamples(core.WallClock, &core.Threshold{}, 10)
	checks := CheckThresholds([]core.Result{r})
	if !checks.Passed || len(checks.Results) != 0 {
		t.Errorf("expected empty passing checks, got %+v", checks)
	}
}
