package core

import (
	"testing"

	"benchkit/internal/stats"
)

func TestSortResults_DescendingByDescription(t *testing.T) {
	results := []Result{
		{Metric: CPUUser, Statistics: stats.New(stats.UnitsNanoseconds, stats.PrefersSmaller)},
		{Metric: WallClock, Statistics: stats.New(stats.UnitsNanoseconds, stats.PrefersSmaller)},
		{Metric: Throughput, Statistics: stats.New(stats.UnitsCount, stats.PrefersLarger)},
	}

	SortResults(results)

	// wallClock > throughput > cpuUser in descending lexical order.
	want := []Metric{WallClock, Throughput, CPUUser}
	for i, m := range want {
		if results[i].Metric != m {
			t.Errorf("position %d: expected %s, got %s", i, m, results[i].Metric)
		}
	}
}

func TestResult_Units(t *testing.T) {
	r := Result{Metric: WallClock, TimeUnits: stats.UnitsMilliseconds}
	if r.Units() != stats.UnitsMilliseconds {
		t.Errorf("expected time metric to report configured units, got %v", r.Units())
	}

	r = Result{Metric: MallocCountTotal, TimeUnits: stats.UnitsMilliseconds}
	if r.Units() != stats.UnitsCount {
		t.Errorf("expected count metric to be dimensionless, got %v", r.Units())
	}
}

func TestResult_Scaled(t *testing.T) {
	r := Result{Metric: WallClock, TimeUnits: stats.UnitsMicroseconds, ScalingFactor: 1}
	if got := r.Scaled(5_000_000); got != 5000 {
		t.Errorf("expected 5000μs, got %d", got)
	}

	r.ScalingFactor = 10
	if got := r.Scaled(5_000_000); got != 500 {
		t.Errorf("expected 500μs per scaled op, got %d", got)
	}
}
