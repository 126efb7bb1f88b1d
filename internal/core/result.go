package core

import (
	"sort"

	"benchkit/internal/stats"
)

// Result is the finalized outcome for one metric. It is immutable once
// built; the Statistics inside receive no further samples.
type Result struct {
	Metric           Metric
	TimeUnits        stats.Units
	ScalingFactor    int
	WarmupIterations int
	Threshold        *Threshold
	Statistics       *stats.Statistics
}

// Units returns the unit tag the metric's samples carry: the configured
// time unit for duration metrics, dimensionless otherwise.
func (r Result) Units() stats.Units {
	if r.Metric.IsTime() {
		return r.TimeUnits
	}
	return stats.UnitsCount
}

// Scaled converts a raw sample value into the result's reporting unit,
// applying the scaling factor.
func (r Result) Scaled(v int64) int64 {
	d := r.Units().Divisor()
	if r.ScalingFactor > 1 {
		d *= int64(r.ScalingFactor)
	}
	return v / d
}

// SortResults orders results by metric description in descending
// lexical order, the engine's deterministic output ordering.
func SortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Metric.String() > results[j].Metric.String()
	})
}
