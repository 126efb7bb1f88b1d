package core

import (
	"time"

	"benchkit/internal/stats"
)

// Threshold is a pass/fail bound for one metric. For prefers-smaller
// metrics Max is the worst acceptable value; for prefers-larger metrics
// Min is the lowest acceptable value. Zero fields are not checked.
// Values are compared at the configured percentile of the final
// distribution.
type Threshold struct {
	Percentile float64
	Max        int64
	Min        int64
}

// Configuration holds the immutable parameters for one measurement run.
type Configuration struct {
	Metrics          []Metric
	WarmupIterations int
	MaxIterations    int
	MaxDuration      time.Duration
	TimeUnits        stats.Units
	ScalingFactor    int
	TargetRate       int // iterations per second, 0 = unpaced
	Thresholds       map[Metric]Threshold
}

// DefaultConfiguration returns the parameters used when the caller
// leaves the configuration empty.
func DefaultConfiguration() Configuration {
	return Configuration{
		Metrics:          []Metric{WallClock, Throughput},
		WarmupIterations: 0,
		MaxIterations:    1000,
		MaxDuration:      time.Second,
		TimeUnits:        stats.UnitsNanoseconds,
		ScalingFactor:    1,
	}
}

// Benchmark describes one workload to measure. The executor fills the
// hook slots at run start and brackets every measured iteration with
// them; they are cleared again when the run ends.
type Benchmark struct {
	Name   string
	Target string
	Config Configuration

	// CurrentIteration is advanced by the executor before each
	// invocation of RunFn (warmup iterations included in the offset).
	CurrentIteration int

	// RunFn is the workload. It receives the benchmark so it can read
	// CurrentIteration, report custom metrics, or fail the run.
	RunFn func(b *Benchmark)

	// Hook slots, filled in by the executor for the duration of a run.
	BeforeMeasurement func()
	AfterMeasurement  func()

	// CustomMetric is installed by the executor; RecordCustom routes
	// through it.
	CustomMetric func(value int64)

	// Failed is the cooperative failure flag. Once set the executor
	// aborts and discards all partial results.
	Failed        bool
	FailureReason string
}

// Fail sets the cooperative failure flag.
func (b *Benchmark) Fail(reason string) {
	b.Failed = true
	b.FailureReason = reason
}

// RecordCustom reports one externally measured sample. Duplicate calls
// during a single iteration accumulate additional samples. No-op when
// the custom metric was not requested.
func (b *Benchmark) RecordCustom(value int64) {
	if b.CustomMetric != nil {
		b.CustomMetric(value)
	}
}
