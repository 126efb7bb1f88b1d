// Package stats provides per-metric online sample aggregation.
package stats

import (
	"fmt"
	"sort"
)

// Polarity indicates whether larger or smaller values of a metric are better.
type Polarity int

const (
	PrefersSmaller Polarity = iota
	PrefersLarger
)

func (p Polarity) String() string {
	if p == PrefersLarger {
		return "prefers-larger"
	}
	return "prefers-smaller"
}

// Units describes how raw samples should be reported.
// Time samples are stored in nanoseconds and divided down on output;
// count samples are dimensionless.
type Units int

const (
	UnitsCount Units = iota
	UnitsNanoseconds
	UnitsMicroseconds
	UnitsMilliseconds
	UnitsSeconds
)

// Divisor returns the factor that converts a raw sample into the unit.
func (u Units) Divisor() int64 {
	switch u {
	case UnitsMicroseconds:
		return 1_000
	case UnitsMilliseconds:
		return 1_000_000
	case UnitsSeconds:
		return 1_000_000_000
	default:
		return 1
	}
}

func (u Units) String() string {
	switch u {
	case UnitsNanoseconds:
		return "ns"
	case UnitsMicroseconds:
		return "μs"
	case UnitsMilliseconds:
		return "ms"
	case UnitsSeconds:
		return "s"
	default:
		return "#"
	}
}

// ParseUnits converts a configuration string into a Units value.
func ParseUnits(s string) (Units, error) {
	switch s {
	case "", "count", "#":
		return UnitsCount, nil
	case "ns", "nanoseconds":
		return UnitsNanoseconds, nil
	case "us", "μs", "microseconds":
		return UnitsMicroseconds, nil
	case "ms", "milliseconds":
		return UnitsMilliseconds, nil
	case "s", "seconds":
		return UnitsSeconds, nil
	}
	return UnitsCount, fmt.Errorf("unknown units %q", s)
}

// Statistics is a running sample distribution for a single metric.
// It is NOT safe for concurrent use; all inserts happen on the
// measurement thread.
type Statistics struct {
	samples  []int64
	units    Units
	polarity Polarity
	sorted   bool
}

// New creates an empty Statistics with the given unit and polarity tags.
func New(units Units, polarity Polarity) *Statistics {
	return &Statistics{
		samples:  make([]int64, 0, 1024),
		units:    units,
		polarity: polarity,
		sorted:   true,
	}
}

// Add inserts one sample.
func (s *Statistics) Add(sample int64) {
	s.samples = append(s.samples, sample)
	s.sorted = false
}

// Count returns the number of samples recorded.
func (s *Statistics) Count() int {
	return len(s.samples)
}

func (s *Statistics) Units() Units       { return s.units }
func (s *Statistics) Polarity() Polarity { return s.polarity }

// Min returns the smallest sample, or 0 when empty.
func (s *Statistics) Min() int64 {
	if len(s.samples) == 0 {
		return 0
	}
	s.sort()
	return s.samples[0]
}

// Max returns the largest sample, or 0 when empty.
func (s *Statistics) Max() int64 {
	if len(s.samples) == 0 {
		return 0
	}
	s.sort()
	return s.samples[len(s.samples)-1]
}

// Mean returns the arithmetic mean, truncated to an integer.
func (s *Statistics) Mean() int64 {
	if len(s.samples) == 0 {
		return 0
	}
	var total int64
	for _, v := range s.samples {
		total += v
	}
	return total / int64(len(s.samples))
}

// Percentile returns the value at percentile p (0-100) using the
// nearest-rank method on the sorted sample sequence. p <= 0 returns the
// minimum, p >= 100 the maximum.
func (s *Statistics) Percentile(p float64) int64 {
	if len(s.samples) == 0 {
		return 0
	}
	s.sort()
	if p <= 0 {
		return s.samples[0]
	}
	if p >= 100 {
		return s.samples[len(s.samples)-1]
	}
	index := int(float64(len(s.samples)-1) * p / 100)
	return s.samples[index]
}

func (s *Statistics) sort() {
	if s.sorted {
		return
	}
	sort.Slice(s.samples, func(i, j int) bool {
		return s.samples[i] < s.samples[j]
	})
	s.sorted = true
}
