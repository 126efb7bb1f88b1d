// Package core defines the fundamental types of the measurement engine:
// the metric enumeration, the benchmark descriptor, run configuration,
// and result records.
package core

import (
	"fmt"

	"benchkit/internal/stats"
)

// Metric is a measurable quantity. The set is closed so that per-metric
// state can live in dense arrays indexed by the metric's ordinal.
type Metric int

const (
	CPUUser Metric = iota
	CPUSystem
	CPUTotal
	WallClock
	Throughput
	PeakMemoryResident
	PeakMemoryVirtual
	MallocCountSmall
	MallocCountLarge
	MallocCountTotal
	AllocatedResidentMemory
	MemoryLeaked
	ObjectAllocCount
	RetainCount
	ReleaseCount
	RetainReleaseDelta
	SyscallsRead
	SyscallsWrite
	ContextSwitches
	Threads
	ThreadsRunning
	ReadBytesLogical
	WriteBytesLogical
	ReadBytesPhysical
	WriteBytesPhysical
	Custom

	// NumMetrics is the size of a dense per-metric array.
	NumMetrics = int(Custom) + 1
)

// Family groups metrics by the producer that measures them.
type Family int

const (
	FamilyTiming Family = iota
	FamilyAllocation
	FamilyLifecycle
	FamilyOS
	FamilyCustom
)

type metricInfo struct {
	name     string
	family   Family
	polarity stats.Polarity
	isTime   bool
}

var metricTable = [NumMetrics]metricInfo{
	CPUUser:                 {"cpuUser", FamilyOS, stats.PrefersSmaller, true},
	CPUSystem:               {"cpuSystem", FamilyOS, stats.PrefersSmaller, true},
	CPUTotal:                {"cpuTotal", FamilyOS, stats.PrefersSmaller, true},
	WallClock:               {"wallClock", FamilyTiming, stats.PrefersSmaller, true},
	Throughput:              {"throughput", FamilyTiming, stats.PrefersLarger, false},
	PeakMemoryResident:      {"peakMemoryResident", FamilyOS, stats.PrefersSmaller, false},
	PeakMemoryVirtual:       {"peakMemoryVirtual", FamilyOS, stats.PrefersSmaller, false},
	MallocCountSmall:        {"mallocCountSmall", FamilyAllocation, stats.PrefersSmaller, false},
	MallocCountLarge:        {"mallocCountLarge", FamilyAllocation, stats.PrefersSmaller, false},
	MallocCountTotal:        {"mallocCountTotal", FamilyAllocation, stats.PrefersSmaller, false},
	AllocatedResidentMemory: {"allocatedResidentMemory", FamilyAllocation, stats.PrefersSmaller, false},
	MemoryLeaked:            {"memoryLeaked", FamilyAllocation, stats.PrefersSmaller, false},
	ObjectAllocCount:        {"objectAllocCount", FamilyLifecycle, stats.PrefersSmaller, false},
	RetainCount:             {"retainCount", FamilyLifecycle, stats.PrefersSmaller, false},
	ReleaseCount:            {"releaseCount", FamilyLifecycle, stats.PrefersSmaller, false},
	RetainReleaseDelta:      {"retainReleaseDelta", FamilyLifecycle, stats.PrefersSmaller, false},
	SyscallsRead:            {"syscallsRead", FamilyOS, stats.PrefersSmaller, false},
	SyscallsWrite:           {"syscallsWrite", FamilyOS, stats.PrefersSmaller, false},
	ContextSwitches:         {"contextSwitches", FamilyOS, stats.PrefersSmaller, false},
	Threads:                 {"threads", FamilyOS, stats.PrefersSmaller, false},
	ThreadsRunning:          {"threadsRunning", FamilyOS, stats.PrefersSmaller, false},
	ReadBytesLogical:        {"readBytesLogical", FamilyOS, stats.PrefersSmaller, false},
	WriteBytesLogical:       {"writeBytesLogical", FamilyOS, stats.PrefersSmaller, false},
	ReadBytesPhysical:       {"readBytesPhysical", FamilyOS, stats.PrefersSmaller, false},
	WriteBytesPhysical:      {"writeBytesPhysical", FamilyOS, stats.PrefersSmaller, false},
	Custom:                  {"custom", FamilyCustom, stats.PrefersSmaller, false},
}

func (m Metric) valid() bool {
	return m >= 0 && int(m) < NumMetrics
}

// String returns the metric's stable description, used for output
// ordering and baseline keys.
func (m Metric) String() string {
	if !m.valid() {
		return fmt.Sprintf("metric(%d)", int(m))
	}
	return metricTable[m].name
}

// Family returns the producer family the metric belongs to.
func (m Metric) Family() Family {
	if !m.valid() {
		return FamilyCustom
	}
	return metricTable[m].family
}

// Polarity reports whether larger or smaller values are better.
func (m Metric) Polarity() stats.Polarity {
	if !m.valid() {
		return stats.PrefersSmaller
	}
	return metricTable[m].polarity
}

// IsTime reports whether samples of this metric are durations.
func (m Metric) IsTime() bool {
	return m.valid() && metricTable[m].isTime
}

// ParseMetric resolves a metric by its description.
func ParseMetric(name string) (Metric, error) {
	for i := 0; i < NumMetrics; i++ {
		if metricTable[i].name == name {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", name)
}

// AllMetrics returns every metric in ordinal order.
func AllMetrics() []Metric {
	out := make([]Metric, NumMetrics)
	for i := range out {
		out[i] = Metric(i)
	}
	return out
}
