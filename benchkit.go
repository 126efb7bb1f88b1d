// Package benchkit is a workload measurement engine: it runs a
// caller-supplied unit of work repeatedly under bounded iteration/time
// budgets and produces calibrated statistical distributions for a
// configurable set of performance metrics.
package benchkit

import (
	"benchkit/internal/core"
	"benchkit/internal/executor"
)

// Re-exported core types; the internal packages hold the implementation.
type (
	Benchmark     = core.Benchmark
	Configuration = core.Configuration
	Metric        = core.Metric
	Result        = core.Result
	Threshold     = core.Threshold
)

const (
	CPUUser                 = core.CPUUser
	CPUSystem               = core.CPUSystem
	CPUTotal                = core.CPUTotal
	WallClock               = core.WallClock
	Throughput              = core.Throughput
	PeakMemoryResident      = core.PeakMemoryResident
	PeakMemoryVirtual       = core.PeakMemoryVirtual
	MallocCountSmall        = core.MallocCountSmall
	MallocCountLarge        = core.MallocCountLarge
	MallocCountTotal        = core.MallocCountTotal
	AllocatedResidentMemory = core.AllocatedResidentMemory
	MemoryLeaked            = core.MemoryLeaked
	ObjectAllocCount        = core.ObjectAllocCount
	RetainCount             = core.RetainCount
	ReleaseCount            = core.ReleaseCount
	RetainReleaseDelta      = core.RetainReleaseDelta
	SyscallsRead            = core.SyscallsRead
	SyscallsWrite           = core.SyscallsWrite
	ContextSwitches         = core.ContextSwitches
	Threads                 = core.Threads
	ThreadsRunning          = core.ThreadsRunning
	ReadBytesLogical        = core.ReadBytesLogical
	WriteBytesLogical       = core.WriteBytesLogical
	ReadBytesPhysical       = core.ReadBytesPhysical
	WriteBytesPhysical      = core.WriteBytesPhysical
	Custom                  = core.Custom
)

// DefaultConfiguration returns the parameters used when a benchmark's
// configuration is left empty.
func DefaultConfiguration() Configuration {
	return core.DefaultConfiguration()
}

// Run measures one benchmark with a default executor. An empty result
// list means the benchmark reported failure; an error means platform
// introspection failed fatally.
func Run(b *Benchmark) ([]Result, error) {
	return executor.New().Run(b)
}
