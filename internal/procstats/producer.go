// Package procstats produces point-in-time snapshots of OS-visible
// process metrics and owns the background peak-thread sampler.
package procstats

import (
	"time"

	"benchkit/internal/core"
)

// Snapshot is a raw counter reading. CPU times are nanoseconds,
// memory values bytes. Deltas are computed by subtraction; the snapshot
// itself is discarded after use.
type Snapshot struct {
	CPUUserNs          int64
	CPUSystemNs        int64
	CPUTotalNs         int64
	PeakRSSBytes       int64
	PeakVSizeBytes     int64
	SyscallsRead       int64
	SyscallsWrite      int64
	ReadBytesLogical   int64
	WriteBytesLogical  int64
	ReadBytesPhysical  int64
	WriteBytesPhysical int64
	ContextSwitches    int64
	Threads            int64
	ThreadsRunning     int64
}

// Producer takes process snapshots and manages the sampler lifecycle.
// On platforms without introspection support Snapshot returns an
// all-zero reading and no metric is supported.
type Producer interface {
	Snapshot() (Snapshot, error)
	MetricSupported(m core.Metric) bool
	Configure(metrics []core.Metric)
	StartSampling(interval time.Duration)
	StopSampling()
}

// New returns the producer for the current platform.
func New() (Producer, error) {
	return newPlatformProducer()
}
