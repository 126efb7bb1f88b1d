//go:build linux

package procstats

import (
	"fmt"
	"time"

	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"

	"benchkit/internal/core"
)

// userHz is the kernel's USER_HZ tick rate. It is fixed at 100 on every
// architecture Linux exports /proc on, the same assumption procfs makes.
const userHz = 100

type linuxProducer struct {
	proc      procfs.Proc
	nsPerTick int64
	needIO    bool
	sampler   *sampler
}

func newPlatformProducer() (Producer, error) {
	proc, err := procfs.Self()
	if err != nil {
		return nil, fmt.Errorf("opening /proc for self: %w", err)
	}
	return &linuxProducer{
		proc:      proc,
		nsPerTick: int64(time.Second) / userHz,
	}, nil
}

// MetricSupported reports true for every OS-family metric; other
// families are owned by other producers.
func (p *linuxProducer) MetricSupported(m core.Metric) bool {
	return m.Family() == core.FamilyOS
}

// Configure narrows what Snapshot reads. /proc/self/io is only touched
// when a syscall or I/O byte metric was requested since the read has
// observable cost.
func (p *linuxProducer) Configure(metrics []core.Metric) {
	p.needIO = false
	for _, m := range metrics {
		switch m {
		case core.SyscallsRead, core.SyscallsWrite,
			core.ReadBytesLogical, core.WriteBytesLogical,
			core.ReadBytesPhysical, core.WriteBytesPhysical:
			p.needIO = true
		}
	}
}

func (p *linuxProducer) Snapshot() (Snapshot, error) {
	var snap Snapshot

	stat, err := p.proc.Stat()
	if err != nil {
		return snap, fmt.Errorf("reading /proc/self/stat: %w", err)
	}
	snap.CPUUserNs = int64(stat.UTime) * p.nsPerTick
	snap.CPUSystemNs = int64(stat.STime) * p.nsPerTick
	snap.CPUTotalNs = snap.CPUUserNs + snap.CPUSystemNs

	status, err := p.proc.NewStatus()
	if err != nil {
		return snap, fmt.Errorf("reading /proc/self/status: %w", err)
	}
	snap.PeakVSizeBytes = int64(status.VmPeak)

	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return snap, fmt.Errorf("getrusage: %w", err)
	}
	snap.PeakRSSBytes = ru.Maxrss * 1024
	snap.ContextSwitches = ru.Nvcsw + ru.Nivcsw

	if p.needIO {
		io, err := p.proc.IO()
		if err != nil {
			return snap, fmt.Errorf("reading /proc/self/io: %w", err)
		}
		snap.SyscallsRead = int64(io.SyscR)
		snap.SyscallsWrite = int64(io.SyscW)
		snap.ReadBytesLogical = int64(io.RChar)
		snap.WriteBytesLogical = int64(io.WChar)
		snap.ReadBytesPhysical = int64(io.ReadBytes)
		snap.WriteBytesPhysical = int64(io.WriteBytes)
	}

	// Thread counts are peaks accumulated by the sampler, not the
	// instantaneous value this query would see.
	if p.sampler != nil {
		snap.Threads, snap.ThreadsRunning = p.sampler.peaks()
	}

	return snap, nil
}

func (p *linuxProducer) StartSampling(interval time.Duration) {
	if p.sampler != nil {
		return
	}
	p.sampler = newSampler(interval, p.readThreadCounts)
}

func (p *linuxProducer) StopSampling() {
	if p.sampler == nil {
		return
	}
	p.sampler.stop()
	p.sampler = nil
}

// readThreadCounts returns the instantaneous total and running thread
// counts by scanning /proc/self/task.
func (p *linuxProducer) readThreadCounts() (int64, int64, error) {
	stat, err := p.proc.Stat()
	if err != nil {
		return 0, 0, err
	}
	threads := int64(stat.NumThreads)

	tasks, err := procfs.AllThreads(p.proc.PID)
	if err != nil {
		return threads, 0, nil
	}
	var running int64
	for _, t := range tasks {
		ts, err := t.Stat()
		if err != nil {
			continue
		}
		if ts.State == "R" {
			running++
		}
	}
	return threads, running, nil
}
