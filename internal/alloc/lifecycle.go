package alloc

import "sync/atomic"

// ProbeCost is the fixed number of retain/release events the
// instrumentation path itself generates per measurement, subtracted
// from deltas at measurement time. Empirically derived; re-derive when
// porting to another runtime rather than treating it as a contract.
const ProbeCost = 1

// LifecycleSnapshot is a point-in-time reading of object-lifecycle
// counters.
type LifecycleSnapshot struct {
	Allocs   int64
	Retains  int64
	Releases int64
}

// LifecycleTracker counts object allocation, reference-increment and
// reference-decrement events reported by instrumented code. Counting is
// disabled until Hook is called so unmeasured code paths pay only an
// atomic load.
type LifecycleTracker struct {
	enabled  atomic.Bool
	allocs   atomic.Int64
	retains  atomic.Int64
	releases atomic.Int64
}

// DefaultTracker is the tracker instrumented code reports to via the
// package-level Track functions.
var DefaultTracker = &LifecycleTracker{}

// Hook enables event counting.
func (t *LifecycleTracker) Hook() { t.enabled.Store(true) }

// Unhook disables event counting.
func (t *LifecycleTracker) Unhook() { t.enabled.Store(false) }

// Hooked reports whether counting is enabled.
func (t *LifecycleTracker) Hooked() bool { return t.enabled.Load() }

// Snapshot reads the current counters. Idempotent; does not reset.
func (t *LifecycleTracker) Snapshot() LifecycleSnapshot {
	return LifecycleSnapshot{
		Allocs:   t.allocs.Load(),
		Retains:  t.retains.Load(),
		Releases: t.releases.Load(),
	}
}

// TrackAlloc records one object allocation event.
func (t *LifecycleTracker) TrackAlloc() {
	if t.enabled.Load() {
		t.allocs.Add(1)
	}
}

// TrackRetain records one reference-increment event.
func (t *LifecycleTracker) TrackRetain() {
	if t.enabled.Load() {
		t.retains.Add(1)
	}
}

// TrackRelease records one reference-decrement event.
func (t *LifecycleTracker) TrackRelease() {
	if t.enabled.Load() {
		t.releases.Add(1)
	}
}

// TrackAlloc reports an allocation event to the default tracker.
func TrackAlloc() { DefaultTracker.TrackAlloc() }

// TrackRetain reports a reference-increment event to the default tracker.
func TrackRetain() { DefaultTracker.TrackRetain() }

// TrackRelease reports a reference-decrement event to the default tracker.
func TrackRelease() { DefaultTracker.TrackRelease() }
