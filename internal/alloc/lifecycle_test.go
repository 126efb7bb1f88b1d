package alloc

import "testing"

func TestLifecycleTracker_DisabledByDefault(t *testing.T) {
	tracker := &LifecycleTracker{}

	tracker.TrackAlloc()
	tracker.TrackRetain()
	tracker.TrackRelease()

	snap := tracker.Snapshot()
	if snap.Allocs != 0 || snap.Retains != 0 || snap.Releases != 0 {
		t.Errorf("expected zero counters while unhooked, got %+v", snap)
	}
}

func TestLifecycleTracker_CountsWhenHooked(t *testing.T) {
	tracker := &LifecycleTracker{}
	tracker.Hook()

	for i := 0; i < 3; i++ {
		tracker.TrackAlloc()
	}
	for i := 0; i < 5; i++ {
		tracker.TrackRetain()
	}
	for i := 0; i < 8; i++ {
		tracker.TrackRelease()
	}

	snap := tracker.Snapshot()
	if snap.Allocs != 3 {
		t.Errorf("expected 3 allocs, got %d", snap.Allocs)
	}
	if snap.Retains != 5 {
		t.Errorf("expected 5 retains, got %d", snap.Retains)
	}
	if snap.Releases != 8 {
		t.Errorf("expected 8 releases, got %d", snap.Releases)
	}
}

func TestLifecycleTracker_UnhookStopsCounting(t *testing.T) {
	tracker := &LifecycleTracker{}
	tracker.Hook()
	tracker.TrackAlloc()
	tracker.Unhook()
	tracker.TrackAlloc()

	if snap := tracker.Snapshot(); snap.Allocs != 1 {
		t.Errorf("expected 1 alloc after unhook, got %d", snap.Allocs)
	}
}

func TestLifecycleTracker_SnapshotIdempotent(t *testing.T) {
	tracker := &LifecycleTracker{}
	tracker.Hook()
	tracker.TrackAlloc()

	first := tracker.Snapshot()
	second := tracker.Snapshot()
	if first != second {
		t.Errorf("expected identical snapshots, got %+v then %+v", first, second)
	}
}
