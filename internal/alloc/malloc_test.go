package alloc

import "testing"

func TestReadMallocStats_CountersConsistent(t *testing.T) {
	snap := ReadMallocStats()

	if snap.CountTotal <= 0 {
		t.Errorf("expected positive total malloc count, got %d", snap.CountTotal)
	}
	if snap.CountSmall+snap.CountLarge != snap.CountTotal {
		t.Errorf("small (%d) + large (%d) != total (%d)",
			snap.CountSmall, snap.CountLarge, snap.CountTotal)
	}
	if snap.ResidentBytes <= 0 {
		t.Errorf("expected positive resident bytes, got %d", snap.ResidentBytes)
	}
}

func TestReadMallocStats_CountsIncrease(t *testing.T) {
	before := ReadMallocStats()

	sink := make([][]byte, 100)
	for i := range sink {
		sink[i] = make([]byte, 1024)
	}
	_ = sink

	after := ReadMallocStats()
	if after.CountTotal < before.CountTotal {
		t.Errorf("malloc count went backwards: %d -> %d", before.CountTotal, after.CountTotal)
	}
	if after.CountTotal == before.CountTotal {
		t.Error("expected malloc count to advance after allocating")
	}
}
