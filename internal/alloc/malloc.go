// Package alloc provides the allocation and object-lifecycle snapshot
// producers.
package alloc

import "runtime"

// MallocSnapshot is a point-in-time reading of allocator counters.
// Count fields are cumulative since process start; ResidentBytes and
// LiveBytes are instantaneous.
type MallocSnapshot struct {
	CountTotal    int64
	CountSmall    int64
	CountLarge    int64
	ResidentBytes int64
	LiveBytes     int64
}

// ReadMallocStats takes an allocator snapshot. Small allocations are
// those served from the runtime's size classes; the remainder went
// through the large-object path.
func ReadMallocStats() MallocSnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	var small uint64
	for _, c := range ms.BySize {
		small += c.Mallocs
	}

	return MallocSnapshot{
		CountTotal:    int64(ms.Mallocs),
		CountSmall:    int64(small),
		CountLarge:    int64(ms.Mallocs - small),
		ResidentBytes: int64(ms.HeapSys),
		LiveBytes:     int64(ms.HeapAlloc),
	}
}
