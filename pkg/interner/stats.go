package interner

import (
	"unsafe"

	"github.com/Sumatoshi-tech/interner/pkg/arena"
)

// Stats describes the memory held by an interner.
type Stats struct {
	arena.Stats

	IndexSlots    int // Slots in the dedup index table.
	IndexCapacity int // Values the index holds before it grows.
	IndexBytes    int // Bytes reserved by the index table.
}

// AllocatedBytes returns the bytes reserved by the arena and the index.
func (s Stats) AllocatedBytes() int {
	return s.Stats.AllocatedBytes() + s.IndexBytes
}

// Stats returns the current memory statistics.
func (in *Interner[S, T, E]) Stats() Stats {
	var sym S

	slots := in.index.Buckets()

	return Stats{
		Stats:         in.arena.Stats(),
		IndexSlots:    slots,
		IndexCapacity: in.index.Capacity(),
		IndexBytes:    slots * (1 + int(unsafe.Sizeof(sym))),
	}
}
