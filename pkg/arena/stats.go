package arena

import (
	"unsafe"

	"github.com/Sumatoshi-tech/interner/pkg/internable"
)

// Stats describes the memory held by an arena.
type Stats struct {
	Entries        int // Stored values.
	Elements       int // Elements in use across all values.
	ElementSize    int // Width of one element in bytes.
	BufferCapacity int // Elements the buffer can hold before growing.
	SpanCapacity   int // Entries the span table can hold before growing.
}

// ContentBytes returns the bytes taken by stored content alone.
func (s Stats) ContentBytes() int {
	return s.Elements * s.ElementSize
}

// AllocatedBytes returns the bytes reserved by the buffer and span table.
func (s Stats) AllocatedBytes() int {
	return s.BufferCapacity*s.ElementSize + s.SpanCapacity*spanSize
}

// spanSize is the size of one span table entry in bytes.
const spanSize = int(unsafe.Sizeof(span{}))

// Stats returns the current memory statistics.
func (a *Arena[S, T, E]) Stats() Stats {
	return Stats{
		Entries:        len(a.spans),
		Elements:       len(a.buffer),
		ElementSize:    internable.ElementSize[E](),
		BufferCapacity: cap(a.buffer),
		SpanCapacity:   cap(a.spans),
	}
}
