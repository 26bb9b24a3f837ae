// Package arena provides the append-only storage backend of an interner.
//
// All values live back to back in one element buffer. For every value the
// arena records only the offset one past its last element together with the
// hash it was appended with; the start of a value is the end of its
// predecessor. Symbols are positions in that table, so they are minted in
// strictly increasing order and never invalidated.
package arena

import (
	"slices"

	"github.com/Sumatoshi-tech/interner/pkg/internable"
	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

// averageValueLen is the number of elements reserved per expected entry when
// an arena is created with a capacity. It only sizes the first allocation.
const averageValueLen = 10

// Trusted is the type of the marker that unchecked operations require.
// Passing it asserts that the symbol was minted by the same arena.
type Trusted struct{}

// AssumeValid is the only value of Trusted callers need.
var AssumeValid = Trusted{}

// span locates one value in the buffer and caches its hash.
type span struct {
	end  int
	hash uint64
}

// Entry is one stored value as produced by iteration.
type Entry[S symbol.Symbol[S], T any] struct {
	Symbol S
	Value  T
	Hash   uint64
}

// Arena stores values of type T as runs of elements of type E and hands out
// symbols of type S. It is not safe for concurrent mutation.
type Arena[S symbol.Symbol[S], T any, E internable.Element] struct {
	adapter internable.Adapter[T, E]
	buffer  []E
	spans   []span
}

// New creates an arena with room for capacity entries of average length.
func New[S symbol.Symbol[S], T any, E internable.Element](
	adapter internable.Adapter[T, E],
	capacity int,
) *Arena[S, T, E] {
	capacity = max(capacity, 0)

	return &Arena[S, T, E]{
		adapter: adapter,
		buffer:  make([]E, 0, capacity*averageValueLen),
		spans:   make([]span, 0, capacity),
	}
}

// Len returns the number of stored values.
func (a *Arena[S, T, E]) Len() int {
	return len(a.spans)
}

// IsEmpty reports whether nothing was stored yet.
func (a *Arena[S, T, E]) IsEmpty() bool {
	return len(a.spans) == 0
}

// Append copies v into the buffer and returns its new symbol.
// It panics with an error wrapping symbol.ErrExhausted when S cannot
// represent the next index; the arena is left unchanged in that case.
func (a *Arena[S, T, E]) Append(v T, hash uint64) S {
	return a.AppendElements(a.adapter.Elements(v), hash)
}

// AppendElements is Append for a value already converted to elements.
func (a *Arena[S, T, E]) AppendElements(elems []E, hash uint64) S {
	sym := symbol.Must[S](len(a.spans))

	a.buffer = append(a.buffer, elems...)
	a.spans = append(a.spans, span{end: len(a.buffer), hash: hash})

	return sym
}

// Reserve makes room for additional entries of average length.
func (a *Arena[S, T, E]) Reserve(additional int) {
	if additional <= 0 {
		return
	}

	a.spans = slices.Grow(a.spans, additional)
	a.buffer = slices.Grow(a.buffer, additional*averageValueLen)
}

// Resolve returns the value stored under sym.
func (a *Arena[S, T, E]) Resolve(sym S) (T, bool) {
	if !a.contains(sym) {
		var zero T

		return zero, false
	}

	return a.adapter.FromElements(a.elements(sym.Index())), true
}

// ResolveUnchecked returns the value stored under sym without a bounds
// check. sym must have been minted by this arena; otherwise it may panic
// or return an unrelated value.
func (a *Arena[S, T, E]) ResolveUnchecked(sym S, _ Trusted) T {
	return a.adapter.FromElements(a.elements(sym.Index()))
}

// Hash returns the hash sym was appended with.
func (a *Arena[S, T, E]) Hash(sym S) (uint64, bool) {
	if !a.contains(sym) {
		return 0, false
	}

	return a.spans[sym.Index()].hash, true
}

// HashUnchecked is Hash without the bounds check. The contract is the one
// of ResolveUnchecked.
func (a *Arena[S, T, E]) HashUnchecked(sym S, _ Trusted) uint64 {
	return a.spans[sym.Index()].hash
}

// Equal reports whether the value stored under sym consists of elems.
// sym must have been minted by this arena.
func (a *Arena[S, T, E]) Equal(sym S, elems []E) bool {
	return slices.Equal(a.elements(sym.Index()), elems)
}

// ShrinkToFit moves the buffer and the span table into allocations of
// exactly their length. Symbols, contents and hashes are unchanged.
func (a *Arena[S, T, E]) ShrinkToFit() {
	if cap(a.buffer) > len(a.buffer) {
		a.buffer = exact(a.buffer)
	}

	if cap(a.spans) > len(a.spans) {
		a.spans = exact(a.spans)
	}
}

// Clone returns an independent copy of the arena.
func (a *Arena[S, T, E]) Clone() *Arena[S, T, E] {
	return &Arena[S, T, E]{
		adapter: a.adapter,
		buffer:  slices.Clone(a.buffer),
		spans:   slices.Clone(a.spans),
	}
}

// --- Internal methods ---.

func (a *Arena[S, T, E]) contains(sym S) bool {
	if symbol.IsNone(sym) {
		return false
	}

	i := sym.Index()

	return i >= 0 && i < len(a.spans)
}

// elements returns the elements of the value at index i.
func (a *Arena[S, T, E]) elements(i int) []E {
	from := 0
	if i > 0 {
		from = a.spans[i-1].end
	}

	return a.buffer[from:a.spans[i].end:a.spans[i].end]
}

// exact copies s into a new array of exactly len(s) elements.
func exact[X any](s []X) []X {
	out := make([]X, len(s))
	copy(out, s)

	return out
}
