// Package internable describes which value types can be interned and how.
//
// An adapter translates a value into a slice of fixed-width elements and back.
// Both directions must be exact inverses for every value an arena stores,
// even after the elements were copied into a different backing array: the
// arena keeps one shared element buffer and rebuilds values from spans of
// it. The set of adapters is closed; each one is a zero-size type so
// interners can embed it for free.
//
// Views returned by Elements may alias the input value and reconstructed
// values may alias arena memory. Neither must be mutated.
package internable

import "unsafe"

// Element is the set of primitive element types an arena can store.
type Element interface {
	~byte | ~uint16 | ~rune
}

// Adapter converts between a value type and its element view.
type Adapter[T any, E Element] interface {
	// Elements returns the content of v as elements without copying.
	Elements(v T) []E

	// FromElements rebuilds a value from elements previously produced by
	// Elements, possibly after they were copied elsewhere.
	FromElements(elems []E) T
}

// AsBytes reinterprets elems as raw bytes without copying. It is the input
// to hash strategies.
func AsBytes[E Element](elems []E) []byte {
	if len(elems) == 0 {
		return nil
	}

	var zero E

	size := len(elems) * int(unsafe.Sizeof(zero))

	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(elems))), size)
}

// ElementSize returns the width in bytes of element type E.
func ElementSize[E Element]() int {
	var zero E

	return int(unsafe.Sizeof(zero))
}

// clip caps a view so appends made by callers never write into shared memory.
func clip[E Element](elems []E) []E {
	return elems[:len(elems):len(elems)]
}
