// Package symbol provides compact, copyable handles for interned values.
//
// A symbol encodes a dense, zero-based insertion index. Every symbol width
// reserves its maximum bit pattern as a sentinel that no real index can
// take, so the zero-cost "no symbol" value of a width is that sentinel
// rather than a separate boolean.
//
// Three widths are provided: U16, U32 (the default) and Uint. Minting an
// index a width cannot represent fails with ok == false; interners treat
// that failure as fatal.
package symbol

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrExhausted is carried by the panic raised when an interner mints
	// more symbols than its symbol width can represent.
	ErrExhausted = errors.New("symbol: symbol space exhausted")

	// ErrInvalidIndex is returned when decoding an index that is out of
	// range or equal to the reserved sentinel.
	ErrInvalidIndex = errors.New("symbol: invalid index")
)

// Symbol is the constraint satisfied by every symbol width in this package.
//
// The methods are called on the zero value to construct symbols generically:
// FromIndex mints a symbol and Sentinel returns the reserved pattern.
type Symbol[S any] interface {
	comparable

	// Index returns the zero-based insertion index the symbol encodes.
	Index() int

	// FromIndex mints the symbol for index. ok is false when index is
	// negative, too large for the width, or equal to the sentinel.
	FromIndex(index int) (S, bool)

	// Sentinel returns the reserved "no symbol" pattern of the width.
	Sentinel() S
}

// Default is the symbol width used when none is chosen explicitly.
type Default = U32

// New mints the symbol of width S for index.
func New[S Symbol[S]](index int) (S, bool) {
	var zero S

	return zero.FromIndex(index)
}

// Must mints the symbol of width S for index and panics with an error
// wrapping ErrExhausted when the width cannot represent it.
func Must[S Symbol[S]](index int) S {
	sym, ok := New[S](index)
	if !ok {
		panic(fmt.Errorf("%w: index %d does not fit %T", ErrExhausted, index, sym))
	}

	return sym
}

// None returns the sentinel of width S.
func None[S Symbol[S]]() S {
	var zero S

	return zero.Sentinel()
}

// IsNone reports whether sym is the sentinel of its width.
func IsNone[S Symbol[S]](sym S) bool {
	return sym == None[S]()
}

// Capacity returns how many distinct symbols width S can mint.
func Capacity[S Symbol[S]]() int {
	return None[S]().Index()
}
