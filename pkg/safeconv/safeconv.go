// Package safeconv provides checked integer conversions for dense index types.
//
// The Try variants report failure through a boolean so callers can decide
// whether an out-of-range value is an expected outcome or a fatal one. The
// Must variants panic and are reserved for conversions that cannot fail when
// the surrounding invariants hold.
package safeconv

import "math"

// MaxInt is the maximum value for int type (platform-dependent).
const MaxInt = int(^uint(0) >> 1)

// MaxUint16 is the maximum value for uint16 type.
const MaxUint16 = uint16(math.MaxUint16)

// MaxUint32 is the maximum value for uint32 type.
const MaxUint32 = uint32(math.MaxUint32)

// TryIntToUint16 converts v to uint16. ok is false when v is negative or
// does not fit.
func TryIntToUint16(v int) (uint16, bool) {
	if v < 0 || v > int(MaxUint16) {
		return 0, false
	}

	return uint16(v), true
}

// TryIntToUint32 converts v to uint32. ok is false when v is negative or
// does not fit.
func TryIntToUint32(v int) (uint32, bool) {
	if v < 0 || uint64(v) > uint64(MaxUint32) {
		return 0, false
	}

	return uint32(v), true
}

// TryIntToUint converts v to uint. ok is false when v is negative.
func TryIntToUint(v int) (uint, bool) {
	if v < 0 {
		return 0, false
	}

	return uint(v), true
}

// MustUintToInt converts uint to int, panics on overflow.
// Use only when overflow is logically impossible.
func MustUintToInt(v uint) int {
	if v > uint(MaxInt) {
		panic("safeconv: uint to int overflow")
	}

	return int(v)
}
