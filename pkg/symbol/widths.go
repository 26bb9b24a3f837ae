package symbol

import (
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/interner/pkg/safeconv"
)

// Bit sizes for index parsing.
const (
	bits16   = 16
	bits32   = 32
	bitsUint = strconv.IntSize
)

// Reserved sentinels, one per width.
const (
	// NoneU16 is the reserved U16 pattern.
	NoneU16 = U16(math.MaxUint16)

	// NoneU32 is the reserved U32 pattern.
	NoneU32 = U32(math.MaxUint32)

	// NoneUint is the reserved Uint pattern.
	NoneUint = Uint(math.MaxUint)
)

// U16 is a 2-byte symbol able to address 65535 values.
type U16 uint16

// Index returns the insertion index.
func (s U16) Index() int { return int(s) }

// FromIndex mints a U16.
func (U16) FromIndex(index int) (U16, bool) {
	v, ok := safeconv.TryIntToUint16(index)
	if !ok || U16(v) == NoneU16 {
		return NoneU16, false
	}

	return U16(v), true
}

// Sentinel returns NoneU16.
func (U16) Sentinel() U16 { return NoneU16 }

// String formats the index, or "none" for the sentinel.
func (s U16) String() string { return format(s) }

// MarshalText encodes the index in decimal.
func (s U16) MarshalText() ([]byte, error) { return marshalIndex(s) }

// UnmarshalText decodes a decimal index, rejecting the sentinel.
func (s *U16) UnmarshalText(text []byte) error { return unmarshalIndex(s, text, bits16) }

// MarshalJSON encodes the symbol as a JSON number.
func (s U16) MarshalJSON() ([]byte, error) { return marshalIndex(s) }

// UnmarshalJSON decodes a JSON number or numeric string, rejecting the sentinel.
func (s *U16) UnmarshalJSON(data []byte) error { return unmarshalJSON(s, data, bits16) }

// MarshalYAML encodes the symbol as a YAML integer.
func (s U16) MarshalYAML() (any, error) { return marshalYAML(s) }

// UnmarshalYAML decodes a YAML integer, rejecting the sentinel.
func (s *U16) UnmarshalYAML(node *yaml.Node) error { return unmarshalYAML(s, node, bits16) }

// U32 is a 4-byte symbol able to address 4294967295 values.
type U32 uint32

// Index returns the insertion index. Values above MaxInt saturate at MaxInt.
func (s U32) Index() int {
	if uint64(s) > uint64(safeconv.MaxInt) {
		return safeconv.MaxInt
	}

	return int(s)
}

// FromIndex mints a U32.
func (U32) FromIndex(index int) (U32, bool) {
	v, ok := safeconv.TryIntToUint32(index)
	if !ok || U32(v) == NoneU32 || index == safeconv.MaxInt {
		return NoneU32, false
	}

	return U32(v), true
}

// Sentinel returns NoneU32.
func (U32) Sentinel() U32 { return NoneU32 }

// String formats the index, or "none" for the sentinel.
func (s U32) String() string { return format(s) }

// MarshalText encodes the index in decimal.
func (s U32) MarshalText() ([]byte, error) { return marshalIndex(s) }

// UnmarshalText decodes a decimal index, rejecting the sentinel.
func (s *U32) UnmarshalText(text []byte) error { return unmarshalIndex(s, text, bits32) }

// MarshalJSON encodes the symbol as a JSON number.
func (s U32) MarshalJSON() ([]byte, error) { return marshalIndex(s) }

// UnmarshalJSON decodes a JSON number or numeric string, rejecting the sentinel.
func (s *U32) UnmarshalJSON(data []byte) error { return unmarshalJSON(s, data, bits32) }

// MarshalYAML encodes the symbol as a YAML integer.
func (s U32) MarshalYAML() (any, error) { return marshalYAML(s) }

// UnmarshalYAML decodes a YAML integer, rejecting the sentinel.
func (s *U32) UnmarshalYAML(node *yaml.Node) error { return unmarshalYAML(s, node, bits32) }

// Uint is a machine-word symbol.
type Uint uint

// Index returns the insertion index. The sentinel saturates at MaxInt.
func (s Uint) Index() int {
	if uint(s) > uint(safeconv.MaxInt) {
		return safeconv.MaxInt
	}

	return safeconv.MustUintToInt(uint(s))
}

// FromIndex mints a Uint.
func (Uint) FromIndex(index int) (Uint, bool) {
	v, ok := safeconv.TryIntToUint(index)
	if !ok || Uint(v) == NoneUint || index == safeconv.MaxInt {
		return NoneUint, false
	}

	return Uint(v), true
}

// Sentinel returns NoneUint.
func (Uint) Sentinel() Uint { return NoneUint }

// String formats the index, or "none" for the sentinel.
func (s Uint) String() string { return format(s) }

// MarshalText encodes the index in decimal.
func (s Uint) MarshalText() ([]byte, error) { return marshalIndex(s) }

// UnmarshalText decodes a decimal index, rejecting the sentinel.
func (s *Uint) UnmarshalText(text []byte) error { return unmarshalIndex(s, text, bitsUint) }

// MarshalJSON encodes the symbol as a JSON number.
func (s Uint) MarshalJSON() ([]byte, error) { return marshalIndex(s) }

// UnmarshalJSON decodes a JSON number or numeric string, rejecting the sentinel.
func (s *Uint) UnmarshalJSON(data []byte) error { return unmarshalJSON(s, data, bitsUint) }

// MarshalYAML encodes the symbol as a YAML integer.
func (s Uint) MarshalYAML() (any, error) { return marshalYAML(s) }

// UnmarshalYAML decodes a YAML integer, rejecting the sentinel.
func (s *Uint) UnmarshalYAML(node *yaml.Node) error { return unmarshalYAML(s, node, bitsUint) }
