package internable

import (
	"errors"
	"strings"
	"unicode/utf16"
	"unsafe"
)

// ErrInteriorNUL is returned by NewCString when the input contains a NUL byte.
var ErrInteriorNUL = errors.New("internable: interior NUL byte")

// nul terminates C strings.
const nul = "\x00"

// String interns UTF-8 text.
type String struct{}

// Elements returns the bytes of v.
func (String) Elements(v string) []byte {
	return unsafe.Slice(unsafe.StringData(v), len(v))
}

// FromElements views elems as a string.
func (String) FromElements(elems []byte) string {
	return unsafe.String(unsafe.SliceData(elems), len(elems))
}

// Bytes interns raw byte sequences.
type Bytes struct{}

// Elements returns v itself.
func (Bytes) Elements(v []byte) []byte { return v }

// FromElements returns elems capped to their length.
func (Bytes) FromElements(elems []byte) []byte { return clip(elems) }

// CString is NUL-terminated text. Its content includes the terminator.
type CString string

// NewCString terminates s with NUL. It fails if s already contains one.
func NewCString(s string) (CString, error) {
	if strings.Contains(s, nul) {
		return "", ErrInteriorNUL
	}

	return CString(s + nul), nil
}

// Text returns the content without the terminator.
func (c CString) Text() string {
	return strings.TrimSuffix(string(c), nul)
}

// CStrings interns NUL-terminated strings, terminator included.
type CStrings struct{}

// Elements returns the bytes of v including the terminator.
func (CStrings) Elements(v CString) []byte {
	return unsafe.Slice(unsafe.StringData(string(v)), len(v))
}

// FromElements views elems as a CString.
func (CStrings) FromElements(elems []byte) CString {
	return CString(unsafe.String(unsafe.SliceData(elems), len(elems)))
}

// Runes interns sequences of Unicode scalar values.
type Runes struct{}

// Elements returns v itself.
func (Runes) Elements(v []rune) []rune { return v }

// FromElements returns elems capped to their length.
func (Runes) FromElements(elems []rune) []rune { return clip(elems) }

// UTF16 interns platform-native wide strings, as used by Windows APIs.
type UTF16 struct{}

// Elements returns v itself.
func (UTF16) Elements(v []uint16) []uint16 { return v }

// FromElements returns elems capped to their length.
func (UTF16) FromElements(elems []uint16) []uint16 { return clip(elems) }

// EncodeUTF16 converts text to the element form UTF16 expects.
func EncodeUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// DecodeUTF16 converts a wide string back to text.
func DecodeUTF16(w []uint16) string {
	return string(utf16.Decode(w))
}

// Compile-time adapter checks.
var (
	_ Adapter[string, byte]     = String{}
	_ Adapter[[]byte, byte]     = Bytes{}
	_ Adapter[CString, byte]    = CStrings{}
	_ Adapter[[]rune, rune]     = Runes{}
	_ Adapter[[]uint16, uint16] = UTF16{}
)
