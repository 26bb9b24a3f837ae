package persist

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/interner/pkg/interner"
	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

// SnapshotFormat is the version written into every snapshot.
const SnapshotFormat = 1

// Symbol width names recorded in snapshots.
const (
	WidthU16  = "u16"
	WidthU32  = "u32"
	WidthUint = "uint"
)

// Snapshot header errors.
var (
	// ErrUnsupportedFormat is returned when a snapshot has an unknown version.
	ErrUnsupportedFormat = errors.New("persist: unsupported snapshot format")

	// ErrWidthMismatch is returned when a snapshot was written with another
	// symbol width than the one it is loaded with.
	ErrWidthMismatch = errors.New("persist: snapshot symbol width mismatch")
)

// Snapshot is the on-disk form of a string interner. Values are stored in
// symbol order; loading re-interns them and so reproduces every symbol.
type Snapshot[S symbol.Symbol[S]] struct {
	Format  int                                 `json:"format" yaml:"format"`
	Symbol  string                              `json:"symbol" yaml:"symbol"`
	Hasher  string                              `json:"hasher" yaml:"hasher"`
	Strings *interner.Interner[S, string, byte] `json:"strings" yaml:"strings"`
}

// NewSnapshot captures in.
func NewSnapshot[S symbol.Symbol[S]](in *interner.Interner[S, string, byte]) *Snapshot[S] {
	return &Snapshot[S]{
		Format:  SnapshotFormat,
		Symbol:  WidthName[S](),
		Hasher:  in.Hasher().Name(),
		Strings: in,
	}
}

// EmptySnapshot returns a snapshot ready to be decoded into. The restored
// interner is built with opts.
func EmptySnapshot[S symbol.Symbol[S]](opts ...interner.Option) *Snapshot[S] {
	return &Snapshot[S]{Strings: interner.NewString[S](opts...)}
}

// Check validates the decoded header. The recorded hasher is informational:
// loading re-hashes every value with the hasher of the new interner.
func (s *Snapshot[S]) Check() error {
	if s.Format != SnapshotFormat {
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, s.Format)
	}

	if want := WidthName[S](); s.Symbol != want {
		return fmt.Errorf("%w: snapshot has %q, loading as %q", ErrWidthMismatch, s.Symbol, want)
	}

	return nil
}

// SaveSnapshot writes in to path.
func SaveSnapshot[S symbol.Symbol[S]](path string, codec Codec, in *interner.Interner[S, string, byte]) error {
	return SaveFile(path, codec, NewSnapshot(in))
}

// LoadSnapshot reads a snapshot from path into a new interner built with
// opts. Symbols of the loaded interner equal the saved ones.
func LoadSnapshot[S symbol.Symbol[S]](path string, codec Codec, opts ...interner.Option) (*Snapshot[S], error) {
	snap := EmptySnapshot[S](opts...)

	err := LoadFile(path, codec, snap)
	if err != nil {
		return nil, err
	}

	err = snap.Check()
	if err != nil {
		return nil, err
	}

	return snap, nil
}

// WidthName returns the snapshot name of symbol width S.
func WidthName[S symbol.Symbol[S]]() string {
	switch any(symbol.None[S]()).(type) {
	case symbol.U16:
		return WidthU16
	case symbol.U32:
		return WidthU32
	default:
		return WidthUint
	}
}
