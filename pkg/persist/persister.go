package persist

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveFile encodes state into the file at path, replacing it.
func SaveFile(path string, codec Codec, state any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create state file: %w", err)
	}
	defer file.Close()

	err = codec.Encode(file, state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	return nil
}

// LoadFile decodes the file at path into state, which must be a pointer.
func LoadFile(path string, codec Codec, state any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open state file: %w", err)
	}
	defer file.Close()

	err = codec.Decode(file, state)
	if err != nil {
		return fmt.Errorf("decode state: %w", err)
	}

	return nil
}

// SaveState saves the given state to a file in the specified directory.
// The filename is constructed from the basename and the codec's extension.
func SaveState(dir, basename string, codec Codec, state any) error {
	return SaveFile(StatePath(dir, basename, codec), codec, state)
}

// LoadState loads state from a file in the specified directory.
// The filename is constructed from the basename and the codec's extension.
func LoadState(dir, basename string, codec Codec, state any) error {
	return LoadFile(StatePath(dir, basename, codec), codec, state)
}

// StatePath returns the file SaveState and LoadState use.
func StatePath(dir, basename string, codec Codec) string {
	return filepath.Join(dir, basename+codec.Extension())
}

// Persister handles I/O for a specific state type using a Codec.
type Persister[T any] struct {
	basename string
	codec    Codec
	newState func() *T
}

// NewPersister creates a persister with the given basename and codec.
// newState returns the value Load decodes into; states holding interners
// need it to supply initialized ones.
func NewPersister[T any](basename string, codec Codec, newState func() *T) *Persister[T] {
	if newState == nil {
		newState = func() *T { return new(T) }
	}

	return &Persister[T]{
		basename: basename,
		codec:    codec,
		newState: newState,
	}
}

// Path returns the file the persister uses inside dir.
func (p *Persister[T]) Path(dir string) string {
	return StatePath(dir, p.basename, p.codec)
}

// Save writes state to the given directory.
func (p *Persister[T]) Save(dir string, state *T) error {
	return SaveState(dir, p.basename, p.codec, state)
}

// Load restores state from the given directory.
func (p *Persister[T]) Load(dir string) (*T, error) {
	state := p.newState()

	err := LoadState(dir, p.basename, p.codec, state)
	if err != nil {
		return nil, err
	}

	return state, nil
}
