package interner

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

// Decoding errors.
var (
	// ErrUninitialized is returned when decoding into an interner that was
	// not created with New.
	ErrUninitialized = errors.New("interner: decode into uninitialized interner")

	// ErrNotEmpty is returned when decoding into an interner that already
	// holds values, since symbols could then not be reproduced.
	ErrNotEmpty = errors.New("interner: decode into non-empty interner")
)

// An interner encodes as the ordered list of its values. Decoding interns
// the list in order, which mints the same symbols again.

// MarshalJSON implements json.Marshaler.
func (in *Interner[S, T, E]) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.Values())
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *Interner[S, T, E]) UnmarshalJSON(data []byte) error {
	return in.decode(func(values *[]T) error {
		return json.Unmarshal(data, values)
	})
}

// MarshalYAML implements yaml.Marshaler.
func (in *Interner[S, T, E]) MarshalYAML() (any, error) {
	return in.Values(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (in *Interner[S, T, E]) UnmarshalYAML(node *yaml.Node) error {
	return in.decode(func(values *[]T) error {
		return node.Decode(values)
	})
}

// GobEncode implements gob.GobEncoder.
func (in *Interner[S, T, E]) GobEncode() ([]byte, error) {
	var buf bytes.Buffer

	err := gob.NewEncoder(&buf).Encode(in.Values())
	if err != nil {
		return nil, fmt.Errorf("interner: gob encode: %w", err)
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (in *Interner[S, T, E]) GobDecode(data []byte) error {
	return in.decode(func(values *[]T) error {
		return gob.NewDecoder(bytes.NewReader(data)).Decode(values)
	})
}

// --- Internal methods ---.

func (in *Interner[S, T, E]) decode(fill func(values *[]T) error) error {
	if in.adapter == nil {
		return ErrUninitialized
	}

	if !in.IsEmpty() {
		return ErrNotEmpty
	}

	var values []T

	err := fill(&values)
	if err != nil {
		return fmt.Errorf("interner: decode values: %w", err)
	}

	if len(values) > symbol.Capacity[S]() {
		return fmt.Errorf("interner: decode %d values: %w", len(values), symbol.ErrExhausted)
	}

	in.Extend(values...)

	return nil
}
