// Package hashing provides the hash strategies an interner can be built with.
//
// A strategy is fixed for the lifetime of an interner: every cached hash an
// arena holds was produced by it, and lookups compare against those cached
// values. Strategies must therefore be deterministic per instance.
package hashing

import (
	"errors"
	"fmt"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Strategy names accepted by ByName.
const (
	NameMaphash = "maphash"
	NameFNV1a   = "fnv"
	NameXXHash  = "xxhash"
)

// ErrUnknownHasher is returned by ByName for an unsupported strategy name.
var ErrUnknownHasher = errors.New("hashing: unknown hasher")

// Hasher computes 64-bit hashes over raw bytes.
type Hasher interface {
	// Hash returns the hash of data. It must not retain data.
	Hash(data []byte) uint64

	// Name identifies the strategy.
	Name() string
}

// Maphash hashes with the runtime's seeded hash. Each instance draws its own
// random seed, so hashes differ between instances and between processes.
type Maphash struct {
	seed maphash.Seed
}

// NewMaphash returns a Maphash with a fresh random seed.
func NewMaphash() *Maphash {
	return &Maphash{seed: maphash.MakeSeed()}
}

// Hash implements Hasher.
func (m *Maphash) Hash(data []byte) uint64 {
	return maphash.Bytes(m.seed, data)
}

// Name implements Hasher.
func (m *Maphash) Name() string { return NameMaphash }

// FNV1a is the unseeded FNV-1a hash. It is reproducible across processes.
type FNV1a struct{}

// Hash implements Hasher.
func (FNV1a) Hash(data []byte) uint64 { return FNV64a(data) }

// Name implements Hasher.
func (FNV1a) Name() string { return NameFNV1a }

// XXHash is the unseeded XXH64 hash. It is reproducible across processes.
type XXHash struct{}

// Hash implements Hasher.
func (XXHash) Hash(data []byte) uint64 { return xxhash.Sum64(data) }

// Name implements Hasher.
func (XXHash) Name() string { return NameXXHash }

// Seeded derives a keyed variant of a deterministic strategy.
type Seeded struct {
	Inner Hasher
	Seed  uint64
}

// Hash implements Hasher.
func (s Seeded) Hash(data []byte) uint64 {
	return MixHash(s.Inner.Hash(data), s.Seed)
}

// Name implements Hasher.
func (s Seeded) Name() string {
	return fmt.Sprintf("%s+seed(%#x)", s.Inner.Name(), s.Seed)
}

// Default returns the strategy interners use when none is given.
func Default() Hasher {
	return NewMaphash()
}

// ByName returns the strategy registered under name.
func ByName(name string) (Hasher, error) {
	switch name {
	case NameMaphash, "":
		return NewMaphash(), nil
	case NameFNV1a:
		return FNV1a{}, nil
	case NameXXHash:
		return XXHash{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}
