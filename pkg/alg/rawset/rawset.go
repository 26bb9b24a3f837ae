// Package rawset provides an open-addressing hash set of opaque handles.
//
// The set never hashes or compares keys on its own. Every lookup receives the
// precomputed hash of the probed content plus an equality callback, and every
// operation that may grow the table receives a rehash callback that returns
// the original hash of an already stored key. This lets the owner keep the
// real content (and its cached hash) elsewhere and store only small handles
// here, so content is neither duplicated nor hashed twice.
//
// Collisions are resolved by linear probing over a power-of-two table. Each
// slot carries a one-byte control tag holding seven bits of the mixed hash,
// which filters almost all non-matching candidates before the equality
// callback runs. Keys are never removed.
package rawset

import (
	"iter"
	"math/bits"

	"github.com/Sumatoshi-tech/interner/pkg/hashing"
)

// Table configuration constants.
const (
	// tagEmpty marks a free slot.
	tagEmpty = 0

	// tagFull is set on every occupied slot so its tag is never tagEmpty.
	tagFull = 0x80

	// tagShift selects the top seven bits of the mixed hash.
	tagShift = 57

	// loadNum/loadDen is the maximum load factor (7/8).
	loadNum = 7
	loadDen = 8

	// minBuckets is the smallest non-empty table.
	minBuckets = 8

	// growthFactor is applied to the bucket count when the table fills up.
	growthFactor = 2
)

// Set is a hash set of handles of type K.
// It is not safe for concurrent mutation.
type Set[K comparable] struct {
	ctrl       []uint8
	slots      []K
	mask       uint64
	count      int
	growthLeft int
}

// New creates a set able to hold capacity keys without growing.
func New[K comparable](capacity int) *Set[K] {
	s := &Set[K]{}

	if capacity > 0 {
		s.allocate(bucketsFor(capacity))
	}

	return s
}

// Len returns the number of keys in the set.
func (s *Set[K]) Len() int {
	return s.count
}

// Buckets returns the number of slots in the table.
func (s *Set[K]) Buckets() int {
	return len(s.slots)
}

// Capacity returns how many keys the set can hold before it grows.
func (s *Set[K]) Capacity() int {
	return s.count + s.growthLeft
}

// Find returns the key stored under hash for which eq reports true.
func (s *Set[K]) Find(hash uint64, eq func(K) bool) (K, bool) {
	var zero K

	if s.count == 0 {
		return zero, false
	}

	mixed := hashing.Mix64(hash)
	tag := tagOf(mixed)

	for pos := mixed & s.mask; ; pos = (pos + 1) & s.mask {
		switch s.ctrl[pos] {
		case tagEmpty:
			return zero, false
		case tag:
			if eq(s.slots[pos]) {
				return s.slots[pos], true
			}
		}
	}
}

// FindOrInsert returns the key stored under hash for which eq reports true.
// When there is none, it calls mint exactly once to obtain a new key, stores
// it under hash and reports inserted. rehash must return the hash a stored
// key was inserted with; it is only called while the table grows, which
// happens before mint runs.
func (s *Set[K]) FindOrInsert(
	hash uint64,
	eq func(K) bool,
	mint func() K,
	rehash func(K) uint64,
) (key K, inserted bool) {
	if found, ok := s.Find(hash, eq); ok {
		return found, false
	}

	if s.growthLeft == 0 {
		s.grow(rehash)
	}

	key = mint()
	s.place(hash, key)

	return key, true
}

// Insert stores key under hash. The caller guarantees that no equal key is
// present. rehash has the same contract as in FindOrInsert.
func (s *Set[K]) Insert(hash uint64, key K, rehash func(K) uint64) {
	if s.growthLeft == 0 {
		s.grow(rehash)
	}

	s.place(hash, key)
}

// Reserve makes room for additional keys without further growth.
func (s *Set[K]) Reserve(additional int, rehash func(K) uint64) {
	if additional <= s.growthLeft {
		return
	}

	s.rebuild(bucketsFor(s.count+additional), rehash)
}

// All yields the stored keys in table order.
func (s *Set[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for pos, c := range s.ctrl {
			if c == tagEmpty {
				continue
			}

			if !yield(s.slots[pos]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the set.
func (s *Set[K]) Clone() *Set[K] {
	return &Set[K]{
		ctrl:       append([]uint8(nil), s.ctrl...),
		slots:      append([]K(nil), s.slots...),
		mask:       s.mask,
		count:      s.count,
		growthLeft: s.growthLeft,
	}
}

// --- Internal methods ---.

func (s *Set[K]) grow(rehash func(K) uint64) {
	s.rebuild(max(minBuckets, len(s.slots)*growthFactor), rehash)
}

// rebuild moves every key into a table of the given size.
func (s *Set[K]) rebuild(buckets int, rehash func(K) uint64) {
	oldCtrl, oldSlots := s.ctrl, s.slots

	s.allocate(buckets)

	for pos, c := range oldCtrl {
		if c == tagEmpty {
			continue
		}

		key := oldSlots[pos]
		s.place(rehash(key), key)
	}
}

func (s *Set[K]) allocate(buckets int) {
	s.ctrl = make([]uint8, buckets)
	s.slots = make([]K, buckets)
	s.mask = uint64(buckets - 1)
	s.count = 0
	s.growthLeft = buckets * loadNum / loadDen
}

// place writes key into the first free slot of its probe sequence.
func (s *Set[K]) place(hash uint64, key K) {
	mixed := hashing.Mix64(hash)

	pos := mixed & s.mask
	for s.ctrl[pos] != tagEmpty {
		pos = (pos + 1) & s.mask
	}

	s.ctrl[pos] = tagOf(mixed)
	s.slots[pos] = key
	s.count++
	s.growthLeft--
}

// --- Helpers ---.

func tagOf(mixed uint64) uint8 {
	return uint8(mixed>>tagShift) | tagFull
}

// bucketsFor returns the power-of-two table size that holds n keys under the
// maximum load factor.
func bucketsFor(n int) int {
	need := (n*loadDen + loadNum - 1) / loadNum
	buckets := 1 << bits.Len(uint(need-1))

	return max(minBuckets, buckets)
}
