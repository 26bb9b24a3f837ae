// Package interner deduplicates values and maps each distinct value to a
// small, stable symbol.
//
// An Interner owns three parts: a hash strategy, an arena that stores every
// distinct value once together with its hash, and an index of symbols that
// finds an existing value from its content. Every value is hashed exactly
// once per call, also when the index grows: growth re-reads hashes cached in
// the arena instead of hashing content again.
//
// Symbols are assigned in first-seen order starting at zero. Values returned
// by Resolve and by iteration are views into interner memory; they stay
// valid for the lifetime of the interner and must not be mutated.
//
// An Interner is not safe for concurrent use when any goroutine mutates it.
// Concurrent readers are fine once mutation has stopped.
package interner

import (
	"fmt"
	"iter"

	"github.com/Sumatoshi-tech/interner/pkg/alg/rawset"
	"github.com/Sumatoshi-tech/interner/pkg/arena"
	"github.com/Sumatoshi-tech/interner/pkg/hashing"
	"github.com/Sumatoshi-tech/interner/pkg/internable"
	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

// Interner maps values of type T, stored as elements of type E, to symbols
// of type S. Create one with New or one of the typed constructors.
type Interner[S symbol.Symbol[S], T any, E internable.Element] struct {
	adapter internable.Adapter[T, E]
	hasher  hashing.Hasher
	index   *rawset.Set[S]
	arena   *arena.Arena[S, T, E]
}

// New creates an empty interner for the values adapter describes.
func New[S symbol.Symbol[S], T any, E internable.Element](
	adapter internable.Adapter[T, E],
	opts ...Option,
) *Interner[S, T, E] {
	cfg := newOptions(opts)

	return &Interner[S, T, E]{
		adapter: adapter,
		hasher:  cfg.hasher,
		index:   rawset.New[S](cfg.capacity),
		arena:   arena.New[S](adapter, cfg.capacity),
	}
}

// NewString creates an interner for UTF-8 strings.
func NewString[S symbol.Symbol[S]](opts ...Option) *Interner[S, string, byte] {
	return New[S, string, byte](internable.String{}, opts...)
}

// NewBytes creates an interner for byte slices.
func NewBytes[S symbol.Symbol[S]](opts ...Option) *Interner[S, []byte, byte] {
	return New[S, []byte, byte](internable.Bytes{}, opts...)
}

// NewRunes creates an interner for code point sequences.
func NewRunes[S symbol.Symbol[S]](opts ...Option) *Interner[S, []rune, rune] {
	return New[S, []rune, rune](internable.Runes{}, opts...)
}

// Collect creates an interner sized for values and interns them in order.
func Collect[S symbol.Symbol[S], T any, E internable.Element](
	adapter internable.Adapter[T, E],
	values []T,
	opts ...Option,
) *Interner[S, T, E] {
	in := New[S](adapter, withMinCapacity(opts, len(values))...)
	in.Extend(values...)

	return in
}

// CollectSeq is Collect for a sequence whose length is estimated by
// sizeHint. The hint only sizes the first allocation.
func CollectSeq[S symbol.Symbol[S], T any, E internable.Element](
	adapter internable.Adapter[T, E],
	seq iter.Seq[T],
	sizeHint int,
	opts ...Option,
) *Interner[S, T, E] {
	in := New[S](adapter, withMinCapacity(opts, sizeHint)...)
	in.ExtendSeq(seq)

	return in
}

// Hasher returns the hash strategy the interner was built with.
func (in *Interner[S, T, E]) Hasher() hashing.Hasher {
	return in.hasher
}

// Len returns the number of distinct values.
func (in *Interner[S, T, E]) Len() int {
	return in.index.Len()
}

// IsEmpty reports whether no value was interned yet.
func (in *Interner[S, T, E]) IsEmpty() bool {
	return in.Len() == 0
}

// Get returns the symbol of v if v was interned before. On a miss it returns
// the sentinel symbol and false.
func (in *Interner[S, T, E]) Get(v T) (S, bool) {
	elems := in.adapter.Elements(v)

	sym, ok := in.index.Find(in.hash(elems), in.matcher(elems))
	if !ok {
		return symbol.None[S](), false
	}

	return sym, true
}

// Intern returns the symbol of v, storing v first when it is new.
// It panics with an error wrapping symbol.ErrExhausted when S cannot
// represent another distinct value.
func (in *Interner[S, T, E]) Intern(v T) S {
	sym, _ := in.InternAndHash(v)

	return sym
}

// InternAndHash is Intern that also returns the hash computed for v.
func (in *Interner[S, T, E]) InternAndHash(v T) (S, uint64) {
	elems := in.adapter.Elements(v)
	hash := in.hash(elems)

	sym, _ := in.index.FindOrInsert(
		hash,
		in.matcher(elems),
		func() S { return in.arena.AppendElements(elems, hash) },
		in.cachedHash,
	)

	return sym, hash
}

// Extend interns every value in order and discards the symbols.
func (in *Interner[S, T, E]) Extend(values ...T) {
	in.reserve(len(values))

	for _, v := range values {
		in.Intern(v)
	}
}

// ExtendSeq interns every value of seq in order and discards the symbols.
func (in *Interner[S, T, E]) ExtendSeq(seq iter.Seq[T]) {
	for v := range seq {
		in.Intern(v)
	}
}

// Resolve returns the value of sym, or false when sym was not minted by
// this interner.
func (in *Interner[S, T, E]) Resolve(sym S) (T, bool) {
	return in.arena.Resolve(sym)
}

// ResolveUnchecked returns the value of sym without a bounds check.
// sym must come from this interner.
func (in *Interner[S, T, E]) ResolveUnchecked(sym S, trusted arena.Trusted) T {
	return in.arena.ResolveUnchecked(sym, trusted)
}

// Hash returns the hash computed when sym was interned.
func (in *Interner[S, T, E]) Hash(sym S) (uint64, bool) {
	return in.arena.Hash(sym)
}

// HashUnchecked returns the hash of sym without a bounds check.
// sym must come from this interner.
func (in *Interner[S, T, E]) HashUnchecked(sym S, trusted arena.Trusted) uint64 {
	return in.arena.HashUnchecked(sym, trusted)
}

// ShrinkToFit releases spare capacity held for future values.
func (in *Interner[S, T, E]) ShrinkToFit() {
	in.arena.ShrinkToFit()
}

// All yields every symbol with its value in ascending symbol order.
func (in *Interner[S, T, E]) All() iter.Seq2[S, T] {
	return in.arena.All()
}

// AllWithHashes yields every entry with its cached hash in ascending
// symbol order.
func (in *Interner[S, T, E]) AllWithHashes() iter.Seq[arena.Entry[S, T]] {
	return in.arena.AllWithHashes()
}

// Symbols yields every symbol in ascending order.
func (in *Interner[S, T, E]) Symbols() iter.Seq[S] {
	return in.arena.Symbols()
}

// Values returns every value in symbol order.
func (in *Interner[S, T, E]) Values() []T {
	values := make([]T, 0, in.Len())
	for _, v := range in.All() {
		values = append(values, v)
	}

	return values
}

// Clone returns an independent interner with the same symbols, values and
// hash strategy.
func (in *Interner[S, T, E]) Clone() *Interner[S, T, E] {
	return &Interner[S, T, E]{
		adapter: in.adapter,
		hasher:  in.hasher,
		index:   in.index.Clone(),
		arena:   in.arena.Clone(),
	}
}

// String implements fmt.Stringer.
func (in *Interner[S, T, E]) String() string {
	var sym S

	return fmt.Sprintf("Interner[%T](len=%d, hasher=%s)", sym, in.Len(), in.hasher.Name())
}

// --- Internal methods ---.

func (in *Interner[S, T, E]) hash(elems []E) uint64 {
	return in.hasher.Hash(internable.AsBytes(elems))
}

func (in *Interner[S, T, E]) matcher(elems []E) func(S) bool {
	return func(sym S) bool {
		return in.arena.Equal(sym, elems)
	}
}

// cachedHash feeds index growth from the arena.
func (in *Interner[S, T, E]) cachedHash(sym S) uint64 {
	return in.arena.HashUnchecked(sym, arena.AssumeValid)
}

func (in *Interner[S, T, E]) reserve(additional int) {
	if additional <= 0 {
		return
	}

	in.index.Reserve(additional, in.cachedHash)
	in.arena.Reserve(additional)
}
