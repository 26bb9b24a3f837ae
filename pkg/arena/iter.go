package arena

import (
	"iter"

	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

// All yields every symbol with its value in ascending symbol order.
// Each call starts a fresh pass.
func (a *Arena[S, T, E]) All() iter.Seq2[S, T] {
	return func(yield func(S, T) bool) {
		a.walk(func(sym S, elems []E, _ uint64) bool {
			return yield(sym, a.adapter.FromElements(elems))
		})
	}
}

// AllWithHashes yields every entry with its cached hash in ascending
// symbol order.
func (a *Arena[S, T, E]) AllWithHashes() iter.Seq[Entry[S, T]] {
	return func(yield func(Entry[S, T]) bool) {
		a.walk(func(sym S, elems []E, hash uint64) bool {
			return yield(Entry[S, T]{
				Symbol: sym,
				Value:  a.adapter.FromElements(elems),
				Hash:   hash,
			})
		})
	}
}

// Symbols yields every minted symbol in ascending order.
func (a *Arena[S, T, E]) Symbols() iter.Seq[S] {
	return func(yield func(S) bool) {
		a.walk(func(sym S, _ []E, _ uint64) bool {
			return yield(sym)
		})
	}
}

// walk visits the span table once, carrying the previous end forward as
// the next start.
func (a *Arena[S, T, E]) walk(visit func(sym S, elems []E, hash uint64) bool) {
	from := 0

	for i, sp := range a.spans {
		sym, ok := symbol.New[S](i)
		if !ok {
			return
		}

		if !visit(sym, a.buffer[from:sp.end:sp.end], sp.hash) {
			return
		}

		from = sp.end
	}
}
