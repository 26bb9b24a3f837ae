package bench

import (
	"errors"
	"fmt"
)

// Alphabet holds every character a generated word may contain.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-"

// ErrWordSpace is returned when more distinct words are requested than the
// word length allows.
var ErrWordSpace = errors.New("bench: word space exhausted")

// WordBuilder yields distinct words of one fixed length in a deterministic
// order. The first word is the successor of the all-'a' word.
type WordBuilder struct {
	indices []byte
}

// NewWordBuilder creates a builder for words of wordLen characters.
func NewWordBuilder(wordLen int) *WordBuilder {
	return &WordBuilder{indices: make([]byte, max(wordLen, 0))}
}

// Next returns the next word. ok is false once every word of the length has
// been produced.
func (w *WordBuilder) Next() (word string, ok bool) {
	for i, idx := range w.indices {
		if int(idx) == len(Alphabet)-1 {
			w.indices[i] = 0

			continue
		}

		w.indices[i]++

		return w.word(), true
	}

	return "", false
}

// Words returns n distinct words of wordLen characters.
func Words(n, wordLen int) ([]string, error) {
	builder := NewWordBuilder(wordLen)
	words := make([]string, 0, max(n, 0))

	for range n {
		word, ok := builder.Next()
		if !ok {
			return nil, fmt.Errorf("%w: %d words of length %d", ErrWordSpace, n, wordLen)
		}

		words = append(words, word)
	}

	return words, nil
}

func (w *WordBuilder) word() string {
	buf := make([]byte, len(w.indices))
	for i, idx := range w.indices {
		buf[i] = Alphabet[idx]
	}

	return string(buf)
}
