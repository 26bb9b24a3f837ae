package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWords_Sequence(t *testing.T) {
	t.Parallel()

	words, err := Words(3, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"ba", "ca", "da"}, words)
}

func TestWords_CarryOver(t *testing.T) {
	t.Parallel()

	words, err := Words(64, 2)
	require.NoError(t, err)
	assert.Equal(t, "-a", words[62])
	assert.Equal(t, "ab", words[63])
}

func TestWords_Distinct(t *testing.T) {
	t.Parallel()

	words, err := Words(5000, 3)
	require.NoError(t, err)
	require.Len(t, words, 5000)

	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		assert.Len(t, w, 3)
		seen[w] = struct{}{}
	}

	assert.Len(t, seen, len(words))
}

func TestWords_Exhausted(t *testing.T) {
	t.Parallel()

	words, err := Words(len(Alphabet)-1, 1)
	require.NoError(t, err)
	assert.Equal(t, "-", words[len(words)-1])

	_, err = Words(len(Alphabet), 1)
	require.ErrorIs(t, err, ErrWordSpace)
}

func TestWordBuilder_ZeroLength(t *testing.T) {
	t.Parallel()

	_, ok := NewWordBuilder(0).Next()
	assert.False(t, ok)
}
