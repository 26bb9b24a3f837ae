package safeconv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryIntToUint16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   int
		want uint16
		ok   bool
	}{
		{name: "zero", in: 0, want: 0, ok: true},
		{name: "normal_value", in: 42, want: 42, ok: true},
		{name: "max", in: math.MaxUint16, want: math.MaxUint16, ok: true},
		{name: "overflow", in: math.MaxUint16 + 1, want: 0, ok: false},
		{name: "negative", in: -1, want: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := TryIntToUint16(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTryIntToUint32(t *testing.T) {
	t.Parallel()

	got, ok := TryIntToUint32(7)
	assert.True(t, ok)
	assert.Equal(t, uint32(7), got)

	got, ok = TryIntToUint32(int(MaxUint32))
	assert.True(t, ok)
	assert.Equal(t, MaxUint32, got)

	_, ok = TryIntToUint32(-3)
	assert.False(t, ok)

	if MaxInt > int(MaxUint32) {
		_, ok = TryIntToUint32(int(MaxUint32) + 1)
		assert.False(t, ok)
	}
}

func TestTryIntToUint(t *testing.T) {
	t.Parallel()

	got, ok := TryIntToUint(MaxInt)
	assert.True(t, ok)
	assert.Equal(t, uint(MaxInt), got)

	_, ok = TryIntToUint(-1)
	assert.False(t, ok)
}

func TestMustUintToInt(t *testing.T) {
	t.Parallel()

	t.Run("normal_value", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 42, MustUintToInt(42))
	})

	t.Run("max_int", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, MaxInt, MustUintToInt(uint(MaxInt)))
	})

	t.Run("overflow_panics", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, "safeconv: uint to int overflow", func() {
			MustUintToInt(uint(MaxInt) + 1)
		})
	})
}
