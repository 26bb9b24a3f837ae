package arena

import (
	"strconv"
	"testing"

	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

// Benchmark constants.
const benchEntryCount = 10000

// BenchmarkAppend benchmarks filling an empty arena.
func BenchmarkAppend(b *testing.B) {
	values := make([]string, benchEntryCount)
	for i := range values {
		values[i] = strconv.Itoa(i)
	}

	b.ResetTimer()

	for range b.N {
		a := newStringArena(0)
		for i, v := range values {
			a.Append(v, uint64(i))
		}
	}
}

// BenchmarkResolve benchmarks checked resolution.
func BenchmarkResolve(b *testing.B) {
	a := newStringArena(benchEntryCount)
	for i := range benchEntryCount {
		a.Append(strconv.Itoa(i), 0)
	}

	b.ResetTimer()

	for i := range b.N {
		a.Resolve(symbol.U32(i % benchEntryCount))
	}
}

// BenchmarkResolveUnchecked benchmarks unchecked resolution.
func BenchmarkResolveUnchecked(b *testing.B) {
	a := newStringArena(benchEntryCount)
	for i := range benchEntryCount {
		a.Append(strconv.Itoa(i), 0)
	}

	b.ResetTimer()

	for i := range b.N {
		a.ResolveUnchecked(symbol.U32(i%benchEntryCount), AssumeValid)
	}
}
